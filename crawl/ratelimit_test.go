package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ folio.DomainLimiter = (*crawl.DomainLimiter)(nil)

// waitTime reports how long a single Wait on domain blocks.
func waitTime(t *testing.T, limiter *crawl.DomainLimiter, domain string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), domain))
	return time.Since(start)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request to a site is not delayed", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		assert.Less(t, waitTime(t, limiter, "legacy.example.com"), 50*time.Millisecond)
	})

	t.Run("second request to the same site waits for a token", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		waitTime(t, limiter, "legacy.example.com")

		assert.GreaterOrEqual(t, waitTime(t, limiter, "legacy.example.com"), 80*time.Millisecond)
	})

	t.Run("host names are compared case-insensitively", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		waitTime(t, limiter, "Legacy.Example.com")

		assert.GreaterOrEqual(t, waitTime(t, limiter, "legacy.example.com"), 80*time.Millisecond)
	})

	t.Run("image CDN has its own bucket", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		waitTime(t, limiter, "legacy.example.com")

		assert.Less(t, waitTime(t, limiter, "images.squarespace-cdn.com"), 50*time.Millisecond)
	})

	t.Run("gives up when the context ends first", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		waitTime(t, limiter, "legacy.example.com")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "legacy.example.com"))
	})

	t.Run("is safe for concurrent downloads", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(200)
		errs := make(chan error, 6)

		var wg sync.WaitGroup
		for range 6 {
			wg.Go(func() {
				errs <- limiter.Wait(context.Background(), "cdn.example.com")
			})
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("zero rate turns limiting off", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "legacy.example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})
}

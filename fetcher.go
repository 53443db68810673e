package folio

import "context"

// Fetcher returns the HTML of a legacy site page. The static HTTP fetcher
// and the headless browser both implement it; the browser returns the DOM
// after scripts have run, which Wix-style builders need.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the browser or connections behind the fetcher.
	Close() error
}

// DomainLimiter paces requests per host so a harvest does not hammer the
// legacy site or its image CDN.
type DomainLimiter interface {
	// Wait returns once a request to domain may proceed, or with the
	// context's error.
	Wait(ctx context.Context, domain string) error
}

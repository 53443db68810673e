package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced. Chrome's memory baseline keeps growing on image-heavy pages
// even when every page is closed.
const DefaultMaxPages = 75

// Browser owns a headless Chrome process and replaces it after a fixed
// number of rendered pages. Browser is safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// NewBrowser launches a headless Chrome browser.
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(maxPages int) (*Browser, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	b := &Browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// Acquire returns the browser to open the next page on, counting the page
// toward the recycling threshold. Returns nil after Close.
func (b *Browser) Acquire() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	if b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++
	return b.browser
}

// Close shuts the browser down. Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.shutdown()
}

// PID returns the process ID of the running Chrome launcher, or 0.
func (b *Browser) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

func (b *Browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (b *Browser) shutdown() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser, keeping the old one if the launch
// fails. Pages still open on the old browser are lost.
// Must be called with mu held.
func (b *Browser) recycle() {
	oldBrowser, oldLauncher := b.browser, b.launcher
	if err := b.launch(); err != nil {
		b.browser, b.launcher = oldBrowser, oldLauncher
		return
	}
	_ = oldBrowser.Close()
	oldLauncher.Kill()
	b.pages = 0
}

package rod

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds each browser round-trip (Inject or Extract).
const DefaultFetchTimeout = 30 * time.Second

// DefaultScrolls is how many times Inject scrolls to the bottom of the page.
// Comment sections load lazily as the viewer scrolls.
const DefaultScrolls = 3

// scrollPause is the wait between two scrolls for new comments to render.
const scrollPause = 750 * time.Millisecond

// scrollJS scrolls the document to its current bottom.
const scrollJS = `() => window.scrollTo(0, document.documentElement.scrollHeight)`

// extractJS collects the text of every element matching the selector and
// returns the extraction as a JSON string.
const extractJS = `(selector) => {
	try {
		const items = Array.from(document.querySelectorAll(selector))
			.map((el) => (el.textContent || "").trim())
			.filter((text) => text.length > 0);
		return JSON.stringify({ items: items, count: items.length, success: true });
	} catch (e) {
		return JSON.stringify({ items: [], count: 0, success: false, error: String((e && e.message) || e) });
	}
}`

// Ensure Extractor implements sentimeter.Extractor at compile time.
var _ sentimeter.Extractor = (*Extractor)(nil)

// Extractor reads comments from pages rendered by headless Chrome.
// Inject opens the page and scrolls it so comments load; Extract evaluates
// the comment selector inside the page.
//
// Extractor is safe for concurrent use by multiple goroutines.
type Extractor struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	scrolls  int
	selector string

	mu     sync.Mutex
	pages  map[string]*rod.Page
	closed atomic.Bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFetchTimeout sets the timeout of each browser round-trip.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// WithScrolls sets how many times Inject scrolls the page.
func WithScrolls(n int) Option {
	return func(e *Extractor) {
		e.scrolls = n
	}
}

// WithSelector sets the CSS selector matching comment bodies.
// Defaults to goquery.DefaultCommentSelector.
func WithSelector(selector string) Option {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor launches a headless Chrome browser.
// Close must be called when the Extractor is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		timeout:  DefaultFetchTimeout,
		scrolls:  DefaultScrolls,
		selector: goquery.DefaultCommentSelector,
		pages:    make(map[string]*rod.Page),
	}
	for _, opt := range opts {
		opt(e)
	}

	browser, l, err := launchBrowser()
	if err != nil {
		return nil, err
	}
	e.browser = browser
	e.launcher = l

	return e, nil
}

// Inject opens pageURL in a new tab, waits for it to load and scrolls it so
// the comment section renders. The tab stays open for Extract.
func (e *Extractor) Inject(ctx context.Context, pageURL string) error {
	if e.closed.Load() {
		return sentimeter.Errorf(sentimeter.EINVALID, "extractor is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := e.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return err
	}

	if err := e.prepare(page.Context(ctx), pageURL); err != nil {
		_ = page.Close()
		return err
	}

	e.mu.Lock()
	if prev, ok := e.pages[pageURL]; ok {
		_ = prev.Close()
	}
	e.pages[pageURL] = page
	e.mu.Unlock()

	return nil
}

// prepare navigates and scrolls a context-bound page.
func (e *Extractor) prepare(page *rod.Page, pageURL string) error {
	if err := page.Navigate(pageURL); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}

	for i := 0; i < e.scrolls; i++ {
		if _, err := page.Eval(scrollJS); err != nil {
			return err
		}
		if err := sleep(page.GetContext(), scrollPause); err != nil {
			return err
		}
	}
	return nil
}

// Extract evaluates the comment selector in the tab opened by Inject and
// closes the tab. If Inject was not called, the page is opened first.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*sentimeter.Extraction, error) {
	if e.closed.Load() {
		return nil, sentimeter.Errorf(sentimeter.EINVALID, "extractor is closed")
	}

	e.mu.Lock()
	page, ok := e.pages[pageURL]
	delete(e.pages, pageURL)
	e.mu.Unlock()

	if !ok {
		if err := e.Inject(ctx, pageURL); err != nil {
			return nil, err
		}
		e.mu.Lock()
		page = e.pages[pageURL]
		delete(e.pages, pageURL)
		e.mu.Unlock()
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := page.Context(ctx).Eval(extractJS, e.selector)
	if err != nil {
		return nil, err
	}

	var extraction sentimeter.Extraction
	if err := json.Unmarshal([]byte(res.Value.Str()), &extraction); err != nil {
		return nil, err
	}
	return &extraction, nil
}

// Close closes open tabs, the browser and the launcher process.
// Close is safe to call multiple times.
func (e *Extractor) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.mu.Lock()
	for url, page := range e.pages {
		_ = page.Close()
		delete(e.pages, url)
	}
	e.mu.Unlock()

	err := e.browser.Close()
	e.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (e *Extractor) LauncherPID() int {
	return e.launcher.PID()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package pipeline orchestrates one analysis run: it validates the page,
// extracts its comments, checks that the classification service is
// reachable, classifies the batch and publishes the result.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/sentimeter"
	"golang.org/x/sync/semaphore"
)

// DefaultSettleDelay is the wait between preparing the page and reading it,
// giving the page time to render what Inject triggered.
const DefaultSettleDelay = 500 * time.Millisecond

// User-facing failure messages.
const (
	msgWrongContext  = "please open a YouTube video page (youtube.com/watch?v=...)"
	msgNoItems       = "no comments found; scroll the page to load more comments, then try again"
	msgCommunication = "communication error with the page; reload the page and try again"
	msgUnavailable   = "classification service not reachable; make sure the API is running"
	msgBusy          = "an analysis is already running"
	msgNoResult      = "classification service returned no result"
)

// CheckContext returns an EWRONGCONTEXT error unless m accepts pageURL.
// Callers that do costly setup for a page run it before that setup.
func CheckContext(m *sentimeter.ContextMatcher, pageURL string) error {
	if !m.Match(pageURL) {
		return sentimeter.Errorf(sentimeter.EWRONGCONTEXT, msgWrongContext)
	}
	return nil
}

// BusyIndicator is notified when a run starts and when it ends.
// SetBusy(false) is called on every exit path.
type BusyIndicator interface {
	SetBusy(busy bool)
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)

// Pipeline runs analyses one at a time. A run walks the states
// Validating, Extracting, ValidatingReachability, Classifying, Aggregating
// and ends in Done or Failed. Failed stays observable until the next Run;
// Done returns to Idle.
type Pipeline struct {
	extractor  sentimeter.Extractor
	classifier sentimeter.Classifier
	store      *sentimeter.ResultStore

	matcher      *sentimeter.ContextMatcher
	settleDelay  time.Duration
	runs         sentimeter.RunWriter
	busy         BusyIndicator
	logger       *slog.Logger
	onTransition TransitionFunc

	// guard admits at most one run at a time.
	guard *semaphore.Weighted

	mu    sync.Mutex
	state State
	err   error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithContextMatcher sets which page addresses may be analyzed.
// Defaults to sentimeter.DefaultContextMatcher.
func WithContextMatcher(m *sentimeter.ContextMatcher) Option {
	return func(p *Pipeline) {
		p.matcher = m
	}
}

// WithSettleDelay sets the wait between Inject and Extract.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.settleDelay = d
	}
}

// WithRunWriter archives every completed run.
func WithRunWriter(w sentimeter.RunWriter) Option {
	return func(p *Pipeline) {
		p.runs = w
	}
}

// WithBusyIndicator sets the indicator toggled around each run.
func WithBusyIndicator(b BusyIndicator) Option {
	return func(p *Pipeline) {
		p.busy = b
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTransitionFunc sets a callback invoked on every state change.
func WithTransitionFunc(fn TransitionFunc) Option {
	return func(p *Pipeline) {
		p.onTransition = fn
	}
}

// New creates a Pipeline that publishes results to store.
func New(extractor sentimeter.Extractor, classifier sentimeter.Classifier, store *sentimeter.ResultStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   extractor,
		classifier:  classifier,
		store:       store,
		matcher:     sentimeter.DefaultContextMatcher(),
		settleDelay: DefaultSettleDelay,
		logger:      slog.New(slog.DiscardHandler),
		guard:       semaphore.NewWeighted(1),
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the reason of the last failed run, or nil if the pipeline is
// not in StateFailed.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run analyzes the page at pageURL. On success the result is stored in the
// ResultStore and returned. Every failure is terminal for the run and carries
// a user-facing message (see sentimeter.ErrorMessage).
//
// Returns EBUSY without side effects if another run is in flight.
func (p *Pipeline) Run(ctx context.Context, pageURL string) (*sentimeter.AnalysisResult, error) {
	if !p.guard.TryAcquire(1) {
		return nil, sentimeter.Errorf(sentimeter.EBUSY, msgBusy)
	}
	defer p.guard.Release(1)

	p.setBusy(true)
	defer p.setBusy(false)

	begin := time.Now()
	result, err := p.run(ctx, pageURL)
	if err != nil {
		p.fail(err)
		p.logger.Warn("analysis failed",
			"url", pageURL,
			"code", sentimeter.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	p.logger.Info("analysis done",
		"url", pageURL,
		"comments", result.Statistics.TotalCount,
		"duration", time.Since(begin),
	)
	p.transition(StateIdle)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, pageURL string) (*sentimeter.AnalysisResult, error) {
	p.mu.Lock()
	p.err = nil
	p.mu.Unlock()

	p.transition(StateValidating)
	if err := CheckContext(p.matcher, pageURL); err != nil {
		return nil, err
	}

	p.transition(StateExtracting)
	items, err := p.extract(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	p.transition(StateValidatingReachability)
	if err := p.classifier.Health(ctx); err != nil {
		if sentimeter.ErrorCode(err) != sentimeter.EUNAVAILABLE {
			err = sentimeter.WrapErrorf(err, sentimeter.EUNAVAILABLE, msgUnavailable)
		}
		return nil, err
	}

	p.transition(StateClassifying)
	result, err := p.classifier.ClassifyBatch(ctx, items)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, msgNoResult)
	}

	p.transition(StateAggregating)
	p.store.Replace(result)
	p.record(ctx, pageURL, result)

	p.transition(StateDone)
	return result, nil
}

// extract prepares the page, waits for it to settle and reads its comments.
// A failed Inject is not fatal: the page may already be prepared.
func (p *Pipeline) extract(ctx context.Context, pageURL string) ([]string, error) {
	if err := p.extractor.Inject(ctx, pageURL); err != nil {
		p.logger.Warn("page preparation failed; reading page as is", "url", pageURL, "err", err)
	}

	if err := settle(ctx, p.settleDelay); err != nil {
		return nil, sentimeter.WrapErrorf(err, sentimeter.ECOMMUNICATION, msgCommunication)
	}

	extraction, err := p.extractor.Extract(ctx, pageURL)
	if err != nil {
		return nil, sentimeter.WrapErrorf(err, sentimeter.ECOMMUNICATION, msgCommunication)
	}

	items := extraction.Texts()
	if len(items) == 0 {
		if extraction != nil && extraction.Error != "" {
			p.logger.Debug("extraction reported failure", "url", pageURL, "error", extraction.Error)
		}
		return nil, sentimeter.Errorf(sentimeter.ENOITEMS, msgNoItems)
	}
	return items, nil
}

// record archives the run. Archiving is best effort: a failure is logged
// and the run still succeeds.
func (p *Pipeline) record(ctx context.Context, pageURL string, result *sentimeter.AnalysisResult) {
	if p.runs == nil {
		return
	}
	run := &sentimeter.Run{PageURL: pageURL, Result: result}
	if err := p.runs.CreateRun(ctx, run); err != nil {
		p.logger.Warn("failed to archive run", "url", pageURL, "err", err)
	}
}

func (p *Pipeline) transition(to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	p.mu.Unlock()

	p.logger.Debug("state", "from", from.String(), "to", to.String())
	if p.onTransition != nil {
		p.onTransition(from, to)
	}
}

func (p *Pipeline) fail(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	p.transition(StateFailed)
}

func (p *Pipeline) setBusy(busy bool) {
	if p.busy != nil {
		p.busy.SetBusy(busy)
	}
}

// settle waits for d or until ctx is done.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

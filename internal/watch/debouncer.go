package watch

import (
	"context"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Debounce causes reported on a Trigger.
const (
	CauseQuiet        = "quiet"
	CauseMaxDelay     = "max_delay"
	CauseAfterRunning = "after_running"
)

// Trigger describes the burst of changes that caused a rebuild.
type Trigger struct {
	RequestCount  int
	LastPath      string
	FirstRequest  time.Time
	LastRequest   time.Time
	DebounceCause string
}

// BuildFunc performs one full rebuild.
type BuildFunc func(ctx context.Context, trig Trigger) error

type DebouncerConfig struct {
	QuietWindow time.Duration
	// MaxDelay bounds how long a steady stream of changes can postpone a build.
	MaxDelay time.Duration
}

// Debouncer coalesces change requests into builds:
//   - a build starts once no request arrived for the quiet window
//   - a build starts at the latest MaxDelay after the first request
//   - requests during a running build queue exactly one follow-up
type Debouncer struct {
	cfg      DebouncerConfig
	requests chan string

	readyOnce sync.Once
	ready     chan struct{}

	// Loop state, owned by Run.
	pending  bool
	first    time.Time
	last     time.Time
	lastPath string
	count    int
}

func NewDebouncer(cfg DebouncerConfig) (*Debouncer, error) {
	if cfg.QuietWindow <= 0 {
		return nil, ferrors.ValidationError("quiet window must be > 0").Build()
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 10 * cfg.QuietWindow
	}
	if cfg.MaxDelay < cfg.QuietWindow {
		return nil, ferrors.ValidationError("max delay must not be shorter than the quiet window").Build()
	}
	return &Debouncer{
		cfg:      cfg,
		requests: make(chan string, 64),
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once Run accepts requests.
func (d *Debouncer) Ready() <-chan struct{} {
	return d.ready
}

// Request records a change to path. It never blocks; when the queue is full
// the request is dropped, since a build is already due.
func (d *Debouncer) Request(path string) {
	select {
	case d.requests <- path:
	default:
	}
}

// Run drives builds until ctx is canceled, then waits for a running build
// to return. Build errors are passed to onError and do not stop the loop.
func (d *Debouncer) Run(ctx context.Context, build BuildFunc, onError func(error)) error {
	if ctx == nil {
		return ferrors.ValidationError("context cannot be nil").Build()
	}
	if build == nil {
		return ferrors.ValidationError("build function is required").Build()
	}
	if onError == nil {
		onError = func(error) {}
	}

	builds := make(chan Trigger)
	finished := make(chan struct{}, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for trig := range builds {
			if err := build(ctx, trig); err != nil {
				onError(err)
			}
			finished <- struct{}{}
		}
	}()
	defer func() {
		close(builds)
		wg.Wait()
	}()

	quietTimer := stoppedTimer()
	maxTimer := stoppedTimer()
	var (
		quietC <-chan time.Time
		maxC   <-chan time.Time
	)

	running := false
	waiting := false // a build is due but one is still running

	emit := func(cause string) {
		trig := Trigger{
			RequestCount:  d.count,
			LastPath:      d.lastPath,
			FirstRequest:  d.first,
			LastRequest:   d.last,
			DebounceCause: cause,
		}
		d.pending = false
		d.count = 0
		quietC, maxC = nil, nil
		running = true
		builds <- trig
	}
	due := func(cause string) {
		if !d.pending {
			quietC, maxC = nil, nil
			return
		}
		if running {
			waiting = true
			quietC, maxC = nil, nil
			return
		}
		emit(cause)
	}

	d.readyOnce.Do(func() { close(d.ready) })

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-d.requests:
			d.onRequest(path)
			resetTimer(quietTimer, d.cfg.QuietWindow)
			quietC = quietTimer.C
			if d.count == 1 && !waiting {
				resetTimer(maxTimer, d.cfg.MaxDelay)
				maxC = maxTimer.C
			}
		case <-quietC:
			due(CauseQuiet)
		case <-maxC:
			due(CauseMaxDelay)
		case <-finished:
			running = false
			if waiting {
				waiting = false
				emit(CauseAfterRunning)
			}
		}
	}
}

func (d *Debouncer) onRequest(path string) {
	now := time.Now()
	if !d.pending {
		d.pending = true
		d.first = now
		d.count = 0
	}
	d.last = now
	d.lastPath = path
	d.count++
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}

package watch

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Options configures Run.
type Options struct {
	Paths    []string
	Ignore   []string
	Debounce time.Duration
	MaxDelay time.Duration
	Logger   *slog.Logger
}

// Run builds once, then rebuilds on every debounced burst of changes below
// opts.Paths until ctx is canceled. Only a failure of the initial build or
// of the watcher setup is returned.
func Run(ctx context.Context, opts Options, build BuildFunc) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := build(ctx, Trigger{DebounceCause: "initial"}); err != nil {
		return err
	}

	deb, err := NewDebouncer(DebouncerConfig{QuietWindow: opts.Debounce, MaxDelay: opts.MaxDelay})
	if err != nil {
		return err
	}
	w, err := NewWatcher(deb, WatcherOptions{Paths: opts.Paths, Ignore: opts.Ignore, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("Error closing file watcher", logfields.Error(err))
		}
	}()
	go w.Run(ctx)

	log.Info("Watching for changes", logfields.Count(len(opts.Paths)), slog.Duration("debounce", opts.Debounce))
	return deb.Run(ctx, build, func(err error) {
		failed := rebuildFailure(err)
		attrs := []any{slog.String("category", string(failed.Category())), logfields.Error(err)}
		for k, v := range failed.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
		log.Warn(failed.Message(), attrs...)
	})
}

// rebuildFailure classifies a failed rebuild as a warning: the previous
// output stays in place and watching continues. The category and context
// of a classified cause are kept.
func rebuildFailure(err error) *ferrors.ClassifiedError {
	b := ferrors.WrapError(err, ferrors.GetCategory(err), "Rebuild failed, keeping previous output").Warning()
	if ce, ok := ferrors.AsClassified(err); ok {
		b = b.WithContextMap(ce.Context())
	}
	return b.Build()
}

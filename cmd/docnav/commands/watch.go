package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before a rebuild (overrides watch.debounce)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, cfg, logger(g))
}

// RunWatch builds, then rebuilds posts.json on content changes until ctx
// is canceled.
func RunWatch(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	return watch.Run(ctx, watchOptions(cfg, log), func(ctx context.Context, trig watch.Trigger) error {
		log.Info("Rebuilding",
			slog.String("cause", trig.DebounceCause),
			slog.Int("changes", trig.RequestCount),
			slog.String("last_path", trig.LastPath))
		return RunBuild(ctx, cfg, "", log)
	})
}

func watchOptions(cfg *config.Config, log *slog.Logger) watch.Options {
	paths := make([]string, 0, len(cfg.Content.Directories)+len(cfg.Watch.Paths))
	for _, d := range cfg.Content.Directories {
		paths = append(paths, cfg.Path(d.Path))
	}
	for _, p := range cfg.Watch.Paths {
		paths = append(paths, cfg.Path(p))
	}
	return watch.Options{
		Paths:    paths,
		Ignore:   []string{cfg.Path(cfg.Output.Posts)},
		Debounce: cfg.Watch.Debounce,
		Logger:   log,
	}
}

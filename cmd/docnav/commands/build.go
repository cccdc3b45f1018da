package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/posts"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output file for posts.json (overrides output.posts)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile collector format to this path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Posts = b.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, cfg, b.MetricsFile, logger(g))
}

// RunBuild runs one posts build and writes the result. When metricsFile is
// set the run's metrics are written there, also on failure.
func RunBuild(ctx context.Context, cfg *config.Config, metricsFile string, log *slog.Logger) error {
	var rec metrics.Recorder = metrics.NoopRecorder{}
	var reg *prometheus.Registry
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	out := cfg.Path(cfg.Output.Posts)
	res, err := posts.Build(ctx, cfg, posts.Options{Recorder: rec, Logger: log})
	if err == nil {
		done := metrics.StartStage(rec, posts.StageWrite)
		err = posts.WriteJSON(out, res)
		done(err)
	}

	if reg != nil {
		if werr := metrics.WriteTextfile(metricsFile, reg); werr != nil {
			log.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	log.Info("Posts written", logfields.Output(out), logfields.BuildID(res.BuildID))
	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s (%d docs, %d blog posts, %d about pages)\n",
		out, len(res.Docs), len(res.Blog), len(res.About))
	return nil
}

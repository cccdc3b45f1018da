package posts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// Stage names reported to the metrics recorder.
const (
	StageScan     = "scan"
	StageNavTree  = "navtree"
	StagePaginate = "paginate"
	StageWrite    = "write"
)

// Result is the document written to posts.json. Field order is the output
// key order.
type Result struct {
	Docs     []*content.Item `json:"docs"`
	Blog     []*content.Item `json:"blog"`
	About    []*content.Item `json:"about"`
	DocsTree *navtree.Tree   `json:"docsTree"`

	BuildID string `json:"-"`
}

// Options carries the collaborators of a build.
type Options struct {
	Recorder metrics.Recorder
	Logger   *slog.Logger
	// BuildID tags log lines; generated when empty.
	BuildID string
}

// Build scans the configured content, builds the docs navigation tree and
// paginates the docs. The docs in the result are the paginated sequence.
func Build(ctx context.Context, cfg *config.Config, opts Options) (res *Result, err error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("configuration is required").Build()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	buildID := opts.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(logfields.BuildID(buildID))

	start := time.Now()
	defer func() {
		rec.ObserveBuildDuration(time.Since(start))
		rec.IncBuildOutcome(metrics.OutcomeFor(err))
		if err != nil {
			logger.Error("Posts build failed", logfields.Error(err))
			return
		}
		logger.Info("Posts build complete",
			logfields.Count(len(res.Docs)+len(res.Blog)+len(res.About)),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	}()

	done := metrics.StartStage(rec, StageScan)
	scanner := content.NewScanner(content.Options{
		Root:         cfg.Root,
		Directories:  cfg.Content.Directories,
		Extensions:   cfg.Content.Extensions,
		SectionFile:  cfg.Content.SectionFile,
		LastModified: cfg.Content.LastModified,
		Logger:       logger,
	})
	coll, err := scanner.Scan(ctx)
	done(err)
	if err != nil {
		return nil, classify(err, ferrors.CategoryContent, "content scan failed")
	}
	rec.SetItemCount("docs", len(coll.Docs))
	rec.SetItemCount("blog", len(coll.Blog))
	rec.SetItemCount("about", len(coll.About))

	navOpts := navtree.Options{
		DocsRoot:           cfg.Navigation.DocsRoot,
		WelcomeKey:         cfg.Navigation.WelcomeKey,
		WelcomeTitle:       cfg.Navigation.WelcomeTitle,
		ReferenceRoot:      cfg.Navigation.ReferenceRoot,
		SpecificationGroup: cfg.Navigation.SpecificationGroup,
	}

	done = metrics.StartStage(rec, StageNavTree)
	tree, err := navtree.Build(navRecords(coll.Docs, navOpts), navOpts)
	done(err)
	if err != nil {
		return nil, classify(err, ferrors.CategoryNavigation, "navigation tree build failed")
	}
	logger.Debug("Navigation tree built", logfields.Count(tree.Len()))

	done = metrics.StartStage(rec, StagePaginate)
	docs, err := navtree.Paginate(coll.Docs, tree, navOpts)
	done(err)
	if err != nil {
		return nil, classify(err, ferrors.CategoryNavigation, "pagination failed")
	}

	return &Result{
		Docs:     docs,
		Blog:     nonNil(coll.Blog),
		About:    nonNil(coll.About),
		DocsTree: tree,
		BuildID:  buildID,
	}, nil
}

// navRecords keeps the records below the docs root; the root page itself
// is represented by the welcome entry.
func navRecords(docs []*content.Item, opts navtree.Options) []*content.Item {
	root := opts.DocsRoot
	if root == "" {
		root = navtree.DefaultOptions().DocsRoot
	}
	prefix := strings.TrimSuffix(root, "/") + "/"
	out := make([]*content.Item, 0, len(docs))
	for _, it := range docs {
		if strings.HasPrefix(it.Slug, prefix) {
			out = append(out, it)
		}
	}
	return out
}

func classify(err error, category ferrors.ErrorCategory, msg string) error {
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}
	return ferrors.WrapError(err, category, msg).Build()
}

func nonNil(items []*content.Item) []*content.Item {
	if items == nil {
		return []*content.Item{}
	}
	return items
}

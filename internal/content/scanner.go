package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Directory maps a content directory to the slug it is published under.
type Directory struct {
	Path string `yaml:"path"`
	Slug string `yaml:"slug"`
}

// DefaultDirectories lists the content areas in scan order. The blog comes
// first so release notes are known before specification pages are named.
func DefaultDirectories() []Directory {
	return []Directory{
		{Path: "pages/blog", Slug: BlogPrefix},
		{Path: "pages/docs", Slug: DocsPrefix},
		{Path: "pages/about", Slug: AboutPrefix},
	}
}

const (
	defaultSectionFile = "_section.mdx"
	indexName          = "index"
	releaseNotesPrefix = "release-notes"
	specificationPath  = "/reference/specification/"
	specWeightStart    = 100
)

// Options configures a Scanner.
type Options struct {
	// Root is the directory Directories are resolved against.
	Root        string
	Directories []Directory
	// Extensions lists the content file extensions, including the dot.
	Extensions  []string
	SectionFile string
	// LastModified enables git history lookups for each content file.
	LastModified bool
	Logger       *slog.Logger
}

// Scanner walks content directories and turns them into records.
type Scanner struct {
	opts  Options
	log   *slog.Logger
	title cases.Caser

	// Per-scan state.
	specWeight   int
	releaseNotes map[string]struct{}
	dates        *GitDates
}

// NewScanner returns a scanner with defaults applied to unset options.
func NewScanner(opts Options) *Scanner {
	if len(opts.Directories) == 0 {
		opts.Directories = DefaultDirectories()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".mdx"}
	}
	if opts.SectionFile == "" {
		opts.SectionFile = defaultSectionFile
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		opts:  opts,
		log:   log,
		title: cases.Title(language.Und, cases.NoLower),
	}
}

// section carries what a directory passes down to its entries.
type section struct {
	dir           string
	slug          string
	area          string
	title         string
	id            string
	rootSectionID string
	weight        *float64
}

// Scan walks every configured directory in order and returns the records
// found. Missing top-level directories are skipped with a warning.
func (s *Scanner) Scan(ctx context.Context) (*Collection, error) {
	s.specWeight = specWeightStart
	s.releaseNotes = make(map[string]struct{})
	s.dates = nil

	if s.opts.LastModified {
		dates, err := OpenGitDates(s.opts.Root)
		if err != nil {
			s.log.Warn("Git history unavailable, lastModified disabled", logfields.Path(s.opts.Root), logfields.Error(err))
		} else {
			s.dates = dates
		}
	}

	coll := &Collection{}
	for _, d := range s.opts.Directories {
		dir := filepath.Join(s.opts.Root, filepath.FromSlash(d.Path))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			s.log.Warn("Content directory not found", logfields.Path(dir))
			continue
		}
		top := section{dir: dir, slug: d.Slug, area: d.Slug, weight: Float(0)}
		if err := s.walk(ctx, coll, top); err != nil {
			return nil, err
		}
	}

	s.log.Debug("Content scan complete",
		logfields.Count(coll.Len()),
		slog.Int("docs", len(coll.Docs)),
		slog.Int("blog", len(coll.Blog)),
		slog.Int("about", len(coll.About)))
	return coll, nil
}

func (s *Scanner) walk(ctx context.Context, coll *Collection, sec section) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(sec.dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", sec.dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(sec.dir, name)
		slug := sec.slug + "/" + name

		if entry.IsDir() {
			it, err := s.sectionItem(full, name, slug, sec)
			if err != nil {
				return err
			}
			if err := coll.Add(it); err != nil {
				return err
			}
			rootID := it.Parent
			if rootID == "" {
				rootID = it.RootSectionID
			}
			child := section{
				dir:           full,
				slug:          slug,
				area:          sec.area,
				title:         it.Title,
				id:            it.SectionID,
				rootSectionID: rootID,
				weight:        it.Weight,
			}
			if err := s.walk(ctx, coll, child); err != nil {
				return err
			}
			continue
		}

		if name == s.opts.SectionFile || !s.isContentFile(name) {
			continue
		}
		it, err := s.pageItem(full, name, slug, sec)
		if err != nil {
			return err
		}
		if err := coll.Add(it); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) sectionItem(dir, name, slug string, parent section) (*Item, error) {
	it := &Item{}
	sectionFile := filepath.Join(dir, s.opts.SectionFile)
	if data, err := os.ReadFile(sectionFile); err == nil {
		doc, err := frontmatter.Split(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sectionFile, err)
		}
		it, err = FromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sectionFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", sectionFile, err)
	}

	if it.Title == "" {
		it.Title = s.capitalize(name)
	}
	it.IsSection = true

	elems := strings.Split(slug, "/")
	if len(elems) > 3 {
		it.Parent = elems[len(elems)-2]
		it.SectionID = elems[len(elems)-1]
	} else {
		it.IsRootSection = true
		it.RootSectionID = elems[len(elems)-1]
	}
	it.SectionWeight = parent.weight
	it.Slug = slug

	s.log.Debug("Section", logfields.Slug(slug), logfields.Title(it.Title))
	return it, nil
}

func (s *Scanner) pageItem(file, name, slug string, sec section) (*Item, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	doc, err := frontmatter.Split(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	it, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	pageSlug := strings.TrimSuffix(slug, ext)

	it.TOC = markdown.TOC(doc.Body)
	it.ReadingTime = markdown.ReadingTime(doc.Body)
	if it.Excerpt == "" {
		it.Excerpt = markdown.Excerpt(doc.Body)
	}
	it.SectionSlug = sec.slug
	if it.SectionSlug == "" {
		it.SectionSlug = pageSlug
	}
	it.SectionWeight = sec.weight
	it.SectionTitle = sec.title
	it.SectionID = sec.id
	it.RootSectionID = sec.rootSectionID
	it.ID = s.relativeID(file)
	it.IsIndex = base == indexName
	if it.IsIndex {
		it.Slug = sec.slug
	} else {
		it.Slug = pageSlug
	}

	if strings.Contains(it.Slug, specificationPath) && it.Title == "" {
		s.nameSpecVersion(it)
	}

	if strings.HasPrefix(name, releaseNotesPrefix) && sec.slug == sec.area && sec.area == BlogPrefix {
		version := base[strings.LastIndex(base, "-")+1:]
		s.releaseNotes[version] = struct{}{}
	}

	fields, err := doc.Fields()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if it.Fingerprint, err = ComputeFingerprint(fields, doc.Body); err != nil {
		return nil, fmt.Errorf("fingerprint %s: %w", file, err)
	}

	if s.dates != nil {
		when, ok, err := s.dates.LastModified(file)
		if err != nil {
			s.log.Warn("Git history lookup failed", logfields.File(file), logfields.Error(err))
		} else if ok {
			it.LastModified = when.Format(time.RFC3339)
		}
	}

	s.log.Debug("Page", logfields.Slug(it.Slug), logfields.File(it.ID))
	return it, nil
}

// nameSpecVersion titles an untitled specification page after its version,
// e.g. "v3.0.0-next-major-spec.2" becomes "3.0.0 (Pre-release)". Versions are
// weighted in scan order, counting down.
func (s *Scanner) nameSpecVersion(it *Item) {
	base := path.Base(it.Slug)
	version, _, _ := strings.Cut(base, "-")

	it.Weight = Float(float64(s.specWeight))
	s.specWeight--

	it.Title = s.capitalize(strings.TrimPrefix(version, "v"))

	if _, ok := s.releaseNotes[it.Title]; ok {
		it.ReleaseNoteLink = "/blog/release-notes-" + it.Title
	}
	if strings.Contains(base, "next-spec") || strings.Contains(base, "next-major-spec") {
		it.IsPrerelease = true
		it.Title += " (Pre-release)"
	}
	if strings.Contains(base, "explorer") {
		it.Title += " - Explorer"
	}
}

var wordSeparator = regexp.MustCompile(`[\s-]`)

// capitalize upper-cases the first letter of every space or hyphen separated
// word and joins the words with spaces.
func (s *Scanner) capitalize(text string) string {
	words := wordSeparator.Split(text, -1)
	for i, w := range words {
		words[i] = s.title.String(w)
	}
	return strings.Join(words, " ")
}

func (s *Scanner) relativeID(file string) string {
	rel, err := filepath.Rel(s.opts.Root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) isContentFile(name string) bool {
	ext := path.Ext(name)
	for _, e := range s.opts.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

package content

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitDates resolves the date of the last commit that touched a file.
type GitDates struct {
	repo *git.Repository
	root string
}

// OpenGitDates opens the git repository containing dir. It returns
// git.ErrRepositoryNotExists when dir is not inside a repository.
func OpenGitDates(dir string) (*GitDates, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	return &GitDates{repo: repo, root: wt.Filesystem.Root()}, nil
}

// LastModified returns the committer time of the newest commit touching path.
// The boolean is false when the file has no history (untracked, or the
// repository has no commits yet).
func (g *GitDates) LastModified(path string) (time.Time, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, false, err
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return time.Time{}, false, err
	}
	rel = filepath.ToSlash(rel)

	iter, err := g.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("git log %s: %w", rel, err)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("git log %s: %w", rel, err)
	}
	return commit.Committer.When.UTC(), true, nil
}

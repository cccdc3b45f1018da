package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitDates_LastModified(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	writeFile(t, root, "pages/docs/index.mdx", "---\ntitle: Welcome\n---\n")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("pages/docs/index.mdx")
	require.NoError(t, err)

	when := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	_, err = wt.Commit("add welcome", &git.CommitOptions{
		Author: &object.Signature{Name: "Docs", Email: "docs@example.com", When: when},
	})
	require.NoError(t, err)

	writeFile(t, root, "pages/docs/draft.mdx", "draft\n")

	dates, err := OpenGitDates(root)
	require.NoError(t, err)

	got, ok, err := dates.LastModified(filepath.Join(root, "pages", "docs", "index.mdx"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, when.Equal(got))

	_, ok, err = dates.LastModified(filepath.Join(root, "pages", "docs", "draft.mdx"))
	require.NoError(t, err)
	assert.False(t, ok)

	coll, err := NewScanner(Options{Root: root, LastModified: true}).Scan(context.Background())
	require.NoError(t, err)
	docs := bySlug(coll.Docs)
	assert.Equal(t, "2024-03-04T05:06:07Z", docs["/docs"].LastModified)
	assert.Empty(t, docs["/docs/draft"].LastModified)
}

func TestGitDates_NotARepository(t *testing.T) {
	_, err := OpenGitDates(t.TempDir())
	require.ErrorIs(t, err, git.ErrRepositoryNotExists)
}

func TestGitDates_EmptyRepository(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	p := filepath.Join(root, "a.md")
	require.NoError(t, os.WriteFile(p, []byte("a"), 0o600))

	dates, err := OpenGitDates(root)
	require.NoError(t, err)
	_, ok, err := dates.LastModified(p)
	require.NoError(t, err)
	assert.False(t, ok)
}

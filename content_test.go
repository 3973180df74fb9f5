package starterblog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/eringen/starterblog/views"
)

func TestLoadPosts(t *testing.T) {
	cfg := writeTestSite(t, "")
	extra := filepath.Join(cfg.ContentDir, "notes", "deep-thoughts.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(extra), 0o755))
	require.NoError(t, os.WriteFile(extra, []byte("Untitled and undated."), 0o644))

	posts, err := LoadPosts(cfg.ContentDir, language.French)
	require.NoError(t, err)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"hello", "older", "notes/deep-thoughts"}, slugs)

	hello := posts[0]
	assert.Equal(t, "Hello World", hello.Title)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), hello.Date)
	assert.Equal(t, "The very first post.", hello.Description)
	assert.Contains(t, string(hello.HTML), "<strong>bold</strong>")
	assert.Equal(t, "/hello/", hello.Path())

	deep := posts[2]
	assert.Equal(t, "Deep Thoughts", deep.Title)
	assert.True(t, deep.Date.IsZero())
}

func TestLoadPostsMissingDir(t *testing.T) {
	posts, err := LoadPosts(filepath.Join(t.TempDir(), "missing"), language.French)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLoadPostsBadDate(t *testing.T) {
	dir := t.TempDir()
	src := "---\ntitle: Bad\ndate: \"someday\"\n---\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte(src), 0o644))

	_, err := LoadPosts(dir, language.French)
	assert.Error(t, err)
}

func TestPostSlug(t *testing.T) {
	root := filepath.FromSlash("/site/content")
	tests := []struct {
		path string
		want string
	}{
		{"/site/content/hello.md", "hello"},
		{"/site/content/hello/index.md", "hello"},
		{"/site/content/a/b.md", "a/b"},
		{"/site/content/a/b/index.md", "a/b"},
	}
	for _, tt := range tests {
		got, err := postSlug(root, filepath.FromSlash(tt.path))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := postSlug(root, filepath.FromSlash("/site/content/index.md"))
	assert.Error(t, err)

	for _, reserved := range []string{
		"404.md", "404/index.md", "404.html.md", "rss.xml.md",
		"sitemap.xml.md", "style.css.md", "static/x.md", "static/a/index.md",
	} {
		_, err := postSlug(root, filepath.Join(root, filepath.FromSlash(reserved)))
		assert.ErrorIs(t, err, ErrReservedSlug, reserved)
	}
}

func TestBuildRejectsPostOverNotFoundPage(t *testing.T) {
	cfg := writeTestSite(t, "")
	writePost(t, cfg.ContentDir, "404.md", "---\ntitle: My404Post\n---\nbody\n")

	_, err := NewBuilder(cfg, nil).Build(t.Context())
	require.ErrorIs(t, err, ErrReservedSlug)

	_, err = LoadPosts(cfg.ContentDir, language.French)
	assert.ErrorIs(t, err, ErrReservedSlug)
}

func TestSortPostsAndNeighbours(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []views.Post{
		{Slug: "undated"},
		{Slug: "b", Date: day(2)},
		{Slug: "c", Date: day(3)},
		{Slug: "a", Date: day(2)},
	}
	SortPosts(posts)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"c", "a", "b", "undated"}, slugs)

	first := Neighbours(posts, 0)
	assert.Nil(t, first.Next)
	require.NotNil(t, first.Previous)
	assert.Equal(t, "a", first.Previous.Slug)

	last := Neighbours(posts, len(posts)-1)
	assert.Nil(t, last.Previous)
	require.NotNil(t, last.Next)
	assert.Equal(t, "b", last.Next.Slug)
}

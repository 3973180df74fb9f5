package starterblog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/eringen/starterblog/markdown"
	"github.com/eringen/starterblog/views"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

// ErrReservedSlug is returned when a post would be written over a file the
// build generates itself.
var ErrReservedSlug = errors.New("reserved slug")

// reservedSlugs are output paths owned by the build. A post slug may not be
// one of them or, for directories, start with one.
var reservedSlugs = map[string]bool{
	"404":          true,
	"404.html":     true,
	"rss.xml":      true,
	"sitemap.xml":  true,
	stylesheetName: true,
	"static":       true,
}

// LoadPosts reads every markdown post under dir. A post lives either at
// "<slug>.md" or "<slug>/index.md". Drafts are skipped. Posts come back
// newest first. A missing dir yields no posts.
func LoadPosts(dir string, lang language.Tag) ([]views.Post, error) {
	var posts []views.Post
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		post, draft, err := loadPost(dir, p, lang)
		if err != nil {
			return err
		}
		if !draft {
			posts = append(posts, post)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

func loadPost(root, p string, lang language.Tag) (views.Post, bool, error) {
	src, err := os.ReadFile(p)
	if err != nil {
		return views.Post{}, false, fmt.Errorf("read %s: %w", p, err)
	}
	doc, err := markdown.Parse(src)
	if err != nil {
		return views.Post{}, false, fmt.Errorf("%s: %w", p, err)
	}
	date, err := markdown.ParseDate(doc.Meta.Date)
	if err != nil {
		return views.Post{}, false, fmt.Errorf("%s: %w", p, err)
	}

	slug, err := postSlug(root, p)
	if err != nil {
		return views.Post{}, false, err
	}
	title := doc.Meta.Title
	if title == "" {
		title = markdown.TitleFromSlug(filepath.Base(filepath.FromSlash(slug)), lang)
	}
	return views.Post{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Description: doc.Meta.Description,
		Excerpt:     doc.Excerpt,
		HTML:        doc.HTML,
	}, doc.Meta.Draft, nil
}

// postSlug derives the route slug from a path under root:
// "hello.md" -> "hello", "hello/index.md" -> "hello", "a/b.md" -> "a/b".
func postSlug(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", fmt.Errorf("slug for %s: %w", p, err)
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = strings.TrimSuffix(rel, "/index")
	if rel == "index" {
		return "", fmt.Errorf("%s: a post cannot live at the content root index", p)
	}
	first, _, _ := strings.Cut(rel, "/")
	if reservedSlugs[first] {
		return "", fmt.Errorf("%s: slug %q: %w", p, rel, ErrReservedSlug)
	}
	return rel, nil
}

// SortPosts orders posts newest first; undated posts go last, ties by slug.
func SortPosts(posts []views.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.Date.IsZero() != b.Date.IsZero():
			return b.Date.IsZero()
		case !a.Date.Equal(b.Date):
			return a.Date.After(b.Date)
		default:
			return a.Slug < b.Slug
		}
	})
}

// Neighbours returns the chronological neighbours of posts[i] in a list
// sorted newest first.
func Neighbours(posts []views.Post, i int) views.PostNav {
	var nav views.PostNav
	if i+1 < len(posts) {
		nav.Previous = &posts[i+1]
	}
	if i > 0 {
		nav.Next = &posts[i-1]
	}
	return nav
}

package starterblog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/starterblog/views"
)

// BuildStats summarizes a finished build.
type BuildStats struct {
	Posts    int
	Pages    int
	Duration time.Duration
}

// Builder renders the whole site into Config.OutputDir.
type Builder struct {
	Config SiteConfig
	Log    *zap.Logger
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg SiteConfig, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{Config: cfg, Log: log}
}

// Build cleans the output directory, copies static files, resolves the
// avatar, and writes every page, the feed and the sitemap.
func (b *Builder) Build(ctx context.Context) (BuildStats, error) {
	start := time.Now()
	cfg := b.Config
	out := cfg.OutputDir

	posts, err := LoadPosts(cfg.ContentDir, cfg.LanguageTag())
	if err != nil {
		return BuildStats{}, fmt.Errorf("load posts: %w", err)
	}
	avatar, err := ResolveAvatar(cfg)
	if err != nil {
		return BuildStats{}, err
	}

	if err := os.RemoveAll(out); err != nil {
		return BuildStats{}, fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return BuildStats{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := copyDir(cfg.StaticDir, out); err != nil {
		return BuildStats{}, fmt.Errorf("copy static files: %w", err)
	}
	if err := writeStylesheet(out); err != nil {
		return BuildStats{}, err
	}
	for _, r := range avatar.Renditions {
		if err := writeFile(filepath.Join(out, filepath.FromSlash(r.Route)), r.Data); err != nil {
			return BuildStats{}, fmt.Errorf("write avatar: %w", err)
		}
	}

	site := siteContext(cfg, avatar)
	pages := []struct {
		path string
		page func() error
	}{
		{"index.html", func() error {
			return RenderFile(ctx, filepath.Join(out, "index.html"), views.Home(site, posts))
		}},
		{"404.html", func() error {
			return RenderFile(ctx, filepath.Join(out, "404.html"), views.NotFound(site, views.SitePath(site.RootPath, "/404.html")))
		}},
		{"404/index.html", func() error {
			return RenderFile(ctx, filepath.Join(out, "404", "index.html"), views.NotFound(site, views.SitePath(site.RootPath, "/404/")))
		}},
	}
	for i, p := range posts {
		pages = append(pages, struct {
			path string
			page func() error
		}{p.Path() + "index.html", func() error {
			dst := filepath.Join(out, filepath.FromSlash(p.Slug), "index.html")
			return RenderFile(ctx, dst, views.PostPage(site, p, Neighbours(posts, i)))
		}})
	}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return BuildStats{}, err
		}
		if err := p.page(); err != nil {
			return BuildStats{}, err
		}
		b.Log.Debug("wrote page", zap.String("path", p.path))
	}

	if err := writeWith(filepath.Join(out, "rss.xml"), func(w io.Writer) error {
		return writeRSS(w, cfg, posts)
	}); err != nil {
		return BuildStats{}, fmt.Errorf("write feed: %w", err)
	}
	if err := writeWith(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, cfg, posts)
	}); err != nil {
		return BuildStats{}, fmt.Errorf("write sitemap: %w", err)
	}

	stats := BuildStats{Posts: len(posts), Pages: len(pages), Duration: time.Since(start)}
	b.Log.Info("build complete",
		zap.String("output", out),
		zap.Int("posts", stats.Posts),
		zap.Int("pages", stats.Pages),
		zap.Duration("took", stats.Duration))
	return stats, nil
}

// siteContext assembles the per-build values every page shares.
func siteContext(cfg SiteConfig, avatar FixedAvatar) views.SiteContext {
	return views.SiteContext{
		Query:      NewStaticQuery(cfg, avatar),
		Bio:        cfg.BioCopy(),
		RootPath:   cfg.RootPath(),
		Lang:       cfg.Language,
		Stylesheet: views.SitePath(cfg.RootPath(), stylesheetName),
	}
}

func writeStylesheet(out string) error {
	css, err := EmbeddedAssets.ReadFile("embedded/" + stylesheetName)
	if err != nil {
		return fmt.Errorf("read embedded stylesheet: %w", err)
	}
	return writeFile(filepath.Join(out, stylesheetName), css)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeWith(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// copyDir recursively copies the contents of src into dst. A missing src is
// not an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return writeWith(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

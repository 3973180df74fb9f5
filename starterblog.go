// Package starterblog is a small static blog generator built with Go, Echo,
// and templ. It renders a home page, one page per markdown post, a 404 page,
// an RSS feed and a sitemap, and can serve the same pages from a live
// preview server.
package starterblog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/starterblog/views"
)

const shutdownTimeout = 5 * time.Second

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used by the server and its request log.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) { a.Log = log }
}

// WithClock overrides the time source pages use for the footer year.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.clock = now }
}

// App is the preview server. It wires together the post cache, the resolved
// avatar, middleware, and routes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *PostCache
	Log    *zap.Logger

	clock func() time.Time

	mu     sync.RWMutex
	site   views.SiteContext
	avatar map[string][]byte

	setupOnce sync.Once
	setupErr  error
}

// New creates a preview App for cfg.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.Cache = NewPostCache(func() ([]views.Post, error) {
		return LoadPosts(a.Config.ContentDir, a.Config.LanguageTag())
	}, cfg.CacheTTL)
	return a
}

// Setup resolves the avatar and installs middleware and routes. It is safe
// to call more than once; Start calls it.
func (a *App) Setup() error {
	a.setupOnce.Do(func() {
		if err := a.Reload(); err != nil {
			a.setupErr = err
			return
		}
		a.setupMiddleware()
		a.setupRoutes()
	})
	return a.setupErr
}

// Reload drops cached posts and re-resolves the avatar, so the next request
// sees the current content tree.
func (a *App) Reload() error {
	avatar, err := ResolveAvatar(a.Config)
	if err != nil {
		return fmt.Errorf("starterblog: resolve avatar: %w", err)
	}
	files := make(map[string][]byte, len(avatar.Renditions))
	for _, r := range avatar.Renditions {
		files[r.Route] = r.Data
	}

	a.mu.Lock()
	a.site = siteContext(a.Config, avatar)
	a.avatar = files
	a.mu.Unlock()

	a.Cache.Invalidate()
	return nil
}

func (a *App) siteContext() views.SiteContext {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.site
}

func (a *App) avatarFile(route string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.avatar[route]
	return data, ok
}

func (a *App) setupRoutes() {
	// Everything lives under the path prefix; requests outside it fall
	// through to the 404 page.
	g := a.Echo.Group(a.Config.PathPrefix)

	g.GET("/", a.handleHome)
	g.GET("/rss.xml", a.handleFeed)
	g.GET("/sitemap.xml", a.handleSitemap)
	g.GET("/"+stylesheetName, a.handleStylesheet)
	g.GET(staticRoute+"/:hash/:name", a.handleAvatar)
	g.GET("/*", a.handlePost)
}

// Start sets the app up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("preview server listening",
			zap.String("addr", a.Config.Addr),
			zap.String("root", a.Config.RootPath()))
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("starterblog: shutdown: %w", err)
	}
	a.Log.Info("preview server stopped")
	return nil
}

// Close releases the server's listeners.
func (a *App) Close() error {
	return a.Echo.Close()
}

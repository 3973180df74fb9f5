package starterblog

import (
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/starterblog/views"
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.siteContext(), posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := strings.Trim(c.Param("*"), "/")
	if slug == "" {
		return echo.ErrNotFound
	}
	post, nav, err := a.Cache.GetPost(slug)
	if errors.Is(err, ErrNotFound) {
		return a.serveStatic(c, slug)
	}
	if err != nil {
		return err
	}
	return Render(c, views.PostPage(a.siteContext(), post, nav))
}

// serveStatic serves a file from the static directory for routes that are
// not posts. Missing files surface as echo.ErrNotFound.
func (a *App) serveStatic(c echo.Context, name string) error {
	if a.Config.StaticDir == "" {
		return echo.ErrNotFound
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	return c.File(filepath.Join(a.Config.StaticDir, filepath.FromSlash(clean)))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleStylesheet(c echo.Context) error {
	css, err := EmbeddedAssets.ReadFile("embedded/" + stylesheetName)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", css)
}

func (a *App) handleAvatar(c echo.Context) error {
	route := strings.TrimPrefix(c.Request().URL.Path, a.Config.PathPrefix)
	data, ok := a.avatarFile(route)
	if !ok {
		return a.serveStatic(c, route)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// httpErrorHandler renders the 404 page for unknown routes and logs server
// errors before handing them to echo's default handler.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		site := a.siteContext()
		if rerr := RenderStatus(c, http.StatusNotFound, views.NotFound(site, c.Request().URL.Path)); rerr != nil {
			a.Log.Error("render not found page", zap.Error(rerr))
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		a.Log.Error("server error",
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", code),
			zap.Error(err))
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

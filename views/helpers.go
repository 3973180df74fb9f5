package views

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
)

const twitterBase = "https://twitter.com/"

// TwitterURL returns the profile URL for a twitter handle.
func TwitterURL(handle string) string {
	return twitterBase + handle
}

// SitePath joins a site-relative route onto the root path, so that a
// prefixed deployment ("/blog/") still links correctly.
func SitePath(rootPath, route string) string {
	if rootPath == "" {
		rootPath = "/"
	}
	return strings.TrimSuffix(rootPath, "/") + "/" + strings.TrimPrefix(route, "/")
}

// PathEscape wraps url.PathEscape for use in component code.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// FormatDate renders a post date the way listings and post headers show it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 02, 2006")
}

type clockKey struct{}

// WithClock attaches a time source to ctx. Layout reads it when stamping the
// footer year; without one it uses time.Now.
func WithClock(ctx context.Context, now func() time.Time) context.Context {
	return context.WithValue(ctx, clockKey{}, now)
}

func clock(ctx context.Context) time.Time {
	if now, ok := ctx.Value(clockKey{}).(func() time.Time); ok && now != nil {
		return now()
	}
	return time.Now()
}

// htmlWriter writes markup and remembers the first error, so component
// bodies read top to bottom without an error check per tag.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes a sanitized href attribute.
func (h *htmlWriter) href(u string) {
	h.attr("href", string(templ.URL(u)))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

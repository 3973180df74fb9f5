package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HeadingLevel is the header heading used for a page.
type HeadingLevel int

const (
	HeadingLarge   HeadingLevel = 1 // home page
	HeadingCompact HeadingLevel = 3 // every other page
)

// HeaderLevel picks the header heading for pathname: large on the root path,
// compact everywhere else.
func HeaderLevel(pathname, rootPath string) HeadingLevel {
	if pathname == rootPath {
		return HeadingLarge
	}
	return HeadingCompact
}

// Layout wraps page content with the site header and footer.
// props.Location.Pathname is required.
func Layout(props PageProps, rootPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		level := HeaderLevel(props.Location.Pathname, rootPath)
		tag := "h" + strconv.Itoa(int(level))

		h.raw(`<div class="layout">`)
		h.raw(`<header>`)
		h.raw(`<` + tag + ` class="site-title">`)
		h.raw(`<a class="header-blogtitle"`)
		h.href(SitePath(rootPath, "/"))
		h.raw(`>`)
		h.text(props.Title)
		h.raw(`</a>`)
		h.raw(`</` + tag + `>`)
		h.raw(`</header>`)

		h.raw(`<main>`)
		h.component(ctx, props.Children)
		h.raw(`</main>`)

		h.raw(`<footer>© `)
		h.text(strconv.Itoa(clock(ctx).Year()))
		h.raw(`, built with love.</footer>`)
		h.raw(`</div>`)
		return h.err
	})
}

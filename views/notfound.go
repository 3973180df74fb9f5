package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFoundTitle is the document title of the 404 page.
const NotFoundTitle = "404 Page introuvable"

// NotFound renders the 404 page for pathname: Layout with a fixed message and
// a single link back to the root path.
func NotFound(site SiteContext, pathname string) templ.Component {
	return site.page(NotFoundTitle, pathname, notFoundBody(site.RootPath))
}

func notFoundBody(rootPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Désolé ...</h1>`)
		h.raw(`<p>Il n&#39;y a rien ici, <a`)
		h.href(SitePath(rootPath, "/"))
		h.raw(`>retourne par là</a> !</p>`)
		return h.err
	})
}

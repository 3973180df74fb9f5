package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Home renders the post index at the root path.
func Home(site SiteContext, posts []Post) templ.Component {
	return site.page("", site.RootPath, homeBody(site, posts))
}

func homeBody(site SiteContext, posts []Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.component(ctx, Bio(site.Query, site.Bio))
		if len(posts) == 0 {
			h.raw(`<p class="post-list-empty">Aucun article pour le moment.</p>`)
			return h.err
		}
		h.raw(`<ol class="post-list">`)
		for _, p := range posts {
			h.raw(`<li><article class="post-list-item">`)
			h.raw(`<header><h3><a`)
			h.href(SitePath(site.RootPath, p.Path()))
			h.raw(`>`)
			h.text(p.Title)
			h.raw(`</a></h3>`)
			if d := FormatDate(p.Date); d != "" {
				h.raw(`<small>`)
				h.text(d)
				h.raw(`</small>`)
			}
			h.raw(`</header>`)
			if s := p.Summary(); s != "" {
				h.raw(`<p>`)
				h.text(s)
				h.raw(`</p>`)
			}
			h.raw(`</article></li>`)
		}
		h.raw(`</ol>`)
		return h.err
	})
}

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PostPage renders a single article followed by the author card and links
// to the neighbouring posts.
func PostPage(site SiteContext, post Post, nav PostNav) templ.Component {
	return site.page(post.Title, SitePath(site.RootPath, post.Path()), postBody(site, post, nav))
}

func postBody(site SiteContext, post Post, nav PostNav) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<article class="post">`)
		h.raw(`<header><h1>`)
		h.text(post.Title)
		h.raw(`</h1>`)
		if d := FormatDate(post.Date); d != "" {
			h.raw(`<p class="post-date">`)
			h.text(d)
			h.raw(`</p>`)
		}
		h.raw(`</header>`)
		h.raw(`<section class="post-body">`)
		// Post HTML comes from the markdown renderer, which drops raw HTML.
		h.raw(string(post.HTML))
		h.raw(`</section>`)
		h.raw(`<hr/>`)
		h.raw(`<footer>`)
		h.component(ctx, Bio(site.Query, site.Bio))
		h.raw(`</footer>`)
		h.raw(`</article>`)

		if nav.Previous == nil && nav.Next == nil {
			return h.err
		}
		h.raw(`<nav class="post-nav"><ul>`)
		h.raw(`<li>`)
		if p := nav.Previous; p != nil {
			h.raw(`<a rel="prev"`)
			h.href(SitePath(site.RootPath, p.Path()))
			h.raw(`>← `)
			h.text(p.Title)
			h.raw(`</a>`)
		}
		h.raw(`</li><li>`)
		if n := nav.Next; n != nil {
			h.raw(`<a rel="next"`)
			h.href(SitePath(site.RootPath, n.Path()))
			h.raw(`>`)
			h.text(n.Title)
			h.raw(` →</a>`)
		}
		h.raw(`</li>`)
		h.raw(`</ul></nav>`)
		return h.err
	})
}

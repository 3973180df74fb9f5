package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// SiteContext is what every full page needs besides its own content. The
// generator builds it once per build and hands the same value to each page.
type SiteContext struct {
	Query      StaticQuery
	Bio        BioCopy
	RootPath   string
	Lang       string
	Stylesheet string
}

// Metadata returns the resolved site metadata.
func (s SiteContext) Metadata() SiteMetadata {
	return s.Query.Site.SiteMetadata
}

// PageTitle formats a document title as "page | site", or just the site
// title for the home page.
func (s SiteContext) PageTitle(page string) string {
	site := s.Metadata().Title
	if page == "" || page == site {
		return site
	}
	return page + " | " + site
}

func (s SiteContext) head(page string) Head {
	return Head{Lang: s.Lang, Title: s.PageTitle(page), Stylesheet: s.Stylesheet}
}

// Document renders the html shell around body.
func Document(head Head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html`)
		if head.Lang != "" {
			h.attr("lang", head.Lang)
		}
		h.raw(`><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw(`<title>`)
		h.text(head.Title)
		h.raw(`</title>`)
		if head.Stylesheet != "" {
			h.raw(`<link rel="stylesheet"`)
			h.href(head.Stylesheet)
			h.raw(`/>`)
		}
		h.raw(`</head><body>`)
		h.component(ctx, body)
		h.raw(`</body></html>`)
		return h.err
	})
}

// page wraps children in Layout and the document shell.
func (s SiteContext) page(title, pathname string, children templ.Component) templ.Component {
	layout := Layout(PageProps{
		Location: Location{Pathname: pathname},
		Title:    s.Metadata().Title,
		Children: children,
	}, s.RootPath)
	return Document(s.head(title), layout)
}

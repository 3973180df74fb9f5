package views

import (
	"html/template"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// SiteMetadata is the site-wide data supplied by the generator at build time.
// Components only read it.
type SiteMetadata struct {
	Title       string
	Author      string
	Description string
	SiteURL     string
	Social      Social
}

// Social holds the author's external profile handles.
type Social struct {
	Twitter string
}

// FixedImage describes an image pre-processed to fixed pixel dimensions.
type FixedImage struct {
	Width  int
	Height int
	Src    string
	SrcSet string // "a.jpg 1x, b.jpg 2x"; empty when only one rendition exists
}

// StaticQuery is the resolved data shape the bio card needs:
//
//	site { siteMetadata { title author social { twitter } } }
//	avatar { childImageSharp { fixed(width: 75, height: 75) } }
//
// The generator fills it before rendering; components never fetch anything.
type StaticQuery struct {
	Site   Site
	Avatar AvatarFile
}

type Site struct {
	SiteMetadata SiteMetadata
}

type AvatarFile struct {
	ChildImageSharp ImageSharp
}

type ImageSharp struct {
	Fixed FixedImage
}

// Location is the routed location of the page being rendered.
type Location struct {
	Pathname string
}

// PageProps is passed from the page layer into Layout once per render.
type PageProps struct {
	Location Location
	Title    string
	Children templ.Component
}

// Post is a rendered markdown article.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	Description string
	Excerpt     string
	HTML        template.HTML
}

// Path returns the post's route relative to the site root, with each slug
// segment path-escaped.
func (p Post) Path() string {
	segs := strings.Split(p.Slug, "/")
	for i, s := range segs {
		segs[i] = PathEscape(s)
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// Summary is the description from front matter, or the excerpt.
func (p Post) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Excerpt
}

// PostNav links a post to its chronological neighbours.
type PostNav struct {
	Previous *Post // older
	Next     *Post // newer
}

// Head carries the <head> values of a document.
type Head struct {
	Lang       string
	Title      string
	Stylesheet string
}

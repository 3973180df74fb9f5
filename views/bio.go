package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// BioRevision selects which biography copy the author card shows.
type BioRevision string

const (
	BioShort BioRevision = "short"
	BioLong  BioRevision = "long" // adds Description before the profile link
)

// BioCopy is the text of the author card.
type BioCopy struct {
	Revision    BioRevision
	Summary     string
	Description string
	LinkText    string
}

// Bio renders the author card: the fixed avatar, a short biography and a
// link to the author's twitter profile.
func Bio(q StaticQuery, bio BioCopy) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := q.Site.SiteMetadata
		img := q.Avatar.ChildImageSharp.Fixed
		h := &htmlWriter{w: w}

		h.raw(`<div class="bio">`)
		h.raw(`<div class="bio-avatar">`)
		if img.Src != "" {
			h.raw(`<img class="bio-avatar-image"`)
			h.attr("src", img.Src)
			if img.SrcSet != "" {
				h.attr("srcset", img.SrcSet)
			}
			h.attr("width", strconv.Itoa(img.Width))
			h.attr("height", strconv.Itoa(img.Height))
			h.attr("alt", meta.Author)
			h.raw(` loading="lazy"/>`)
		}
		h.raw(`</div>`)

		h.raw(`<div class="bio-text">`)
		h.raw(`<span>`)
		h.text(bio.Summary)
		h.raw(`</span>`)
		if bio.Revision == BioLong && bio.Description != "" {
			h.raw(`<p class="bio-description">`)
			h.text(bio.Description)
			h.raw(`</p>`)
		}
		h.raw(`<div><a class="bio-link"`)
		h.href(TwitterURL(meta.Social.Twitter))
		h.raw(`>`)
		h.text(bio.LinkText)
		h.raw(`</a></div>`)
		h.raw(`</div>`)
		h.raw(`</div>`)
		return h.err
	})
}

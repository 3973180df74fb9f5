package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(t *testing.T, n *html.Node, tag string) *html.Node {
	t.Helper()
	nodes := findAll(n, tag)
	if len(nodes) == 0 {
		t.Fatalf("no <%s> element found", tag)
	}
	return nodes[0]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func testSite() SiteContext {
	return SiteContext{
		Query: StaticQuery{
			Site: Site{SiteMetadata: SiteMetadata{
				Title:  "My Blog",
				Author: "Jane Doe",
				Social: Social{Twitter: "janedoe"},
			}},
			Avatar: AvatarFile{ChildImageSharp: ImageSharp{Fixed: FixedImage{
				Width:  75,
				Height: 75,
				Src:    "/static/abc/profile-pic.jpg",
				SrcSet: "/static/abc/profile-pic.jpg 1x, /static/def/profile-pic.jpg 2x",
			}}},
		},
		Bio: BioCopy{
			Revision: BioShort,
			Summary:  "Pas grand chose d'utile, mais beaucoup de trucs cools.",
			LinkText: "Sur Twitter",
		},
		RootPath:   "/",
		Lang:       "fr",
		Stylesheet: "/style.css",
	}
}

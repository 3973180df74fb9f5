// Package markdown turns post sources (YAML front matter plus a markdown
// body) into HTML and the metadata the post pages need.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExcerptLength is the rune limit of generated excerpts.
const ExcerptLength = 140

// Meta is the front matter of a post.
type Meta struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// Document is a parsed post source.
type Document struct {
	Meta    Meta
	HTML    template.HTML
	Excerpt string
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Render writes the HTML for a markdown body. Raw HTML in the source is
// omitted and dangerous link destinations are dropped.
func Render(w io.Writer, src []byte) error {
	return md.Convert(src, w)
}

// Parse splits front matter from the body and renders the body.
// A source without front matter is treated as a pure markdown body.
func Parse(src []byte) (Document, error) {
	var doc Document
	body, err := frontmatter.Parse(bytes.NewReader(src), &doc.Meta)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, body); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}
	doc.HTML = template.HTML(buf.String())
	doc.Excerpt = Excerpt(body, ExcerptLength)
	return doc, nil
}

// Excerpt returns up to max runes of the body's paragraph text, skipping
// headings and code. Truncated excerpts end with "…".
func Excerpt(body []byte, max int) string {
	root := md.Parser().Parse(text.NewReader(body))
	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindParagraph && b.Len() > 0 {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading, *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(n.Segment.Value(body))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return truncate(strings.Join(strings.Fields(b.String()), " "), max)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)[:max]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q: use YYYY-MM-DD or RFC 3339", s)
}

// TitleFromSlug turns "my-first_post" into "My First Post" using the casing
// rules of lang.
func TitleFromSlug(slug string, lang language.Tag) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(lang).String(strings.Join(strings.Fields(words), " "))
}

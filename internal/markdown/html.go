package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// Rendered is a page converted to HTML and parsed back into a node tree.
// Inline HTML of the page is kept as is.
type Rendered struct {
	doc *html.Node
}

// Render converts body to HTML.
func Render(body []byte) (*Rendered, error) {
	md := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to render page").Build()
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse rendered page").Build()
	}
	return &Rendered{doc: doc}, nil
}

// Links returns the href of every anchor element in document order.
func (r *Rendered) Links() []string {
	var out []string
	walk(r.doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); href != "" {
				out = append(out, href)
			}
		}
		return true
	})
	return out
}

// LinkWithPrefix returns the first href starting with prefix, or "".
func (r *Rendered) LinkWithPrefix(prefix string) string {
	for _, href := range r.Links() {
		if strings.HasPrefix(href, prefix) {
			return href
		}
	}
	return ""
}

// CodeBlocks returns the unescaped text of every fenced or indented code block.
func (r *Rendered) CodeBlocks() []string {
	var out []string
	walk(r.doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "code" && n.Parent != nil && n.Parent.Data == "pre" {
			out = append(out, textContent(n))
			return false
		}
		return true
	})
	return out
}

// walk visits n and its descendants; fn returning false skips the children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

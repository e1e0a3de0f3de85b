// Package markdown inspects generated pages with goldmark.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level int
	Text  string
}

// Headings returns the headings of body at the given level, in document
// order. Level 0 returns every heading.
func Headings(body []byte, level int) []Heading {
	var out []Heading
	_ = gmast.Walk(ParseBody(body), func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if level == 0 || h.Level == level {
			out = append(out, Heading{Level: h.Level, Text: inlineText(h, body)})
		}
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// inlineText concatenates the text segments below n.
func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := c.(*gmast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

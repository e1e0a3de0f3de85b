// Package page renders example pages and writes generated markdown pages
// beneath the book source directory.
package page

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/snippet"
)

// Disclaimer is the first line of every generated example page.
const Disclaimer = "<!-- This file is autogenerated! Do not modify it -->"

const (
	DefaultLanguage    = "numbat"
	DefaultRunLinkText = "Run this example"

	// UnitsPage is the page holding the raw unit listing.
	UnitsPage = "list-units.md"
)

// ExamplePath returns the page file name for an example key.
func ExamplePath(key string) string { return "example-" + key + ".md" }

// FunctionsPath returns the page file name for a topic document.
func FunctionsPath(topic string) string { return "list-functions-" + topic + ".md" }

// Example holds everything needed to render one example page.
type Example struct {
	Title       string
	Lines       snippet.Snippet
	Language    string
	RunLink     string // empty: no run link line
	RunLinkText string
}

// RenderExample composes the page: disclaimer, blank line, title heading,
// optional run link, blank line and the fenced snippet.
func RenderExample(ex Example) string {
	lang := ex.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	var b strings.Builder
	b.WriteString(Disclaimer + "\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "# %s\n", ex.Title)
	if ex.RunLink != "" {
		text := ex.RunLinkText
		if text == "" {
			text = DefaultRunLinkText
		}
		fmt.Fprintf(&b, "<a href=\"%s\"><i class=\"fa fa-play\"></i> %s</a>\n", ex.RunLink, text)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "``` %s\n", lang)
	for _, line := range ex.Lines {
		b.WriteString(line)
	}
	// keep the closing fence on its own line
	if n := len(ex.Lines); n > 0 && !strings.HasSuffix(ex.Lines[n-1], "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

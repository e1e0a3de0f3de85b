// Package funclist renders topic documents into function-list pages, pulling
// each module's description from the introspection tool.
package funclist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/inspect"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/manifest"
)

const (
	// IndexThreshold is the minimum number of sections for which the index line is emitted.
	IndexThreshold = 3
	// Separator joins the links of the index line.
	Separator = " · "
	// DefinedInLabel prefixes the module list of each section.
	DefinedInLabel = "Defined in:"
)

// Anchor returns the heading anchor for a section title: lower-cased, spaces
// replaced by hyphens. Titles that collapse to the same anchor are not disambiguated.
func Anchor(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// IndexLine returns the index of titled sections, or "" when the document has
// fewer than IndexThreshold sections.
func IndexLine(doc manifest.TopicDocument) (string, bool) {
	if len(doc.Sections) < IndexThreshold {
		return "", false
	}
	links := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if s.Title == "" {
			continue
		}
		links = append(links, fmt.Sprintf("[%s](#%s)", s.Title, Anchor(s.Title)))
	}
	return strings.Join(links, Separator), true
}

// DefinedIn returns the back-tick-quoted, comma-separated module line.
func DefinedIn(modules []string) string {
	return fmt.Sprintf("%s `%s`", DefinedInLabel, strings.Join(modules, "`, `"))
}

// Render writes the page for doc to w. Introspection output is appended
// verbatim after each section header. The first failing module aborts the page.
func Render(ctx context.Context, w io.Writer, doc manifest.TopicDocument, src inspect.Streamer) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", doc.Title); err != nil {
		return err
	}
	if doc.Introduction != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", doc.Introduction); err != nil {
			return err
		}
	}
	if index, ok := IndexLine(doc); ok {
		if _, err := fmt.Fprintf(w, "%s\n\n", index); err != nil {
			return err
		}
	}
	for _, section := range doc.Sections {
		if section.Title != "" {
			if _, err := fmt.Fprintf(w, "## %s\n\n", section.Title); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", DefinedIn(section.Modules)); err != nil {
			return err
		}
		for _, module := range section.Modules {
			slog.Info("Generating list of functions", logfields.Topic(doc.Name), logfields.Module(module))
			if err := src.StreamFunctions(ctx, w, module); err != nil {
				return err
			}
		}
	}
	return nil
}

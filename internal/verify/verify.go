// Package verify re-reads generated pages and reports problems that do not
// stop a build: colliding section anchors, run links that do not reproduce the
// page's code and example sources missing from the manifest.
package verify

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/funclist"
	"git.home.luguber.info/inful/bookgen/internal/manifest"
	"git.home.luguber.info/inful/bookgen/internal/markdown"
	"git.home.luguber.info/inful/bookgen/internal/permalink"
)

// Check names a kind of finding.
type Check string

const (
	CheckAnchorCollision Check = "anchor_collision"
	CheckRunLink         Check = "run_link"
	CheckOrphanExample   Check = "orphan_example"
)

// Finding is a single warning produced by a check.
type Finding struct {
	Check   Check  `json:"check"`
	Page    string `json:"page,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	if f.Page == "" {
		return fmt.Sprintf("%s: %s", f.Check, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Check, f.Page, f.Message)
}

// Checker holds what the checks need to know about the book layout.
type Checker struct {
	Encoder     permalink.Encoder
	ExamplesDir string
	ExampleExt  string
}

// FunctionsPage reports level-2 headings of a function-list page whose anchors collide.
func (c Checker) FunctionsPage(name string, source []byte) []Finding {
	seen := map[string]string{}
	var findings []Finding
	for _, h := range SectionHeadings(source) {
		if prev, ok := seen[h.Anchor]; ok {
			findings = append(findings, Finding{
				Check:   CheckAnchorCollision,
				Page:    name,
				Message: fmt.Sprintf("sections %q and %q share anchor #%s", prev, h.Title, h.Anchor),
			})
			continue
		}
		seen[h.Anchor] = h.Title
	}
	return findings
}

// ExamplePage checks that the run link of an example page decodes to the code
// shown on the page. Pages without a run link pass.
func (c Checker) ExamplePage(name string, source []byte) []Finding {
	href, code, err := RunLinkAndCode(source, c.Encoder.BaseURL)
	if err != nil {
		return []Finding{{Check: CheckRunLink, Page: name, Message: err.Error()}}
	}
	if href == "" {
		return nil
	}
	decoded, err := c.Encoder.Decode(href)
	if err != nil {
		return []Finding{{Check: CheckRunLink, Page: name, Message: err.Error()}}
	}
	if normalizeCode(decoded) != normalizeCode(code) {
		return []Finding{{Check: CheckRunLink, Page: name, Message: "run link does not match the code block"}}
	}
	return nil
}

// normalizeCode folds CRLF to LF, since the HTML parser does the same to the
// code block, and drops one trailing newline.
func normalizeCode(s string) string {
	return strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// Heading is a level-2 section heading and the anchor the index line links to.
type Heading struct {
	Title  string
	Anchor string
}

// SectionHeadings returns the level-2 headings of a markdown document in order.
func SectionHeadings(source []byte) []Heading {
	var out []Heading
	for _, h := range markdown.Headings(source, 2) {
		out = append(out, Heading{Title: h.Text, Anchor: funclist.Anchor(h.Text)})
	}
	return out
}

// RunLinkAndCode returns the first link of the page pointing at baseURL and
// the text of its first code block.
func RunLinkAndCode(source []byte, baseURL string) (href, code string, err error) {
	r, err := markdown.Render(source)
	if err != nil {
		return "", "", err
	}
	if blocks := r.CodeBlocks(); len(blocks) > 0 {
		code = blocks[0]
	}
	return r.LinkWithPrefix(baseURL), code, nil
}

// Orphans lists example sources directly in ExamplesDir that no manifest
// entry names. Subdirectories hold test and module sources and are not scanned.
func (c Checker) Orphans(m *manifest.Manifest) ([]Finding, error) {
	pattern := filepath.Join(c.ExamplesDir, "*."+c.ExampleExt)
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileAccess, "failed to list example sources").
			Fatal().
			WithContext("path", c.ExamplesDir).
			Build()
	}
	known := make(map[string]struct{}, len(m.Examples))
	for _, ex := range m.Examples {
		known[ex.Key] = struct{}{}
	}
	sort.Strings(matches)
	var findings []Finding
	for _, path := range matches {
		rel, err := filepath.Rel(c.ExamplesDir, path)
		if err != nil {
			continue
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), "."+c.ExampleExt)
		if _, ok := known[key]; ok {
			continue
		}
		findings = append(findings, Finding{
			Check:   CheckOrphanExample,
			Message: fmt.Sprintf("%s is not listed in the manifest", filepath.ToSlash(path)),
		})
	}
	return findings, nil
}

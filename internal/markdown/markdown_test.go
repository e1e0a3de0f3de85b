package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadings(t *testing.T) {
	src := []byte("# Math\n\n[Basics](#basics)\n\n## Basics\n\ntext\n\n## Trigonometry `sin`\n\n### fn sin\n")

	assert.Equal(t, []Heading{
		{Level: 2, Text: "Basics"},
		{Level: 2, Text: "Trigonometry sin"},
	}, Headings(src, 2))
	assert.Len(t, Headings(src, 0), 4)
}

func TestRenderLinksAndCode(t *testing.T) {
	src := []byte("# Title\n" +
		"<a href=\"https://numbat.dev/?q=1+%3C+2%0A\"><i class=\"fa fa-play\"></i> Run this example</a>\n" +
		"\n" +
		"``` numbat\n" +
		"1 < 2 && true\n" +
		"```\n" +
		"\n[other](https://example.com)\n")

	r, err := Render(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://numbat.dev/?q=1+%3C+2%0A", "https://example.com"}, r.Links())
	assert.Equal(t, "https://example.com", r.LinkWithPrefix("https://example"))
	assert.Empty(t, r.LinkWithPrefix("ftp://"))
	assert.Equal(t, []string{"1 < 2 && true\n"}, r.CodeBlocks())
}

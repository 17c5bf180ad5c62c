// ABOUTME: Markdown rendering for text elements using goldmark
// ABOUTME: Raw HTML in the source is omitted from the output

package webui

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// renderMarkdown converts text to HTML. On failure the text is returned
// escaped.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

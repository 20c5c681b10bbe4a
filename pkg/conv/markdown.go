package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	chatPolicy = bluemonday.UGCPolicy()
)

// MarkdownToHTML renders chat text written in Markdown to the sanitised HTML
// stored as message content.
func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(chatPolicy.SanitizeBytes(unsafeHTML))
}

// SanitizeHTML drops scripts, handlers and other unsafe markup from imported content.
func SanitizeHTML(s string) string {
	return chatPolicy.Sanitize(s)
}

package html

import (
	"html"
	"io"
	"strings"

	"github.com/recera/vango-atomic/pkg/styling"
)

// WriteStyleTag writes the rules of sheet as a <style> element.
// The browser side adopts the element by id, see dom.NewRenderTarget.
func WriteStyleTag(w io.Writer, id string, sheet *styling.MemorySheet) error {
	var b strings.Builder
	b.WriteString(`<style id="`)
	b.WriteString(html.EscapeString(id))
	b.WriteString(`">`)
	for _, rule := range sheet.Rules() {
		b.WriteString(escapeStyleText(rule))
	}
	b.WriteString("</style>")

	_, err := io.WriteString(w, b.String())
	return err
}

// StyleTag returns the <style> element for sheet
func StyleTag(id string, sheet *styling.MemorySheet) string {
	var b strings.Builder
	_ = WriteStyleTag(&b, id, sheet)
	return b.String()
}

// escapeStyleText keeps rule text from closing the style element early.
// The match is case-insensitive and done on the original bytes.
func escapeStyleText(css string) string {
	const closing = "</style"

	var b strings.Builder
	b.Grow(len(css))
	for i := 0; i < len(css); i++ {
		if css[i] == '<' && len(css)-i >= len(closing) && strings.EqualFold(css[i:i+len(closing)], closing) {
			b.WriteString(`\3c `)
			continue
		}
		b.WriteByte(css[i])
	}
	return b.String()
}

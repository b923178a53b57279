package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// EscapeHTML escapes text content.
func EscapeHTML(s string) string { return textEscaper.Replace(s) }

// EscapeAttr escapes an attribute value. Whitespace control characters are
// encoded as well.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }

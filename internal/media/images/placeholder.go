package images

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/smartlife/recommender/internal/color"
)

// Placeholder default size, matching the card artwork aspect ratio.
const (
	PlaceholderWidth  = 300
	PlaceholderHeight = 420
)

// Placeholder renders an SVG card with the label's initials on a colour
// derived from the label. It stands in for missing artwork.
func Placeholder(label string, width, height int) []byte {
	if width <= 0 {
		width = PlaceholderWidth
	}
	if height <= 0 {
		height = PlaceholderHeight
	}
	swatch := color.ForName(label)
	fontSize := min(width, height) / 3

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`, swatch.Background)
	fmt.Fprintf(&buf, `<rect x="0" y="%d" width="100%%" height="4" fill="%s"/>`, height-4, color.Accent)
	fmt.Fprintf(&buf, `<text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" font-family="Segoe UI, sans-serif" font-size="%d" font-weight="700" fill="%s">%s</text>`,
		fontSize, swatch.Foreground, html.EscapeString(Initials(label)))
	fmt.Fprintf(&buf, `<title>%s</title>`, html.EscapeString(label))
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

// Initials returns up to two upper-case initials from the words of label,
// or "?" when there are none.
func Initials(label string) string {
	var out []rune
	for _, word := range strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out = append(out, unicode.ToUpper([]rune(word)[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

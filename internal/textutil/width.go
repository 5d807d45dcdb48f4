package textutil

import (
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// FitWidth shortens text so it occupies at most width terminal columns,
// marking the cut with an ellipsis.
func FitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}

	used := 0
	limit := width - 1
	for idx, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		if used+w > limit {
			return text[:idx] + ellipsis
		}
		used += w
	}
	return text
}

package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
	textutil "github.com/kk-code-lab/skillsearch/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	locationDesc := "Only offers near me"
	if state != nil && state.Filters.OnlyMyLocation {
		locationDesc = "Offers from everywhere"
	}

	sections := []helpOverlaySection{
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "type", desc: "Edit the query"},
				{keys: "↵", desc: "Search (or open the selected entry)"},
				{keys: "Esc", desc: "Clear the query, then reset"},
				{keys: "Ctrl+R", desc: "Reset query and results"},
				{keys: "Ctrl+W", desc: "Delete word"},
			},
		},
		{
			title: "Filters",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+O", desc: "Cycle offers / seeking / all"},
				{keys: "Ctrl+L", desc: locationDesc},
				{keys: "Tab", desc: "Filter pane for price and country"},
			},
		},
		{
			title: "Panes",
			entries: []helpOverlayEntry{
				{keys: "Tab/Shift+Tab", desc: "Next / previous pane"},
				{keys: "↑/↓ j/k", desc: "Move selection"},
				{keys: "g/G", desc: "First / last"},
				{keys: "h", desc: "Recent results"},
				{keys: "s or Ctrl+G", desc: "Suggestions for you"},
				{keys: "/", desc: "Back to the query"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeCell(entry.keys)
	desc := textutil.SanitizeCell(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		footerText := r.truncateTextToWidth(footer, w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}

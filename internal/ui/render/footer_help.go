package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch state.Focus {
	case statepkg.FocusQuery:
		return []string{
			"type: query",
			"↵: search",
			"Esc: clear/reset",
			"↓: results",
		}
	case statepkg.FocusFilters:
		if state.FilterField.Editable() {
			return []string{
				"type: edit",
				"↑↓: field",
				"↵: search",
			}
		}
		return []string{
			"←/→/space: change",
			"↑↓: field",
			"↵: search",
		}
	case statepkg.FocusHistory:
		return []string{
			"↑↓: select",
			"↵: open entry",
			"/: query",
		}
	case statepkg.FocusSuggestions:
		return []string{
			"↑↓: select",
			"↵: search title",
			"s: reload",
		}
	default:
		return []string{
			"↑↓/jk: select",
			"h: history",
			"s: suggestions",
			"/: query",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := []string{"Tab: pane", "^O: type", "^L: location"}
	if state.Focus != statepkg.FocusQuery && state.Focus != statepkg.FocusFilters {
		segments = append(segments, "?: help", "q: quit")
	}
	return segments
}

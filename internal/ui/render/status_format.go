package render

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/search"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
)

func formatCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// formatResultSummary describes the result pane for its title and the status
// line.
func formatResultSummary(state *statepkg.AppState) string {
	if state == nil {
		return ""
	}
	if state.IsSearching {
		return "searching…"
	}
	if state.Results == nil {
		if state.HasSearched {
			return "no results"
		}
		return ""
	}
	if state.Results.IsEmpty() {
		return "no results"
	}

	parts := []string{
		formatCount(len(state.Results.Skills), "skill", "skills"),
		formatCount(len(state.Results.Users), "user", "users"),
	}
	if state.IsFromHistory {
		parts = append(parts, "from history")
	}
	return strings.Join(parts, " · ")
}

func offerTag(skill search.SkillResult) string {
	if skill.IsSeeking {
		return "seeking"
	}
	return "offer"
}

func formatPrice(skill search.SkillResult) string {
	price := skill.Price.String()
	if price == "" {
		return ""
	}
	if skill.Currency != "" {
		return "from " + price + " " + skill.Currency
	}
	return "from " + price
}

func formatPlace(skill search.SkillResult) string {
	parts := make([]string, 0, 2)
	if skill.District != "" {
		parts = append(parts, skill.District)
	}
	if skill.Location != "" {
		parts = append(parts, skill.Location)
	}
	return strings.Join(parts, ", ")
}

// formatSkillDetails is everything after the title: owner, price and place.
func formatSkillDetails(skill search.SkillResult) string {
	var parts []string
	if skill.OwnerDisplayName != "" {
		parts = append(parts, skill.OwnerDisplayName)
	}
	if price := formatPrice(skill); price != "" {
		parts = append(parts, price)
	}
	if place := formatPlace(skill); place != "" {
		parts = append(parts, place)
	}
	return strings.Join(parts, " · ")
}

func formatUserLabel(user search.UserResult) string {
	label := user.DisplayName
	if user.Slug != "" {
		label += " @" + user.Slug
	}
	if user.IsVerified {
		label += " ✓"
	}
	return label
}

func formatFilterField(state *statepkg.AppState, field statepkg.FilterField) string {
	var value string
	switch field {
	case statepkg.FilterOfferType:
		value = state.Filters.OfferType.Label()
	case statepkg.FilterOnlyMyLocation:
		value = "off"
		if state.Filters.OnlyMyLocation {
			value = "on"
		}
	default:
		value = state.FilterValue(field)
		if value == "" {
			value = "–"
		}
	}
	return field.String() + ": " + value
}

// querySpans marks every case-insensitive occurrence of the query in text.
func querySpans(query, text string) []highlightSpan {
	pattern := lowerRunes(strings.TrimSpace(query))
	if len(pattern) == 0 || text == "" {
		return nil
	}
	target := lowerRunes(text)

	var spans []highlightSpan
	for i := 0; i+len(pattern) <= len(target); {
		if runesEqual(target[i:i+len(pattern)], pattern) {
			spans = append(spans, highlightSpan{start: i, end: i + len(pattern)})
			i += len(pattern)
			continue
		}
		i++
	}
	return spans
}

// lowerRunes lower-cases rune by rune so indexes line up with the input.
func lowerRunes(text string) []rune {
	runes := []rune(text)
	for i, ru := range runes {
		runes[i] = unicode.ToLower(ru)
	}
	return runes
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// formatHistoryLabel names an entry by its first titles, or its users when
// it holds no skills.
func formatHistoryLabel(entry history.Entry) string {
	const shown = 2
	var names []string
	for _, skill := range entry.Skills {
		if title := skill.Title(); title != "" && !slices.Contains(names, title) {
			names = append(names, title)
		}
	}
	if len(names) == 0 {
		for _, user := range entry.Users {
			if user.DisplayName != "" {
				names = append(names, user.DisplayName)
			}
		}
	}
	if len(names) == 0 {
		return "(untitled)"
	}
	label := strings.Join(names[:min(shown, len(names))], ", ")
	if extra := len(names) - shown; extra > 0 {
		label += fmt.Sprintf(" +%d", extra)
	}
	return label
}

func formatHistoryCounts(entry history.Entry) string {
	return formatCount(len(entry.Skills), "skill", "skills") + " · " + formatCount(len(entry.Users), "user", "users")
}

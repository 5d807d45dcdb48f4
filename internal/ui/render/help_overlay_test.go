package render

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/skillsearch/internal/search"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
)

func TestBuildHelpOverlayLinesIncludesSections(t *testing.T) {
	lines := buildHelpOverlayLines(&statepkg.AppState{})

	assertContains := func(substr string) {
		found := false
		for _, line := range lines {
			if strings.Contains(line, substr) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected lines to contain %q, got %v", substr, lines)
		}
	}

	assertContains("Search")
	assertContains("Filters")
	assertContains("Panes")
	assertContains("Exit")
	assertContains("Only offers near me")
	assertContains("Recent results")
	assertContains("Suggestions for you")
}

func TestBuildHelpOverlayLinesReflectsLocationToggle(t *testing.T) {
	state := &statepkg.AppState{Filters: search.FilterSet{OnlyMyLocation: true}}
	lines := buildHelpOverlayLines(state)

	joined := strings.Join(lines, " ")
	if !strings.Contains(joined, "Offers from everywhere") {
		t.Fatalf("expected help to offer widening the location filter, got %v", lines)
	}
}

package render

import statepkg "github.com/kk-code-lab/skillsearch/internal/state"

// Fixed rows: header, query, filter bar on top and the status line below.
const (
	headerRow       = 0
	queryRow        = 1
	filterRow       = 2
	listStartRow    = 3
	statusRowsBelow = 1
)

type layoutMetrics struct {
	mainPanelStart int
	mainPanelWidth int
	sideStart      int
	sideWidth      int
	showSide       bool
	listTop        int
	listRows       int
	// Panes drawn in the main area and the side column. The side column
	// stacks its panes top to bottom.
	mainPane  statepkg.Focus
	sidePanes []statepkg.Focus
}

const (
	minMainPanelWidth    = 40
	minSidePanelWidth    = 24
	minSideTerminalWidth = 90
	sideWidthRatio       = 0.35
	sideWidthCap         = 56
)

func computeLayout(w, h int, state *statepkg.AppState) layoutMetrics {
	if w < 0 {
		w = 0
	}

	metrics := layoutMetrics{
		mainPanelWidth: w,
		sideStart:      w,
		listTop:        listStartRow,
		listRows:       h - listStartRow - statusRowsBelow,
		mainPane:       statepkg.FocusResults,
	}
	if metrics.listRows < 0 {
		metrics.listRows = 0
	}

	focus := statepkg.FocusQuery
	if state != nil {
		focus = state.Focus
	}

	if w >= minSideTerminalWidth {
		side := int(float64(w)*sideWidthRatio + 0.5)
		if side < minSidePanelWidth {
			side = minSidePanelWidth
		}
		if side > sideWidthCap {
			side = sideWidthCap
		}
		if w-side-1 >= minMainPanelWidth {
			metrics.showSide = true
			metrics.sideWidth = side
			metrics.mainPanelWidth = w - side - 1
			metrics.sideStart = metrics.mainPanelWidth + 1
			metrics.sidePanes = []statepkg.Focus{statepkg.FocusHistory, statepkg.FocusSuggestions}
			return metrics
		}
	}

	// Narrow terminals show one list: the focused one, results otherwise.
	if focus == statepkg.FocusHistory || focus == statepkg.FocusSuggestions {
		metrics.mainPane = focus
	}
	return metrics
}

// paneRegion is the block of rows a pane occupies, its title row included.
type paneRegion struct {
	pane   statepkg.Focus
	startX int
	width  int
	top    int
	rows   int
}

func (m layoutMetrics) regions() []paneRegion {
	regions := []paneRegion{{
		pane:   m.mainPane,
		startX: m.mainPanelStart,
		width:  m.mainPanelWidth,
		top:    m.listTop,
		rows:   m.listRows,
	}}
	if !m.showSide {
		return regions
	}
	top := m.listTop
	remaining := m.listRows
	for i, pane := range m.sidePanes {
		rows := remaining / (len(m.sidePanes) - i)
		regions = append(regions, paneRegion{pane: pane, startX: m.sideStart, width: m.sideWidth, top: top, rows: rows})
		top += rows
		remaining -= rows
	}
	return regions
}

func paneSelection(state *statepkg.AppState, pane statepkg.Focus) (selected, count int) {
	switch pane {
	case statepkg.FocusHistory:
		return state.HistoryIndex, len(state.History)
	case statepkg.FocusSuggestions:
		return state.SuggestionIndex, len(state.Suggestions)
	default:
		return state.ResultIndex, state.ResultCount()
	}
}

// PaneAt maps a screen cell to the pane drawn there. index is the list row
// under the cell, or -1 for a title row, the query line or the filter bar.
func PaneAt(w, h int, state *statepkg.AppState, x, y int) (pane statepkg.Focus, index int, ok bool) {
	if state == nil || x < 0 || y < 0 || x >= w || y >= h {
		return statepkg.FocusQuery, -1, false
	}
	switch y {
	case queryRow:
		return statepkg.FocusQuery, -1, true
	case filterRow:
		return statepkg.FocusFilters, -1, true
	}

	for _, region := range computeLayout(w, h, state).regions() {
		if x < region.startX || x >= region.startX+region.width || y < region.top || y >= region.top+region.rows {
			continue
		}
		row := y - region.top - 1
		if row < 0 {
			return region.pane, -1, true
		}
		selected, count := paneSelection(state, region.pane)
		start, end := visibleWindow(selected, count, region.rows-1)
		if idx := start + row; idx < end {
			return region.pane, idx, true
		}
		return region.pane, -1, true
	}
	return statepkg.FocusQuery, -1, false
}

// visibleWindow returns the [start, end) slice of a list of total rows that
// fits in rows lines while keeping selected roughly centred.
func visibleWindow(selected, total, rows int) (int, int) {
	if rows <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= rows {
		return 0, total
	}
	start := selected - rows/2
	if start < 0 {
		start = 0
	}
	if start > total-rows {
		start = total - rows
	}
	return start, start + rows
}

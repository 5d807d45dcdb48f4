package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
	textutil "github.com/kk-code-lab/skillsearch/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// listRow is one line of a pane: a short coloured tag, the main text with
// optional match highlights, and dimmed details.
type listRow struct {
	tag      string
	tagColor tcell.Color
	text     string
	spans    []highlightSpan
	detail   string
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	layout := computeLayout(w, h, state)

	r.drawHeader(state, w)
	r.drawQueryLine(state, w)
	r.drawFilterBar(state, w)
	for _, region := range layout.regions() {
		r.drawPane(state, region.pane, region.startX, region.width, region.top, region.rows)
	}

	if layout.showSide {
		sepStyle := tcell.StyleDefault.Foreground(r.theme.DimFg)
		for y := layout.listTop; y < layout.listTop+layout.listRows; y++ {
			r.screen.SetContent(layout.mainPanelWidth, y, '│', nil, sepStyle)
		}
	}

	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with the app name and who is signed in.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	endX := r.drawTextLine(0, headerRow, w, " skillsearch", headerStyle.Bold(true))
	r.fillRow(endX, headerRow, w, headerStyle)

	who := "not signed in"
	if state.Identity.SignedIn() {
		who = textutil.SanitizeCell(state.Identity.Name())
		if who == "" {
			who = "signed in"
		}
	}
	who = r.truncateTextToWidth(who, w-endX-2)
	if who == "" {
		return
	}
	start := w - r.measureTextWidth(who) - 1
	if start < endX+1 {
		start = endX + 1
	}
	r.drawTextLine(start, headerRow, w-start, who, headerStyle.Foreground(r.theme.DimFg))
}

// drawQueryLine renders the prompt, the query and its cursor.
func (r *Renderer) drawQueryLine(state *statepkg.AppState, w int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	focused := state.Focus == statepkg.FocusQuery

	promptStyle := baseStyle.Foreground(r.theme.DimFg)
	if focused {
		promptStyle = baseStyle.Foreground(r.theme.FocusFg).Bold(true)
	}
	cursorStyle := baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	x := r.drawStyledStringClipped(0, queryRow, w, "> ", promptStyle)

	queryRunes := []rune(textutil.SanitizeCell(state.Query))
	cursor := state.CursorPos
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(queryRunes) {
		cursor = len(queryRunes)
	}

	if len(queryRunes) == 0 {
		if focused {
			x = r.drawStyledRune(x, queryRow, w, '█', cursorStyle)
		}
		x = r.drawStyledStringClipped(x, queryRow, w, "(search skills and people)", baseStyle.Dim(true))
		r.fillRow(x, queryRow, w, baseStyle)
		return
	}

	// Keep the cursor on screen for queries wider than the terminal.
	start := 0
	if room := w - x - 1; room > 0 && cursor > room {
		start = cursor - room
	}
	for idx := start; idx < len(queryRunes); idx++ {
		if x >= w {
			break
		}
		style := baseStyle
		if focused && idx == cursor {
			style = cursorStyle
		}
		x = r.drawStyledRune(x, queryRow, w, queryRunes[idx], style)
	}
	if focused && cursor == len(queryRunes) && x < w {
		x = r.drawStyledRune(x, queryRow, w, '█', cursorStyle)
	}
	r.fillRow(x, queryRow, w, baseStyle)
}

// drawFilterBar renders every filter field on one row. The selected field is
// highlighted while the filter pane has focus.
func (r *Renderer) drawFilterBar(state *statepkg.AppState, w int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.DimFg)
	activeStyle := tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	focused := state.Focus == statepkg.FocusFilters

	x := r.drawStyledStringClipped(0, filterRow, w, "  ", baseStyle)
	for field := statepkg.FilterOfferType; field <= statepkg.FilterCountry; field++ {
		if x >= w {
			break
		}
		if field > statepkg.FilterOfferType {
			x = r.drawStyledStringClipped(x, filterRow, w, "  ", baseStyle)
		}
		style := baseStyle
		if focused && field == state.FilterField {
			style = activeStyle
		}
		text := textutil.SanitizeCell(formatFilterField(state, field))
		x = r.drawStyledStringClipped(x, filterRow, w, text, style)
	}
	r.fillRow(x, filterRow, w, baseStyle)
}

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

func spinnerFrame(now time.Time) string {
	idx := int(now.UnixNano()/int64(spinnerInterval)) % len(spinnerFrames)
	return string(spinnerFrames[idx])
}

// drawPane renders a titled list. The first row is the title.
func (r *Renderer) drawPane(state *statepkg.AppState, pane statepkg.Focus, startX, width, top, rows int) {
	if rows <= 0 || width <= 0 {
		return
	}
	focused := state.Focus == pane
	if pane == statepkg.FocusResults && (state.Focus == statepkg.FocusQuery || state.Focus == statepkg.FocusFilters) {
		focused = false
	}

	var (
		title    string
		items    []listRow
		selected int
		empty    string
	)
	switch pane {
	case statepkg.FocusHistory:
		title = "Recent"
		items = r.historyRows(state)
		selected = state.HistoryIndex
		empty = "No recent results"
	case statepkg.FocusSuggestions:
		title = "Suggestions"
		items = r.suggestionRows(state)
		selected = state.SuggestionIndex
		empty = suggestionsPlaceholder(state)
	default:
		title = "Results"
		if summary := formatResultSummary(state); summary != "" {
			title += " · " + summary
		}
		items = r.resultRows(state)
		selected = state.ResultIndex
		empty = resultsPlaceholder(state)
	}

	if (pane == statepkg.FocusResults && state.IsSearching) || (pane == statepkg.FocusSuggestions && state.SuggestionsLoading) {
		title = spinnerFrame(time.Now()) + " " + title
	}

	titleStyle := tcell.StyleDefault.Foreground(r.theme.PaneTitleFg)
	if focused {
		titleStyle = tcell.StyleDefault.Foreground(r.theme.FocusFg).Bold(true)
	}
	maxX := startX + width
	x := r.drawTextLine(startX, top, width, r.truncateTextToWidth(" "+title, width), titleStyle)
	r.fillRow(x, top, maxX, tcell.StyleDefault)

	r.drawList(items, selected, focused, empty, startX, width, top+1, rows-1)
}

func (r *Renderer) drawList(items []listRow, selected int, focused bool, empty string, startX, width, top, rows int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	maxX := startX + width
	if rows <= 0 {
		return
	}

	if len(items) == 0 {
		x := r.drawTextLine(startX, top, width, r.truncateTextToWidth("  "+empty, width), baseStyle.Foreground(r.theme.DimFg))
		r.fillRow(x, top, maxX, baseStyle)
		for y := top + 1; y < top+rows; y++ {
			r.fillRow(startX, y, maxX, baseStyle)
		}
		return
	}

	start, end := visibleWindow(selected, len(items), rows)
	y := top
	for idx := start; idx < end; idx++ {
		row := items[idx]
		rowStyle := baseStyle
		if idx == selected {
			if focused {
				rowStyle = baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			} else {
				rowStyle = baseStyle.Background(r.theme.InactiveSel)
			}
		}
		isSelected := idx == selected

		tagStyle := rowStyle
		matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
		detailStyle := rowStyle.Foreground(r.theme.DimFg)
		if !isSelected || !focused {
			tagStyle = rowStyle.Foreground(row.tagColor)
		}
		if isSelected && focused {
			matchStyle = rowStyle.Bold(true)
			detailStyle = rowStyle
		}

		x := r.drawStyledStringClipped(startX, y, maxX, " ", rowStyle)
		if row.tag != "" {
			x = r.drawStyledStringClipped(x, y, maxX, row.tag, tagStyle)
			x = r.drawStyledStringClipped(x, y, maxX, " ", rowStyle)
		}

		text := textutil.FitWidth(row.text, maxX-x)
		spans := row.spans
		if text != row.text {
			spans = nil
		}
		x, _ = r.drawHighlightedText(x, y, maxX, text, spans, 0, rowStyle, matchStyle)

		if row.detail != "" && x+3 < maxX {
			x = r.drawStyledStringClipped(x, y, maxX, "  ", rowStyle)
			detail := textutil.FitWidth(row.detail, maxX-x)
			x = r.drawStyledStringClipped(x, y, maxX, detail, detailStyle)
		}
		r.fillRow(x, y, maxX, rowStyle)
		y++
	}
	for ; y < top+rows; y++ {
		r.fillRow(startX, y, maxX, baseStyle)
	}
}

func (r *Renderer) resultRows(state *statepkg.AppState) []listRow {
	if state.Results == nil {
		return nil
	}
	rows := make([]listRow, 0, state.ResultCount())
	for _, skill := range state.Results.Skills {
		color := r.theme.OfferFg
		if skill.IsSeeking {
			color = r.theme.SeekingFg
		}
		title := textutil.SanitizeCell(skill.Title())
		rows = append(rows, listRow{
			tag:      offerTag(skill),
			tagColor: color,
			text:     title,
			spans:    querySpans(state.Query, title),
			detail:   textutil.SanitizeCell(formatSkillDetails(skill)),
		})
	}
	for _, user := range state.Results.Users {
		label := textutil.SanitizeCell(formatUserLabel(user))
		rows = append(rows, listRow{
			tag:      "user",
			tagColor: r.theme.UserFg,
			text:     label,
			spans:    querySpans(state.Query, label),
		})
	}
	return rows
}

func (r *Renderer) historyRows(state *statepkg.AppState) []listRow {
	rows := make([]listRow, 0, len(state.History))
	for _, entry := range state.History {
		rows = append(rows, listRow{
			text:   textutil.SanitizeCell(formatHistoryLabel(entry)),
			detail: formatHistoryCounts(entry),
		})
	}
	return rows
}

func (r *Renderer) suggestionRows(state *statepkg.AppState) []listRow {
	rows := make([]listRow, 0, len(state.Suggestions))
	for _, candidate := range state.Suggestions {
		color := r.theme.OfferFg
		if candidate.Skill.IsSeeking {
			color = r.theme.SeekingFg
		}
		rows = append(rows, listRow{
			tag:      offerTag(candidate.Skill),
			tagColor: color,
			text:     textutil.SanitizeCell(candidate.Skill.Title()),
			detail:   textutil.SanitizeCell(formatSkillDetails(candidate.Skill)),
		})
	}
	return rows
}

func resultsPlaceholder(state *statepkg.AppState) string {
	switch {
	case state.IsSearching:
		return "Searching…"
	case state.Error != "":
		return "Search failed"
	case state.HasSearched:
		return "No results"
	default:
		return "Type a query and press Enter"
	}
}

func suggestionsPlaceholder(state *statepkg.AppState) string {
	switch {
	case state.SuggestionsLoading:
		return "Loading…"
	case !state.SuggestionsLoaded:
		return "Press s to load suggestions"
	default:
		return "No suggestions nearby"
	}
}

// drawStatusLine renders the bottom line: an error or warning when present,
// then the contextual key hints.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h <= listStartRow {
		return
	}
	y := h - 1
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	x := 0
	switch {
	case state.Error != "":
		msg := " ✗ " + textutil.SanitizeCell(state.Error) + " "
		x = r.drawStyledStringClipped(x, y, w, msg, normalStyle.Foreground(r.theme.ErrorFg).Bold(true))
	case state.Warning != "":
		msg := " ! " + textutil.SanitizeCell(state.Warning) + " "
		x = r.drawStyledStringClipped(x, y, w, msg, normalStyle.Foreground(r.theme.WarningFg))
	}

	helpText := buildFooterHelpText(state)
	if helpText != "" && x < w {
		x = r.drawTextLine(x, y, w-x, r.truncateTextToWidth(helpText, w-x), normalStyle.Dim(true))
	}
	r.fillRow(x, y, w, normalStyle)
}

package state

import "unicode"

func isSearchWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isSearchWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isSearchWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isSearchWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isSearchWordChar(runes[i]) {
		i++
	}
	return i
}

func clampCursor(runes []rune, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(runes) {
		return len(runes)
	}
	return cursor
}

// insertRune returns text with ch inserted at cursor and the new cursor.
func insertRune(text string, cursor int, ch rune) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)

	buffer := make([]rune, 0, len(runes)+1)
	buffer = append(buffer, runes[:cursor]...)
	buffer = append(buffer, ch)
	buffer = append(buffer, runes[cursor:]...)
	return string(buffer), cursor + 1
}

// deleteBefore removes the rune left of cursor.
func deleteBefore(text string, cursor int) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)
	if cursor == 0 {
		return text, 0
	}
	buffer := append([]rune{}, runes[:cursor-1]...)
	buffer = append(buffer, runes[cursor:]...)
	return string(buffer), cursor - 1
}

// deleteAt removes the rune under cursor.
func deleteAt(text string, cursor int) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)
	if cursor >= len(runes) {
		return text, cursor
	}
	buffer := append([]rune{}, runes[:cursor]...)
	buffer = append(buffer, runes[cursor+1:]...)
	return string(buffer), cursor
}

// deleteWordBefore removes the word left of cursor.
func deleteWordBefore(text string, cursor int) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)
	if cursor == 0 {
		return text, 0
	}
	start := previousWordBoundary(runes, cursor)
	buffer := append([]rune{}, runes[:start]...)
	buffer = append(buffer, runes[cursor:]...)
	return string(buffer), start
}

func moveCursor(text string, cursor int, direction string) int {
	runes := []rune(text)
	cursor = clampCursor(runes, cursor)
	switch direction {
	case "left":
		if cursor > 0 {
			cursor--
		}
	case "right":
		if cursor < len(runes) {
			cursor++
		}
	case "word-left":
		cursor = previousWordBoundary(runes, cursor)
	case "word-right":
		cursor = nextWordBoundary(runes, cursor)
	case "home":
		cursor = 0
	case "end":
		cursor = len(runes)
	}
	return cursor
}

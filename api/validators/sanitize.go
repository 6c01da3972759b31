package validators

import "unicode/utf8"

// LimitString caps input at maxLen runes when maxLen is positive. The value is otherwise
// kept as sent: category filters match exactly, surrounding whitespace included.
func LimitString(input string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(input) <= maxLen {
		return input
	}
	return string([]rune(input)[:maxLen])
}

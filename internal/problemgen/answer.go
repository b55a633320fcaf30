package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the player's input against the question's answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Leading zeros and an explicit sign are accepted ("007" matches 7)
// - Anything that is not a base-10 integer is simply wrong
func CheckAnswer(input string, q Question) bool {
	n, ok := ParseAnswer(input)
	return ok && n == q.Answer
}

// ParseAnswer parses a typed answer. ok is false for empty or non-numeric input.
func ParseAnswer(input string) (n int, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	v, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	return v, true
}

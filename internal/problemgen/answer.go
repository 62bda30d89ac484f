package problemgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAnswer is returned when a submitted math answer is not an integer.
var ErrInvalidAnswer = errors.New("answer is not a whole number")

// CheckAnswer compares the learner's input against the correct answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Math answers must parse as integers; leading zeros are ignored ("007" matches "7")
// - Time answers must match the "h:mm" string exactly
//
// A math answer that does not parse returns ErrInvalidAnswer; callers treat
// that as "no answer given" rather than a wrong answer.
func CheckAnswer(input string, p *Problem) (bool, error) {
	input = strings.TrimSpace(input)
	if p.IsTime() {
		return input == p.Answer, nil
	}
	n, err := ParseInteger(input)
	if err != nil {
		return false, err
	}
	return n == p.Value, nil
}

// ParseInteger parses a learner-typed whole number.
func ParseInteger(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrInvalidAnswer
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, input)
	}
	return n, nil
}

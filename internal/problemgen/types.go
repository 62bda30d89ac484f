package problemgen

import (
	"fmt"

	"github.com/abhisek/mathforest/internal/skills"
)

// Kind describes how a problem is presented.
type Kind string

const (
	KindMath    Kind = "math"    // arithmetic or word problem with an integer answer
	KindClock   Kind = "clock"   // read the time from a clock face
	KindElapsed Kind = "elapsed" // add minutes to a starting time
)

// ClockTime is a 12-hour clock reading.
type ClockTime struct {
	Hour   int // 1-12
	Minute int // 0-59
}

// String formats the reading as "h:mm".
func (c ClockTime) String() string {
	return FormatTime(c.Hour, c.Minute)
}

// FormatTime formats an hour and minute as "h:mm".
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// Problem is a generated exercise ready for display.
type Problem struct {
	// Text is the prompt shown to the learner, e.g. "3 + 4 = ?".
	Text string

	// Answer is the canonical correct answer. Integers for math kinds,
	// "h:mm" for clock and elapsed kinds.
	Answer string

	// Value holds the integer answer for math kinds.
	Value int

	// Hint is a strategy tip revealed after a wrong attempt.
	Hint string

	// Choices contains exactly 4 distinct options, one of which is Answer.
	Choices []string

	Skill skills.ID
	Level int
	Kind  Kind

	// Clock is the time shown on the clock face. Nil for math kinds.
	// For elapsed problems it is the starting time.
	Clock *ClockTime

	// Operands are the generated inputs, in display order.
	Operands []int
}

// IsTime reports whether the problem expects a time answer.
func (p *Problem) IsTime() bool {
	return p.Kind == KindClock || p.Kind == KindElapsed
}

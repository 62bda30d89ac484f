package problemgen

import (
	"fmt"
	"strconv"
)

// ChoiceCount is the number of options offered for every problem.
const ChoiceCount = 4

// StructuralValidator checks that required fields are present and that the
// choice set is well formed.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if p.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "text is empty"}
	}
	if p.Hint == "" {
		return &ValidationError{Validator: v.Name(), Message: "hint is empty"}
	}
	if p.Kind != KindMath && p.Kind != KindClock && p.Kind != KindElapsed {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown kind %q", p.Kind)}
	}
	if p.IsTime() && p.Clock == nil {
		return &ValidationError{Validator: v.Name(), Message: "time problem has no clock reading"}
	}
	if len(p.Choices) != ChoiceCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d choices, got %d", ChoiceCount, len(p.Choices)),
		}
	}

	seen := make(map[string]bool, len(p.Choices))
	found := false
	for _, c := range p.Choices {
		if seen[c] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[c] = true
		if c == p.Answer {
			found = true
		}
	}
	if !found {
		return &ValidationError{Validator: v.Name(), Message: "answer is not among the choices"}
	}
	return nil
}

// ArithmeticValidator checks that math answers and choices are non-negative
// integers and that Answer agrees with Value.
type ArithmeticValidator struct{}

func (v *ArithmeticValidator) Name() string { return "arithmetic" }

func (v *ArithmeticValidator) Validate(p *Problem) *ValidationError {
	if p.IsTime() {
		return nil
	}
	if p.Answer != strconv.Itoa(p.Value) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q does not match value %d", p.Answer, p.Value),
		}
	}
	for _, c := range p.Choices {
		n, err := strconv.Atoi(c)
		if err != nil {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("choice %q is not an integer", c)}
		}
		if n < 0 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("choice %d is negative", n)}
		}
	}
	return nil
}

package problemgen

import "fmt"

// Validator checks a generated problem for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the problem passes the check.
	Validate(p *Problem) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the validators every generated problem must pass.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &ArithmeticValidator{}}
}

// Validate runs vs against p and returns the first failure.
func Validate(p *Problem, vs ...Validator) error {
	for _, v := range vs {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

package problemgen

import "fmt"

// Validator checks a remotely generated problem before it is served.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier such as "structural" or "math-check".
	Name() string

	Validate(p *Problem) *ValidationError
}

// ValidationError describes why a problem was rejected.
type ValidationError struct {
	Validator string
	Message   string
	// Retryable reports whether asking again is likely to help.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

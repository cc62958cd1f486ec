package problemgen

// Config controls the RemoteGenerator.
type Config struct {
	// Validators run in order on every reply; the first failure rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// Strict appends the answer-format and math-check validators to the
	// chain, so malformed or wrong arithmetic falls back to local
	// generation.
	Strict bool
}

// DefaultConfig checks structure only, with a small token budget and low
// temperature.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokens:   200,
		Temperature: 0.3,
	}
}

func (c Config) chain() []Validator {
	if !c.Strict {
		return c.Validators
	}
	out := append([]Validator(nil), c.Validators...)
	return append(out, &AnswerFormatValidator{}, &MathCheckValidator{})
}

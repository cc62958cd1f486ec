package problemgen

import (
	"context"
	"fmt"
	"strings"
)

// Level is the difficulty of a single generated problem.
type Level string

const (
	// Easy problems are word problems with addition or subtraction within 20.
	Easy Level = "easy"
	// Medium problems mix + − × ÷ within 20 with integer results.
	Medium Level = "medium"
	// Hard problems use simple fractions or one-decimal numbers up to 100.
	Hard Level = "hard"
)

// Levels lists every level from easiest to hardest.
var Levels = []Level{Easy, Medium, Hard}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case Easy, Medium, Hard:
		return l, nil
	}
	return "", fmt.Errorf("invalid level %q: must be easy, medium or hard", s)
}

// Origin records which branch produced a problem.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

// Problem is a single generated question with its canonical answer.
type Problem struct {
	// Question is display text, e.g. "12 ÷ 3 = ?" or a short word problem.
	Question string `json:"question"`

	// Answer is the canonical answer: an integer ("7"), a fraction
	// ("3/4") or a decimal with one fractional digit ("12.3").
	Answer string `json:"answer"`

	Level  Level  `json:"level"`
	Origin Origin `json:"-"`
}

// Generator produces one problem for a level.
type Generator interface {
	Generate(ctx context.Context, level Level) (*Problem, error)
}

package kousuan

import (
	"math"
	"strconv"
	"strings"
)

// Grade attaches answers to problems and marks each one correct or not.
// A problem that already carries a submission keeps it; otherwise
// answers[i] is used, and a missing entry counts as an empty answer.
// Correct is always recomputed as exact string equality between the
// trimmed submission and the decimal form of the canonical answer, so a
// client-supplied result is never trusted. The input slice is not modified.
func Grade(problems []Problem, answers []string) []Problem {
	out := make([]Problem, len(problems))
	for i, p := range problems {
		var submitted string
		switch {
		case p.Submitted != nil:
			submitted = strings.TrimSpace(*p.Submitted)
		case i < len(answers):
			submitted = strings.TrimSpace(answers[i])
		}
		correct := submitted == strconv.Itoa(p.Answer)
		p.Submitted = &submitted
		p.Correct = &correct
		out[i] = p
	}
	return out
}

// Score summarizes a graded problem set. Ungraded problems count as
// incorrect. An empty set scores 0/0 with percentage 0.
func Score(problems []Problem) ScoreSummary {
	var correct int
	for _, p := range problems {
		if p.Correct != nil && *p.Correct {
			correct++
		}
	}
	total := len(problems)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return ScoreSummary{Correct: correct, Total: total, Percentage: percentage}
}

package kousuan

import "fmt"

// Blank is the marker shown where the learner writes the answer.
const Blank = "（　　）"

// Problem is one generated arithmetic exercise.
type Problem struct {
	// Question is the display text, e.g. "3＋2＝（　　）" or "（　　）－4＝7".
	Question string `json:"question"`

	// Answer is the canonical value that fills the blank.
	Answer int `json:"answer"`

	// Type is the problem type that produced the question. For mixed types
	// this is the delegate that was actually used.
	Type ProblemType `json:"type"`

	// Submitted is the trimmed learner answer. Nil until graded.
	Submitted *string `json:"submitted_answer,omitempty"`

	// Correct is derived from Submitted each time the problem is graded.
	Correct *bool `json:"correct,omitempty"`
}

// Graded reports whether the problem carries a submitted answer.
func (p Problem) Graded() bool {
	return p.Submitted != nil && p.Correct != nil
}

// ScoreSummary aggregates a graded problem set.
type ScoreSummary struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func (s ScoreSummary) String() string {
	return fmt.Sprintf("%d/%d (%d%%)", s.Correct, s.Total, s.Percentage)
}

package problemgen

import "github.com/abhisek/kousuan/internal/llm"

// ProblemSchema is the reply contract for remote generation: exactly a
// question string and its answer, which may arrive as a string or a number.
var ProblemSchema = &llm.Schema{
	Name:        "arithmetic-problem",
	Description: "One arithmetic practice problem for a child and its final answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The problem text shown to the child",
			},
			"answer": map[string]any{
				"type":        []any{"string", "number"},
				"description": "The final answer only: an integer, a fraction n/d, or a one-decimal number",
			},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	},
}

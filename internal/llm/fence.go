package llm

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("```(?:json|JSON)?\\s*\\n?")

// StripCodeFence removes Markdown code-fence markers (``` and ```json)
// that chat models often wrap around JSON, and trims surrounding space.
func StripCodeFence(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

// replyContent prepares raw model text for schema validation.
func replyContent(text string, schema *Schema) []byte {
	if schema == nil {
		return []byte(text)
	}
	return []byte(StripCodeFence(text))
}

package cot

import (
	"strings"
)

// Line markers of the thought transcript
const (
	ThoughtMarker  = "Thought:"
	ResponseMarker = "Response:"
)

const transcriptInstructions = `
When responding, first show your chain-of-thought steps, each prefixed with 'Thought:'.
After the chain-of-thought, output the final reply prefixed with 'Response:'.
`

// TranscriptFormatter asks for "Thought:" lines followed by a "Response:"
// line and returns the response. Replies without a response line are handled
// like Template.
type TranscriptFormatter struct{}

// Build appends the transcript instructions to the persona prefix
func (TranscriptFormatter) Build(query, personaPrefix string) string {
	return personaPrefix + "\n" + transcriptInstructions + "\nQuestion: " + query
}

// Extract returns everything after the last line starting with ResponseMarker
func (TranscriptFormatter) Extract(raw string) string {
	lines := strings.Split(raw, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		rest, ok := strings.CutPrefix(strings.TrimSpace(lines[i]), ResponseMarker)
		if !ok {
			continue
		}
		tail := append([]string{rest}, lines[i+1:]...)
		return strings.TrimSpace(strings.Join(tail, "\n"))
	}
	return ExtractFinalAnswer(raw)
}

// Thoughts returns the text of every ThoughtMarker line, in order
func Thoughts(raw string) []string {
	var thoughts []string
	for _, line := range strings.Split(raw, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), ThoughtMarker); ok {
			thoughts = append(thoughts, strings.TrimSpace(rest))
		}
	}
	return thoughts
}

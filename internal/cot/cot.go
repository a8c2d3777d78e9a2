// Package cot builds chain-of-thought prompts and pulls the final answer back
// out of a model's free-text reply.
package cot

import (
	"strings"
)

// FinalAnswerMarker introduces the final answer in a chain-of-thought reply
const FinalAnswerMarker = "Final Answer:"

const instructions = `
Let's solve this step by step:
1. First, understand what's being asked
2. Consider the relevant context and background
3. Explore possible approaches to address the question
4. Analyze the pros and cons of each approach
5. Formulate a thoughtful, comprehensive response that reflects your persona
`

// Formatter wraps a query in a reasoning template and extracts the answer
// from the model's response.
type Formatter interface {
	Build(query, personaPrefix string) string
	Extract(raw string) string
}

// Template is the five-step chain-of-thought formatter
type Template struct{}

// Build combines the persona prefix, the reasoning steps and the query,
// ending with a cue for the model to start reasoning.
func (Template) Build(query, personaPrefix string) string {
	return personaPrefix + "\n\n" + instructions + "\n\nQuestion: " + query + "\n\nThinking process:"
}

// Extract returns the text following the first FinalAnswerMarker. Without a
// marker it falls back to the last blank-line separated paragraph. This is a
// heuristic: a reply that never states its answer last will be cut wrongly.
func (Template) Extract(raw string) string {
	return ExtractFinalAnswer(raw)
}

// ExtractFinalAnswer implements Template.Extract
func ExtractFinalAnswer(raw string) string {
	if strings.Contains(raw, FinalAnswerMarker) {
		parts := strings.Split(raw, FinalAnswerMarker)
		return strings.TrimSpace(parts[1])
	}

	paragraphs := strings.Split(raw, "\n\n")
	return strings.TrimSpace(paragraphs[len(paragraphs)-1])
}

// Plain joins the persona prefix and query without any reasoning template
func Plain(query, personaPrefix string) string {
	return personaPrefix + "\n\nQuestion: " + query
}

package cot

import (
	"encoding/json"
	"strings"
)

// Step names of the step-tagged transcript, in order
const (
	StepAnalyse  = "analyse"
	StepThink    = "think"
	StepOutput   = "output"
	StepValidate = "validate"
	StepResult   = "result"
)

const stepSchema = `
Write every step as one JSON object per line using this schema:
{"step": "string", "content": "string"}

Follow the steps in sequence: "analyse", "think" (as many times as needed), "output", "validate" and finally "result".
The "result" step holds the final answer written in your persona's voice.
`

// Step is one entry of a step-tagged transcript
type Step struct {
	Step    string `json:"step"`
	Content string `json:"content"`
}

// StepFormatter asks the model for a step-tagged JSON transcript and returns
// the content of its result step. Replies that don't follow the schema are
// handled like Template.
type StepFormatter struct{}

// Build extends the five-step template with the transcript schema
func (StepFormatter) Build(query, personaPrefix string) string {
	return personaPrefix + "\n\n" + instructions + stepSchema + "\n\nQuestion: " + query + "\n\nThinking process:"
}

// Extract returns the last result step, or the heuristic answer if there is none
func (StepFormatter) Extract(raw string) string {
	steps := ParseSteps(raw)
	for i := len(steps) - 1; i >= 0; i-- {
		if strings.EqualFold(steps[i].Step, StepResult) {
			return strings.TrimSpace(steps[i].Content)
		}
	}
	return ExtractFinalAnswer(raw)
}

// ParseSteps collects every well-formed step object found in raw, in order
func ParseSteps(raw string) []Step {
	var steps []Step

	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var s Step
		if err := dec.Decode(&s); err != nil || s.Step == "" {
			continue
		}
		steps = append(steps, s)
		i += int(dec.InputOffset()) - 1
	}

	return steps
}

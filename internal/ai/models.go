package ai

import "strings"

// Backend identifiers and model defaults
const (
	BackendOpenAI      = "openai"
	BackendGemini      = "gemini"
	DefaultPrimary     = BackendOpenAI
	DefaultSecondary   = BackendGemini
	DefaultOpenAIModel = "gpt-4o"
	DefaultGeminiModel = "gemini-1.5-flash-001"
	DefaultJudge       = BackendOpenAI
	DefaultJudgeModel  = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// DisplayName returns a formatted display name for a backend
func DisplayName(backend string) string {
	switch backend {
	case BackendOpenAI:
		return "OpenAI"
	case BackendGemini:
		return "Gemini"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(backend[:1]) + backend[1:]
	}
}

package persona

import (
	"fmt"
	"strings"
)

// Default field values applied to a Config when a field is left empty
const (
	DefaultName = "Assistant"
	DefaultTone = "helpful"
	DefaultRole = "general assistant"
)

// Config is the declarative description of a persona
type Config struct {
	Name             string   `yaml:"name" toml:"name" json:"name"`
	Tone             string   `yaml:"tone" toml:"tone" json:"tone"`
	Traits           []string `yaml:"traits" toml:"traits" json:"traits"`
	Role             string   `yaml:"role" toml:"role" json:"role"`
	Actions          []string `yaml:"actions" toml:"actions" json:"actions"`
	SignaturePhrases []string `yaml:"signature_phrases" toml:"signature_phrases" json:"signature_phrases"`
	KnowledgeDomains []string `yaml:"knowledge_domains" toml:"knowledge_domains" json:"knowledge_domains"`
	Examples         []string `yaml:"examples" toml:"examples" json:"examples"`
}

// withDefaults returns a copy of c with defaults filled in. Slices are copied
// so the caller's Config can't alias the stored one.
func (c Config) withDefaults() Config {
	out := Config{
		Name:             c.Name,
		Tone:             c.Tone,
		Role:             c.Role,
		Traits:           cloneStrings(c.Traits),
		Actions:          cloneStrings(c.Actions),
		SignaturePhrases: cloneStrings(c.SignaturePhrases),
		KnowledgeDomains: cloneStrings(c.KnowledgeDomains),
		Examples:         cloneStrings(c.Examples),
	}
	if out.Name == "" {
		out.Name = DefaultName
	}
	if out.Tone == "" {
		out.Tone = DefaultTone
	}
	if out.Role == "" {
		out.Role = DefaultRole
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Persona is an immutable, registered persona
type Persona struct {
	config Config
}

// New creates a Persona from cfg, applying defaults
func New(cfg Config) Persona {
	return Persona{config: cfg.withDefaults()}
}

// Default returns the anonymous persona used when a lookup misses
func Default() Persona {
	return New(Config{Name: DefaultName})
}

// Name returns the persona's display name
func (p Persona) Name() string {
	return p.config.Name
}

// Config returns a copy of the persona's configuration
func (p Persona) Config() Config {
	return p.config.withDefaults()
}

// RenderPrefix renders the persona into the instruction block placed in front
// of every prompt.
func (p Persona) RenderPrefix() string {
	c := p.config

	var b strings.Builder
	fmt.Fprintf(&b, "\nYou are embodying %s, who is known for a %s communication style.\n", c.Name, c.Tone)
	fmt.Fprintf(&b, "Your key traits include: %s.\n", strings.Join(c.Traits, ", "))
	fmt.Fprintf(&b, "You serve as a %s and should maintain this expertise in your responses.\n", c.Role)
	b.WriteString("\nFollow these specific actions in your response:\n")

	for _, action := range c.Actions {
		action = strings.TrimSpace(action)
		if action == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", action)
	}

	if phrases := quoteAll(c.SignaturePhrases); len(phrases) > 0 {
		fmt.Fprintf(&b, "\nIncorporate phrases like %s naturally in your response.\n", strings.Join(phrases, ", "))
	}

	return b.String()
}

// Summary returns a one-line description for listings
func (p Persona) Summary() string {
	c := p.config
	summary := fmt.Sprintf("%s (%s, %s)", c.Name, c.Role, c.Tone)
	if len(c.Traits) > 0 {
		summary += ": " + strings.Join(c.Traits, ", ")
	}
	return summary
}

func quoteAll(phrases []string) []string {
	quoted := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			continue
		}
		quoted = append(quoted, `"`+phrase+`"`)
	}
	return quoted
}

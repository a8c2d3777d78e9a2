package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrefix(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantContain []string
		wantMissing []string
	}{
		{
			name:   "defaults only",
			config: Config{},
			wantContain: []string{
				"You are embodying Assistant",
				"helpful communication style",
				"You serve as a general assistant",
			},
			wantMissing: []string{"Incorporate phrases like"},
		},
		{
			name: "full persona",
			config: Config{
				Name:             "Coach",
				Tone:             "stern",
				Traits:           []string{"direct", "demanding"},
				Role:             "running coach",
				Actions:          []string{"be brief", "end with a drill"},
				SignaturePhrases: []string{"No excuses"},
			},
			wantContain: []string{
				"You are embodying Coach, who is known for a stern communication style.",
				"Your key traits include: direct, demanding.",
				"You serve as a running coach",
				"- be brief\n",
				"- end with a drill\n",
				`Incorporate phrases like "No excuses" naturally in your response.`,
			},
		},
		{
			name: "phrases are wrapped in plain quotes",
			config: Config{
				Name:             "Coach",
				SignaturePhrases: []string{`Say "cheese"`, `C:\gym`},
			},
			wantContain: []string{
				`Incorporate phrases like "Say "cheese"", "C:\gym" naturally in your response.`,
			},
			wantMissing: []string{`\"`, `\\`},
		},
		{
			name: "blank actions and phrases are skipped",
			config: Config{
				Name:             "Coach",
				Actions:          []string{"", "  ", "be brief"},
				SignaturePhrases: []string{" "},
			},
			wantContain: []string{"- be brief\n"},
			wantMissing: []string{"Incorporate phrases like"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := New(tt.config).RenderPrefix()

			for _, want := range tt.wantContain {
				assert.Contains(t, prefix, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, prefix, missing)
			}
			for _, line := range strings.Split(prefix, "\n") {
				assert.NotEqual(t, "-", strings.TrimSpace(line), "empty bullet line in prefix")
			}
		})
	}
}

func TestRenderPrefixIsDeterministic(t *testing.T) {
	p := New(Amitabh)
	assert.Equal(t, p.RenderPrefix(), p.RenderPrefix())
}

func TestNewCopiesSlices(t *testing.T) {
	cfg := Config{Name: "Coach", Traits: []string{"direct"}}
	p := New(cfg)

	cfg.Traits[0] = "mutated"

	assert.Equal(t, []string{"direct"}, p.Config().Traits)
	assert.Contains(t, p.RenderPrefix(), "direct")
}

func TestSummary(t *testing.T) {
	p := New(Config{Name: "Coach", Tone: "stern", Role: "running coach", Traits: []string{"direct"}})
	assert.Equal(t, "Coach (running coach, stern): direct", p.Summary())

	assert.Equal(t, "Assistant (general assistant, helpful)", Default().Summary())
}

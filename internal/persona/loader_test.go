package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPersonas = `
personas:
  coach:
    name: Coach
    tone: stern
    traits: [direct]
    role: running coach
    actions:
      - be brief
    signature_phrases:
      - No excuses
`

const tomlPersonas = `
[personas.coach]
name = "Coach"
tone = "stern"
traits = ["direct"]
role = "running coach"
actions = ["be brief"]
signature_phrases = ["No excuses"]
`

func TestParse(t *testing.T) {
	want := Config{
		Name:             "Coach",
		Tone:             "stern",
		Traits:           []string{"direct"},
		Role:             "running coach",
		Actions:          []string{"be brief"},
		SignaturePhrases: []string{"No excuses"},
	}

	tests := []struct {
		name    string
		data    string
		ext     string
		wantErr bool
	}{
		{name: "yaml", data: yamlPersonas, ext: ".yaml"},
		{name: "yml", data: yamlPersonas, ext: ".YML"},
		{name: "toml", data: tomlPersonas, ext: ".toml"},
		{name: "unknown extension", data: yamlPersonas, ext: ".json", wantErr: true},
		{name: "broken yaml", data: "personas: [", ext: ".yaml", wantErr: true},
		{name: "broken toml", data: "[personas.coach", ext: ".toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Contains(t, got, "coach")
			assert.Equal(t, want, got["coach"])
		})
	}
}

func TestRegisterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPersonas), 0o600))

	r := NewRegistry()
	n, err := RegisterFile(r, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, ok := r.Lookup("coach")
	require.True(t, ok)
	assert.Equal(t, "Coach", p.Name())
}

func TestRegisterFileMissing(t *testing.T) {
	_, err := RegisterFile(NewRegistry(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

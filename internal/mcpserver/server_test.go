package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
	"github.com/Dmetrikx/goPersonaChatter/internal/responder"
)

type fakeResponder struct {
	personaID string
	query     string
	opts      responder.Options
	calls     int
}

func (f *fakeResponder) GetResponse(ctx context.Context, personaID, query string, opts responder.Options) string {
	f.calls++
	f.personaID, f.query, f.opts = personaID, query, opts
	return "persona says hi"
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func testRegistry() *persona.Registry {
	r := persona.NewRegistry()
	persona.RegisterBuiltins(r)
	return r
}

func TestNewServerRegistersTools(t *testing.T) {
	srv := NewServer(&fakeResponder{}, testRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotNil(t, srv.GetTool("ask_persona"))
	assert.NotNil(t, srv.GetTool("list_personas"))
	assert.Len(t, srv.ListTools(), 2)
}

func TestAskPersona(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		args        map[string]any
		wantCoT     bool
		wantCompare bool
	}{
		{
			name:        "defaults",
			args:        map[string]any{"persona": "amitabh", "query": "why?"},
			wantCoT:     true,
			wantCompare: true,
		},
		{
			name:        "flags off",
			args:        map[string]any{"persona": "amitabh", "query": "why?", "use_cot": false, "compare_models": false},
			wantCoT:     false,
			wantCompare: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeResponder{}
			res, err := askPersonaHandler(fr, logger)(context.Background(), callRequest(tt.args))
			require.NoError(t, err)

			assert.False(t, res.IsError)
			assert.Equal(t, "persona says hi", resultText(t, res))
			assert.Equal(t, "amitabh", fr.personaID)
			assert.Equal(t, "why?", fr.query)
			assert.Equal(t, tt.wantCoT, fr.opts.UseCoT)
			assert.Equal(t, tt.wantCompare, fr.opts.CompareModels)
		})
	}
}

func TestAskPersonaRequiresQuery(t *testing.T) {
	fr := &fakeResponder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := askPersonaHandler(fr, logger)(context.Background(), callRequest(map[string]any{"persona": "amitabh", "query": "  "}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Zero(t, fr.calls)
}

func TestListPersonas(t *testing.T) {
	res, err := listPersonasHandler(testRegistry())(context.Background(), callRequest(nil))
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, "amitabh: Amitabh Bachchan (life mentor, warm and dignified)")
	assert.Contains(t, text, "coonbot: Coonbot")
}

package responder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmetrikx/goPersonaChatter/internal/ai"
	"github.com/Dmetrikx/goPersonaChatter/internal/cot"
	"github.com/Dmetrikx/goPersonaChatter/internal/evaluate"
	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
)

type call struct {
	backend string
	prompt  string
	model   string
}

// fakeGateway answers per backend and records every call
type fakeGateway struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	delays  map[string]time.Duration
	calls   []call
}

func (f *fakeGateway) Ask(ctx context.Context, backend, prompt, model string) ai.Result {
	if d := f.delays[backend]; d > 0 {
		time.Sleep(d)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{backend: backend, prompt: prompt, model: model})
	if err := f.errs[backend]; err != nil {
		return ai.Result{Backend: backend, Model: model, Text: "Error with " + ai.DisplayName(backend) + " API: " + err.Error(), Err: err}
	}
	return ai.Result{Backend: backend, Model: model, Text: f.replies[backend]}
}

func (f *fakeGateway) callsTo(backend string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []call
	for _, c := range f.calls {
		if c.backend == backend {
			out = append(out, c)
		}
	}
	return out
}

// fakeSelector returns a fixed index and counts calls
type fakeSelector struct {
	index      int
	calls      int
	candidates []string
}

func (f *fakeSelector) PickBest(ctx context.Context, query string, candidates []string) int {
	f.calls++
	f.candidates = candidates
	return f.index
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(gw ai.Asker, sel Selector, cfg Config) *System {
	return New(persona.NewRegistry(), gw, sel, cfg, testLogger())
}

func TestGetResponseSingleBackend(t *testing.T) {
	gw := &fakeGateway{replies: map[string]string{ai.BackendOpenAI: "plain answer\n\nsecond paragraph"}}
	sel := &fakeSelector{}
	s := newSystem(gw, sel, Config{})

	got := s.GetResponse(context.Background(), "anyone", "hi", Options{UseCoT: false, CompareModels: false})

	assert.Equal(t, "plain answer\n\nsecond paragraph", got)
	assert.Len(t, gw.calls, 1)
	assert.Equal(t, ai.BackendOpenAI, gw.calls[0].backend)
	assert.Equal(t, 0, sel.calls)
}

func TestGetResponseUnknownPersonaUsesDefault(t *testing.T) {
	gw := &fakeGateway{replies: map[string]string{ai.BackendOpenAI: "hello there"}}
	s := newSystem(gw, &fakeSelector{}, Config{})

	outcome := s.Respond(context.Background(), "ghost", "hi", Options{CompareModels: false})

	assert.NotEmpty(t, outcome.Text)
	assert.Equal(t, persona.DefaultName, outcome.Persona)
	require.Len(t, gw.calls, 1)
	assert.Contains(t, gw.calls[0].prompt, "You are embodying Assistant")
	assert.Equal(t, cot.Plain("hi", persona.Default().RenderPrefix()), gw.calls[0].prompt)
}

func TestGetResponseComparesModels(t *testing.T) {
	gw := &fakeGateway{replies: map[string]string{
		ai.BackendOpenAI: "openai reasoning\n\nFinal Answer: from openai",
		ai.BackendGemini: "gemini reasoning\n\nFinal Answer: from gemini",
	}}
	sel := &fakeSelector{index: 1}
	s := newSystem(gw, sel, Config{})

	outcome := s.Respond(context.Background(), "x", "q", DefaultOptions())

	assert.Equal(t, "from gemini", outcome.Text)
	assert.Equal(t, 1, outcome.Chosen)
	assert.Equal(t, 1, sel.calls)
	assert.Equal(t, []string{
		"openai reasoning\n\nFinal Answer: from openai",
		"gemini reasoning\n\nFinal Answer: from gemini",
	}, sel.candidates)
	require.Len(t, outcome.Candidates, 2)
	assert.Equal(t, ai.BackendOpenAI, outcome.Candidates[0].Backend)
	assert.Equal(t, ai.BackendGemini, outcome.Candidates[1].Backend)

	// both backends get the same prompt
	require.Len(t, gw.calls, 2)
	assert.Equal(t, gw.calls[0].prompt, gw.calls[1].prompt)
}

func TestGetResponseFailedCandidateStillCompetes(t *testing.T) {
	gw := &fakeGateway{
		replies: map[string]string{ai.BackendOpenAI: "good answer"},
		errs:    map[string]error{ai.BackendGemini: errors.New("quota exceeded")},
	}
	sel := &fakeSelector{index: 1}
	s := newSystem(gw, sel, Config{})

	outcome := s.Respond(context.Background(), "x", "q", Options{CompareModels: true})

	assert.Equal(t, 1, sel.calls)
	assert.Equal(t, []string{"good answer", "Error with Gemini API: quota exceeded"}, sel.candidates)
	assert.Equal(t, "Error with Gemini API: quota exceeded", outcome.Text)
	assert.False(t, outcome.Candidates[outcome.Chosen].Result.OK())
}

func TestParallelKeepsCandidateOrder(t *testing.T) {
	gw := &fakeGateway{
		replies: map[string]string{ai.BackendOpenAI: "primary", ai.BackendGemini: "secondary"},
		delays:  map[string]time.Duration{ai.BackendOpenAI: 30 * time.Millisecond},
	}
	sel := &fakeSelector{index: 0}
	s := newSystem(gw, sel, Config{Parallel: true})

	outcome := s.Respond(context.Background(), "x", "q", Options{CompareModels: true})

	// gemini finishes first but openai keeps slot 0
	require.Len(t, gw.calls, 2)
	assert.Equal(t, ai.BackendGemini, gw.calls[0].backend)
	assert.Equal(t, []string{"primary", "secondary"}, sel.candidates)
	assert.Equal(t, "primary", outcome.Text)
}

func TestCancelledRequestSkipsEvaluation(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			gw := &fakeGateway{replies: map[string]string{ai.BackendOpenAI: "primary", ai.BackendGemini: "secondary"}}
			sel := &fakeSelector{index: 1}
			s := newSystem(gw, sel, Config{Parallel: parallel})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			outcome := s.Respond(ctx, "x", "q", Options{CompareModels: true})

			assert.Zero(t, sel.calls)
			assert.Equal(t, 0, outcome.Chosen)
			assert.Equal(t, "primary", outcome.Text)
			assert.Len(t, outcome.Candidates, 2)
		})
	}
}

func TestStepFormatterOption(t *testing.T) {
	gw := &fakeGateway{replies: map[string]string{
		ai.BackendOpenAI: `{"step":"think","content":"hmm"}` + "\n" + `{"step":"result","content":"23"}`,
	}}
	s := newSystem(gw, &fakeSelector{}, Config{})

	got := s.GetResponse(context.Background(), "x", "what is 3+4*5", Options{UseCoT: true, Formatter: cot.StepFormatter{}})

	assert.Equal(t, "23", got)
	assert.Contains(t, gw.calls[0].prompt, `{"step": "string", "content": "string"}`)
}

func TestCoachScenario(t *testing.T) {
	raw := "Step one, think about it.\n\nFinal Answer: Start with run-walk intervals three times a week."
	gw := &fakeGateway{replies: map[string]string{ai.BackendOpenAI: raw}}
	sel := &fakeSelector{}
	s := newSystem(gw, sel, Config{})

	s.RegisterPersona("coach", persona.Config{
		Name:    "Coach",
		Tone:    "stern",
		Traits:  []string{"direct"},
		Actions: []string{"be brief"},
	})

	got := s.GetResponse(context.Background(), "coach", "How do I start running?", Options{UseCoT: true, CompareModels: false})

	require.Len(t, gw.calls, 1)
	prompt := gw.calls[0].prompt
	assert.Equal(t, ai.BackendOpenAI, gw.calls[0].backend)
	for _, want := range []string{
		"Coach", "stern", "direct", "be brief",
		"1. First, understand what's being asked",
		"2. Consider the relevant context and background",
		"3. Explore possible approaches to address the question",
		"4. Analyze the pros and cons of each approach",
		"5. Formulate a thoughtful, comprehensive response that reflects your persona",
		"Question: How do I start running?",
	} {
		assert.Contains(t, prompt, want)
	}
	assert.Equal(t, cot.Template{}.Extract(raw), got)
	assert.Equal(t, 0, sel.calls)
}

func TestWithRealEvaluator(t *testing.T) {
	gw := &fakeGateway{replies: map[string]string{
		ai.BackendOpenAI: "openai says hi",
		ai.BackendGemini: "gemini says hi",
	}}
	// the judge is the openai backend too; its reply has no digits so the
	// first candidate wins
	s := newSystem(gw, evaluate.New(gw, "", "", testLogger()), Config{})

	got := s.GetResponse(context.Background(), "x", "q", Options{CompareModels: true})

	assert.Equal(t, "openai says hi", got)
	judgeCalls := gw.callsTo(ai.BackendOpenAI)
	require.Len(t, judgeCalls, 2)
	assert.Equal(t, ai.DefaultJudgeModel, judgeCalls[1].model)
	assert.Contains(t, judgeCalls[1].prompt, "Response 2: gemini says hi")
}

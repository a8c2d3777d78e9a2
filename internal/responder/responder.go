// Package responder turns a persona and a query into a single answer: it builds
// the prompt, asks one or more backends, lets the evaluator choose between
// them and strips the reasoning trace.
package responder

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dmetrikx/goPersonaChatter/internal/ai"
	"github.com/Dmetrikx/goPersonaChatter/internal/cot"
	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
)

// Selector picks the best of several candidate texts
type Selector interface {
	PickBest(ctx context.Context, query string, candidates []string) int
}

// Options control a single request
type Options struct {
	UseCoT        bool
	CompareModels bool

	// Formatter overrides the system's chain-of-thought formatter when set
	Formatter cot.Formatter
}

// DefaultOptions enables chain-of-thought and model comparison
func DefaultOptions() Options {
	return Options{UseCoT: true, CompareModels: true}
}

// Config configures a System
type Config struct {
	// Primary is always asked and always lands at candidate index 0
	Primary string

	// Secondaries are asked, in order, when CompareModels is set
	Secondaries []string

	// Parallel issues the backend calls concurrently. Candidate order is
	// unchanged.
	Parallel bool

	Formatter cot.Formatter
}

// Candidate is one backend's raw answer
type Candidate struct {
	Backend string
	Result  ai.Result
}

// Outcome describes how a response was produced
type Outcome struct {
	RequestID  string
	Persona    string
	Prompt     string
	Candidates []Candidate
	Chosen     int
	Text       string
}

// System is the persona-driven response pipeline
type System struct {
	registry    *persona.Registry
	gateway     ai.Asker
	evaluator   Selector
	formatter   cot.Formatter
	primary     string
	secondaries []string
	parallel    bool
	logger      *slog.Logger
}

// New creates a System. Zero Config fields select OpenAI as primary, Gemini as
// secondary and the five-step template.
func New(registry *persona.Registry, gateway ai.Asker, evaluator Selector, cfg Config, logger *slog.Logger) *System {
	if cfg.Primary == "" {
		cfg.Primary = ai.DefaultPrimary
	}
	if cfg.Secondaries == nil {
		cfg.Secondaries = []string{ai.DefaultSecondary}
	}
	if cfg.Formatter == nil {
		cfg.Formatter = cot.Template{}
	}

	return &System{
		registry:    registry,
		gateway:     gateway,
		evaluator:   evaluator,
		formatter:   cfg.Formatter,
		primary:     cfg.Primary,
		secondaries: append([]string(nil), cfg.Secondaries...),
		parallel:    cfg.Parallel,
		logger:      logger,
	}
}

// Registry returns the persona registry
func (s *System) Registry() *persona.Registry {
	return s.registry
}

// RegisterPersona adds a persona under id
func (s *System) RegisterPersona(id string, cfg persona.Config) {
	s.registry.Register(id, cfg)
}

// GetResponse returns the final answer for query in the voice of personaID
func (s *System) GetResponse(ctx context.Context, personaID, query string, opts Options) string {
	return s.Respond(ctx, personaID, query, opts).Text
}

// Respond runs the pipeline and reports every intermediate result
func (s *System) Respond(ctx context.Context, personaID, query string, opts Options) Outcome {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "persona_id", personaID)

	p, found := s.registry.Lookup(personaID)
	if !found {
		logger.InfoContext(ctx, "persona not registered, using default", "default", p.Name())
	}

	formatter := s.formatter
	if opts.Formatter != nil {
		formatter = opts.Formatter
	}

	prefix := p.RenderPrefix()
	prompt := cot.Plain(query, prefix)
	if opts.UseCoT {
		prompt = formatter.Build(query, prefix)
	}

	backends := []string{s.primary}
	if opts.CompareModels {
		backends = append(backends, s.secondaries...)
	}

	logger.InfoContext(ctx, "generating persona response",
		"persona", p.Name(),
		"use_cot", opts.UseCoT,
		"backends", backends)

	candidates, err := s.collect(ctx, backends, prompt)

	chosen := 0
	switch {
	case err != nil:
		logger.WarnContext(ctx, "request cancelled, skipping evaluation", "error", err)
	case len(candidates) > 1:
		texts := make([]string, len(candidates))
		for i, c := range candidates {
			texts[i] = c.Result.Text
		}
		chosen = s.evaluator.PickBest(ctx, query, texts)
	}

	text := candidates[chosen].Result.Text
	if opts.UseCoT {
		text = formatter.Extract(text)
	}

	logger.InfoContext(ctx, "persona response ready",
		"chosen_backend", candidates[chosen].Backend,
		"chosen_index", chosen,
		"response_length", len(text))

	return Outcome{
		RequestID:  requestID,
		Persona:    p.Name(),
		Prompt:     prompt,
		Candidates: candidates,
		Chosen:     chosen,
		Text:       text,
	}
}

// collect asks every backend for prompt. Candidate i always belongs to
// backends[i], whichever call finishes first. Provider failures stay in the
// candidates; the error is non-nil only when ctx ended before all calls did.
func (s *System) collect(ctx context.Context, backends []string, prompt string) ([]Candidate, error) {
	candidates := make([]Candidate, len(backends))

	if !s.parallel {
		for i, b := range backends {
			candidates[i] = Candidate{Backend: b, Result: s.gateway.Ask(ctx, b, prompt, "")}
		}
		return candidates, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range backends {
		g.Go(func() error {
			candidates[i] = Candidate{Backend: b, Result: s.gateway.Ask(gctx, b, prompt, "")}
			return gctx.Err()
		})
	}

	return candidates, g.Wait()
}

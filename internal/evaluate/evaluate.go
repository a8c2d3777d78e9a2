// Package evaluate asks a judge model to pick the best of several candidate
// responses.
package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Dmetrikx/goPersonaChatter/internal/ai"
)

var verdictPattern = regexp.MustCompile(`\d+`)

// Evaluator picks the best candidate by asking a judge backend
type Evaluator struct {
	gateway ai.Asker
	judge   string
	model   string
	logger  *slog.Logger
}

// New creates an evaluator that consults judge with model. Empty values select
// the defaults.
func New(gateway ai.Asker, judge, model string, logger *slog.Logger) *Evaluator {
	if judge == "" {
		judge = ai.DefaultJudge
	}
	if model == "" {
		model = ai.DefaultJudgeModel
	}
	return &Evaluator{
		gateway: gateway,
		judge:   judge,
		model:   model,
		logger:  logger,
	}
}

// PickBest returns the 0-based index of the best candidate. A single candidate
// wins without a judge call.
func (e *Evaluator) PickBest(ctx context.Context, query string, candidates []string) int {
	if len(candidates) <= 1 {
		return 0
	}

	res := e.gateway.Ask(ctx, e.judge, BuildPrompt(query, candidates), e.model)
	if !res.OK() {
		e.logger.WarnContext(ctx, "judge call failed, keeping first candidate",
			"judge", e.judge,
			"error", res.Err)
		return 0
	}

	index, ok := ParseVerdict(res.Text, len(candidates))
	if !ok {
		e.logger.DebugContext(ctx, "no verdict number in judge reply, keeping first candidate",
			"reply_length", len(res.Text))
	}

	e.logger.InfoContext(ctx, "judge picked candidate",
		"judge", e.judge,
		"index", index,
		"candidates", len(candidates))

	return index
}

// BuildPrompt renders the judging prompt with candidates numbered from 1
func BuildPrompt(query string, candidates []string) string {
	numbered := make([]string, len(candidates))
	for i, c := range candidates {
		numbered[i] = fmt.Sprintf("Response %d: %s", i+1, c)
	}

	return fmt.Sprintf(`
As an objective evaluator, compare these responses to the following query:
"%s"

%s

Consider:
1. Accuracy and factual correctness
2. Completeness in addressing the query
3. Clarity and coherence
4. Helpfulness and actionability
5. Appropriate tone and style

Analyze each response based on these criteria, then identify which response number (1, 2, etc.) is the best overall.
Return ONLY the number of the best response.
`, query, strings.Join(numbered, "\n\n"))
}

// ParseVerdict converts the first integer in reply from 1-based to 0-based and
// clamps it into [0, n-1]. ok is false when reply holds no integer, in which
// case the index is 0.
func ParseVerdict(reply string, n int) (index int, ok bool) {
	match := verdictPattern.FindString(reply)
	if match == "" {
		return 0, false
	}

	number, err := strconv.Atoi(match)
	if err != nil {
		// overflow counts as out of range
		return max(n-1, 0), true
	}

	return min(max(number-1, 0), max(n-1, 0)), true
}

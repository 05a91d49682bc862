package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/pkg/anthropic"
)

// systemPrompt instructs the model on the two-part summary format. It is
// shared across every property in a batch run and marked as a cache
// breakpoint.
const systemPrompt = `You are a Senior Lead Underwriter. Write a risk summary in a specific 2-part format.

**Instructions:**
1. **Part 1 (The Narrative):** Write a bullet-pointwise summary (3-4 sentences).
   - Start with: "This property has a **[Risk Level] claim likelihood** with an overall score of **[score]%**."
   - Mention the primary risk drivers.
   - Conclude with the underwriting recommendation (e.g., "This property can proceed through standard underwriting...").
   - Bold key terms.

2. **Part 2 (The Actions):**
   - Skip a line.
   - Write exactly: "**Suggested Actions:**"
   - Provide a bulleted list of 3-4 specific, high-impact requirements or recommendations based on the top factors (e.g., "Require proof of upgraded fire protection", "Mandate sprinkler installation").
   - Do NOT use any markdown headers (like ###). Use only bold text for emphasis.`

// Generator produces an analysis summary for a scored assessment.
type Generator interface {
	Summary(ctx context.Context, res model.RiskScoreResult) (string, error)
}

// ModelGenerator produces summaries through the messages API, rate-limited
// so batch runs stay inside the account's request budget.
type ModelGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewModelGenerator builds a generator for the given model. requestsPerMin
// <= 0 disables rate limiting.
func NewModelGenerator(client anthropic.Client, modelID string, maxTokens int64, requestsPerMin int) *ModelGenerator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMin)/60.0), 1)
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &ModelGenerator{
		client:    client,
		model:     modelID,
		maxTokens: maxTokens,
		limiter:   limiter,
	}
}

// Prime sends one request to warm the shared system prompt cache before a
// batch run fans out.
func (g *ModelGenerator) Prime(ctx context.Context) error {
	req := anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: 16,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages:  []anthropic.Message{{Role: "user", Content: "ok"}},
	}
	resp, err := anthropic.PrimerRequest(ctx, g.client, req)
	if err != nil {
		return eris.Wrap(err, "narrative: prime cache")
	}
	resp.Usage.LogCost(g.model, "narrative_primer")
	return nil
}

// Summary asks the model for the two-part narrative.
func (g *ModelGenerator) Summary(ctx context.Context, res model.RiskScoreResult) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "narrative: rate limit wait")
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages:  []anthropic.Message{{Role: "user", Content: profilePrompt(res)}},
	})
	if err != nil {
		return "", eris.Wrap(err, "narrative: generate summary")
	}
	resp.Usage.LogCost(g.model, "narrative_summary")

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", eris.New("narrative: empty model response")
	}
	return text, nil
}

// profilePrompt renders the per-property portion of the prompt.
func profilePrompt(res model.RiskScoreResult) string {
	drivers := strings.Join(RiskDrivers(res), ", ")
	if drivers == "" {
		drivers = "balanced across categories"
	}
	factors := strings.Join(res.TopFactors, ", ")
	if factors == "" {
		factors = "None"
	}
	return fmt.Sprintf(`**Property Profile:**
- Risk Level: %s (%d%%)
- Critical Factors: %s
- Category Scores: P:%d%% C:%d%% G:%d%% S:%d%%`,
		res.RiskLevel, int(res.OverallScore),
		factors,
		int(res.PropertyRisk), int(res.ClaimsRisk),
		int(res.GeographicRisk), int(res.ProtectionRisk),
	)
}

// SummaryOrFallback returns the model-backed summary when a generator is
// configured and succeeds, and the deterministic summary otherwise.
func SummaryOrFallback(ctx context.Context, gen Generator, res model.RiskScoreResult) string {
	if gen == nil {
		return Build(res)
	}
	text, err := gen.Summary(ctx, res)
	if err != nil {
		zap.L().Warn("model summary failed, using rule-based fallback", zap.Error(err))
		return Build(res)
	}
	return text
}

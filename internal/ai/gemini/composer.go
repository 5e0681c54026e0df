package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/logger"
	"github.com/dianaf18/jobpilot/internal/profile"
	"github.com/dianaf18/jobpilot/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Composer drafts cover letters through Gemini. It satisfies ai.Composer.
type Composer struct {
	generator  contentGenerator
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

func NewComposer(generator contentGenerator, maxRetries, maxLogLength int, log *zap.Logger) *Composer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Composer{
		generator:  generator,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     log,
	}
}

// Compose builds the prompt from the candidate and the listing and asks
// Gemini for the letter text, retrying transient failures with a linear
// backoff.
func (c *Composer) Compose(ctx context.Context, candidate *profile.UserProfile, listing *job.Listing) (string, error) {
	if candidate == nil {
		return "", fmt.Errorf("candidate profile is required")
	}
	if listing == nil {
		return "", fmt.Errorf("listing is required")
	}

	candidatePayload := map[string]any{
		"name":       candidate.Name,
		"experience": candidate.Experience,
		"skills":     candidate.Skills,
	}

	candidateJSON, err := json.MarshalIndent(candidatePayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}

	listingJSON, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal listing payload: %w", err)
	}

	prompt := buildPrompt(string(candidateJSON), string(listingJSON))

	c.logger.Debug("gemini compose request",
		zap.String("model", c.generator.Model()),
		zap.String("company", listing.Company),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.maxLogLen)),
	)

	var raw string
	for attempt := 0; ; attempt++ {
		raw, err = c.generator.GenerateContent(ctx, prompt)
		if err == nil {
			break
		}
		if attempt >= c.maxRetries {
			return "", err
		}

		c.logger.Warn("gemini compose retry",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if werr := utils.WaitFor(ctx, time.Duration(attempt+1)*time.Second); werr != nil {
			return "", werr
		}
	}

	c.logger.Debug("gemini compose response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, c.maxLogLen)),
	)

	letter := stripFences(raw)
	if letter == "" {
		return "", fmt.Errorf("gemini returned an empty letter")
	}

	return letter, nil
}

func buildPrompt(candidateJSON, listingJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidat:\n{{CANDIDATE_JSON}}\n\nOffre:\n{{LISTING_JSON}}\n\nLettre:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_JSON}}", candidateJSON)
	prompt = strings.ReplaceAll(prompt, "{{LISTING_JSON}}", listingJSON)
	return prompt
}

// stripFences removes the markdown code fences some models wrap their
// answers in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

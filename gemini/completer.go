// Package gemini implements completion and dense embedding on the
// Google Gemini API.
package gemini

import (
	"context"
	"errors"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"google.golang.org/genai"
)

const completionModel = "gemini-2.5-flash"

// Ensure Completer implements doccrawler.Completer at compile time.
var _ doccrawler.Completer = (*Completer)(nil)

// Completer implements doccrawler.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a Completer on the default completion model.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client, model: completionModel}
}

// Complete sends a single-turn prompt and returns the response text with
// token accounting.
func (c *Completer) Complete(ctx context.Context, prompt string, temperature float32) (*doccrawler.Completion, error) {
	if prompt == "" {
		return nil, doccrawler.Errorf(doccrawler.EINVALID, "prompt required")
	}

	temp := temperature
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return nil, classify(err)
	}
	if result == nil {
		return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "gemini returned nil result")
	}

	completion := &doccrawler.Completion{Text: result.Text()}
	if usage := result.UsageMetadata; usage != nil {
		completion.InputTokens = int(usage.PromptTokenCount)
		completion.OutputTokens = int(usage.CandidatesTokenCount)
	}
	return completion, nil
}

// classify maps provider failures onto the application error codes so
// callers can distinguish timeouts from provider outages.
func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return doccrawler.Errorf(doccrawler.ETIMEOUT, "gemini request timed out: %v", err)
	case errors.Is(err, context.Canceled):
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return doccrawler.Errorf(doccrawler.EUNAVAILABLE, "gemini unavailable: %v", err)
		}
		return doccrawler.Errorf(doccrawler.EINTERNAL, "gemini request failed: %v", err)
	}
	return doccrawler.Errorf(doccrawler.EUNAVAILABLE, "gemini unreachable: %v", err)
}

package doccrawler

import "context"

// Completion holds generated text plus token accounting for one
// completion-API call.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Completer generates text from a prompt.
// Failures carry a distinguishable error code: ETIMEOUT for deadline
// expiry, EUNAVAILABLE for provider rejections, EINTERNAL for transport
// errors.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (*Completion, error)
}

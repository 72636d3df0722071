package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.Completer = (*Completer)(nil)

// Completer is a mock implementation of doccrawler.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, temperature float32) (*doccrawler.Completion, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, temperature float32) (*doccrawler.Completion, error) {
	return c.CompleteFn(ctx, prompt, temperature)
}

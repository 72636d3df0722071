package mock

import (
	"context"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of doccrawler.DomainLimiter.
// With no WaitFn set it never blocks.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}

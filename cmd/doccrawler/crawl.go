package main

import (
	"context"
	"encoding/json"
	"fmt"

	dochttp "github.com/Krish-Goyani/DocCrawler/http"
	"github.com/google/uuid"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	timeout, err := parseTimeout(c.ScrapeTimeout, dochttp.DefaultScrapeTimeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(deps.Ctx, timeout)
	defer cancel()

	sessionID := uuid.NewString()
	fmt.Fprintf(deps.Stdout, "session %s: crawling %d URL(s)\n", sessionID, len(c.URLs))

	result, err := deps.Ingestor.Ingest(ctx, sessionID, c.URLs)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

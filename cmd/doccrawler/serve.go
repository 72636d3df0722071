package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dochttp "github.com/Krish-Goyani/DocCrawler/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	timeout, err := parseTimeout(c.ScrapeTimeout, dochttp.DefaultScrapeTimeout)
	if err != nil {
		return err
	}

	server := &dochttp.Server{
		Addr:          c.Addr,
		Ingestor:      deps.Ingestor,
		Querier:       deps.Querier,
		ScrapeTimeout: timeout,
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(deps.Stdout, "listening on %s\n", c.Addr)
	return server.ListenAndServe(ctx)
}

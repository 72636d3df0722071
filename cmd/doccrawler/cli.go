package main

import (
	"context"
	"io"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Ingestor doccrawler.Ingestor
	Querier  doccrawler.Querier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the HTTP API server"`
	Crawl CrawlCmd `cmd:"" help:"Crawl and index documentation sites"`
	Query QueryCmd `cmd:"" help:"Search the indexed documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string `default:":8080" help:"Listen address"`
	ScrapeTimeout string `default:"30m" help:"Per-session crawl deadline"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs        []string `arg:"" help:"Documentation start URLs"`
	Workers     int      `short:"c" default:"60" help:"Concurrent crawl workers"`
	MaxDepth    int      `default:"3" help:"Maximum crawl depth"`
	Budget      int      `default:"20" help:"Per-target link-filter call budget"`
	NoBrowser   bool     `help:"Fetch with plain HTTP instead of a headless browser"`
	NoSnippets  bool     `help:"Skip the interactive snippet recovery pass"`
	Readability bool     `help:"Extract content with readability instead of trafilatura"`
	RateLimit   float64  `default:"1.0" help:"Requests per second per domain"`
	IndexName   string   `default:"doc-crawler" help:"Vector index name"`
	ScrapeTimeout string `default:"30m" help:"Session deadline"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Query     string            `arg:"" help:"Search query"`
	Alpha     float64           `default:"0.5" help:"Dense/sparse balance in [0,1]"`
	TopK      int               `default:"20" help:"Candidates retrieved from the index"`
	TopN      int               `default:"5" help:"Results returned after reranking"`
	Filter    map[string]string `short:"F" help:"Metadata filter (key=value, repeatable)"`
	IndexName string            `default:"doc-crawler" help:"Vector index name"`
}

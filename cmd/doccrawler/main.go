package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/bm25"
	"github.com/Krish-Goyani/DocCrawler/chunk"
	"github.com/Krish-Goyani/DocCrawler/crawl"
	"github.com/Krish-Goyani/DocCrawler/embed"
	"github.com/Krish-Goyani/DocCrawler/fs"
	"github.com/Krish-Goyani/DocCrawler/gemini"
	"github.com/Krish-Goyani/DocCrawler/goquery"
	"github.com/Krish-Goyani/DocCrawler/htmltomarkdown"
	dochttp "github.com/Krish-Goyani/DocCrawler/http"
	"github.com/Krish-Goyani/DocCrawler/index"
	"github.com/Krish-Goyani/DocCrawler/ingest"
	"github.com/Krish-Goyani/DocCrawler/pinecone"
	"github.com/Krish-Goyani/DocCrawler/query"
	"github.com/Krish-Goyani/DocCrawler/readability"
	"github.com/Krish-Goyani/DocCrawler/rod"
	docslog "github.com/Krish-Goyani/DocCrawler/slog"
	"github.com/Krish-Goyani/DocCrawler/sqlite"
	"github.com/Krish-Goyani/DocCrawler/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// DataDir holds session scratch files and frozen encoder parameters.
	DataDir string

	// SQLite database used by the error sink and usage log.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for _, c := range m.closers {
		_ = c.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("doccrawler"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'doccrawler --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	slog.SetDefault(logger)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCCRAWLER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()
	deps.DB = m.DB

	switch cmd {
	case "serve":
		if err := m.wireIngestor(ctx, deps, logger, ingestConfig{
			workers: 60, maxDepth: 3, budget: 20, rateLimit: 1.0,
			indexName: "doc-crawler", browser: true, snippets: true,
		}); err != nil {
			return err
		}
		if err := m.wireQuerier(ctx, deps, logger, "doc-crawler"); err != nil {
			return err
		}
	case "crawl":
		if err := m.wireIngestor(ctx, deps, logger, ingestConfig{
			workers:   cli.Crawl.Workers,
			maxDepth:  cli.Crawl.MaxDepth,
			budget:      cli.Crawl.Budget,
			rateLimit:   cli.Crawl.RateLimit,
			indexName:   cli.Crawl.IndexName,
			browser:     !cli.Crawl.NoBrowser,
			snippets:    !cli.Crawl.NoBrowser && !cli.Crawl.NoSnippets,
			readability: cli.Crawl.Readability,
		}); err != nil {
			return err
		}
	case "query":
		if err := m.wireQuerier(ctx, deps, logger, cli.Query.IndexName); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// ingestConfig carries per-command crawl settings into the wiring.
type ingestConfig struct {
	workers     int
	maxDepth    int
	budget      int
	rateLimit   float64
	indexName   string
	browser     bool
	snippets    bool
	readability bool
}

// wireIngestor assembles the full crawl-to-index pipeline.
func (m *Main) wireIngestor(ctx context.Context, deps *Dependencies, logger *slog.Logger, cfg ingestConfig) error {
	genaiClient, err := m.genaiClient(ctx)
	if err != nil {
		return err
	}
	store, err := m.vectorStore()
	if err != nil {
		return err
	}

	var fetcher doccrawler.Fetcher
	var snippets *crawl.SnippetCrawler
	if cfg.browser {
		manager, err := rod.NewBrowserManager()
		if err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, manager)
		fetcher = rod.NewFetcher(manager)
		if cfg.snippets {
			snippets = &crawl.SnippetCrawler{
				Extractor: rod.NewSnippetExtractor(manager),
				Errors:    sqlite.NewErrorSink(m.DB),
				Logger:    logger,
			}
		}
	} else {
		fetcher = dochttp.NewFetcher()
	}
	fetcher = docslog.NewLoggingFetcher(fetcher, logger)

	encoder, err := bm25.Load(m.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load sparse encoder params: %w", err)
	}

	errorSink := sqlite.NewErrorSink(m.DB)
	usageLog := sqlite.NewUsageLog(m.DB)
	scratch := fs.NewScratchStore(m.DataDir)
	completer := docslog.NewLoggingCompleter(gemini.NewCompleter(genaiClient), logger)
	vectors := docslog.NewLoggingVectorStore(store, logger)
	var extractor doccrawler.Extractor = trafilatura.NewExtractor()
	if cfg.readability {
		extractor = readability.NewExtractor()
	}

	deps.Ingestor = &ingest.Service{
		Fetcher:   fetcher,
		Extractor: extractor,
		Crawler: &crawl.Crawler{
			Sitemaps:    docslog.NewLoggingSitemapService(dochttp.NewSitemapService(nil), logger),
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   htmltomarkdown.NewConverter(),
			Links:       goquery.NewLinkExtractor(),
			Filter:      &crawl.LinkFilter{Completer: completer, Usage: usageLog, Errors: errorSink},
			RateLimiter: crawl.NewDomainLimiter(cfg.rateLimit),
			Errors:      errorSink,
			Logger:      logger,
			Workers:     cfg.workers,
			MaxDepth:    cfg.maxDepth,
		},
		Snippets: snippets,
		Chunks: &chunk.Pipeline{
			Completer: completer,
			Usage:     usageLog,
			Errors:    errorSink,
			Scratch:   scratch,
			Logger:    logger,
		},
		Embeds: &embed.Pipeline{
			Dense:   gemini.NewEmbedder(genaiClient),
			Sparse:  encoder,
			Errors:  errorSink,
			Scratch: scratch,
			Logger:  logger,
		},
		Index: &index.Manager{
			Store:     vectors,
			Scratch:   scratch,
			Errors:    errorSink,
			Logger:    logger,
			IndexName: cfg.indexName,
			Namespace: "default",
		},
		Scratch:   scratch,
		Logger:    logger,
		BudgetCap: cfg.budget,
	}
	return nil
}

// wireQuerier assembles the hybrid search path.
func (m *Main) wireQuerier(ctx context.Context, deps *Dependencies, logger *slog.Logger, indexName string) error {
	genaiClient, err := m.genaiClient(ctx)
	if err != nil {
		return err
	}
	store, err := m.vectorStore()
	if err != nil {
		return err
	}
	encoder, err := bm25.Load(m.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load sparse encoder params: %w", err)
	}

	jinaKey := os.Getenv("JINA_API_KEY")
	if jinaKey == "" {
		return fmt.Errorf("JINA_API_KEY not set. Get a key at https://jina.ai")
	}

	deps.Querier = &query.Engine{
		Dense:     gemini.NewEmbedder(genaiClient),
		Sparse:    encoder,
		Store:     docslog.NewLoggingVectorStore(store, logger),
		Reranker:  dochttp.NewJinaReranker(jinaKey),
		Logger:    logger,
		IndexName: indexName,
		Namespace: "default",
	}
	return nil
}

func (m *Main) genaiClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func (m *Main) vectorStore() (doccrawler.VectorStore, error) {
	apiKey := os.Getenv("PINECONE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("PINECONE_API_KEY not set. Get a key at https://app.pinecone.io")
	}
	return pinecone.NewStore(apiKey)
}

// parseTimeout parses a duration flag, falling back to the default on
// empty input.
func parseTimeout(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	return d, nil
}

func defaultDBPath() string {
	if path := os.Getenv("DOCCRAWLER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "doccrawler.db"
	}
	dir := filepath.Join(home, ".doccrawler")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "doccrawler.db")
}

func defaultDataDir() string {
	if path := os.Getenv("DOCCRAWLER_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "doccrawler-data"
	}
	dir := filepath.Join(home, ".doccrawler", "data")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

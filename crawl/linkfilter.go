package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// filterBatchSize caps how many candidate links go into a single
// completion call.
const filterBatchSize = 180

const filterPrompt = `###TASK###
You are given a list of URLs discovered on a developer documentation site.
Select only the URLs that point to useful documentation content: guides,
tutorials, API references, SDK pages, quickstarts and code examples.

###INSTRUCTIONS###
- Discard links to marketing pages, blogs, pricing, careers, legal pages,
  sign-in/sign-up flows, release archives and social media.
- Discard links to binary assets (images, archives, videos).
- Keep the URLs exactly as given. Do not rewrite, shorten or deduplicate
  beyond removing unwanted entries.
- Respond with a JSON array of the selected URL strings and nothing else.

**INPUT:**
%s

**OUTPUT:**`

// LinkFilter selects documentation-relevant links from crawl candidates
// using the completion API, charging each call against the owning
// target's session budget.
type LinkFilter struct {
	Completer doccrawler.Completer
	Usage     doccrawler.UsageLog
	Errors    doccrawler.ErrorSink

	// usage accounting across the session
	mu           sync.Mutex
	requestCount int
	totalInput   int
	totalOutput  int
}

// Filter returns the subset of links worth crawling. Candidates are split
// into batches of at most 180 URLs, one completion call per batch. Each
// call is charged to the target's budget before it is made; if the call
// fails the charge is rolled back, the failure is recorded, and the batch
// contributes nothing. When the budget is exhausted remaining batches are
// skipped.
func (lf *LinkFilter) Filter(ctx context.Context, state *State, target string, links []string) []string {
	var selected []string
	for start := 0; start < len(links); start += filterBatchSize {
		end := start + filterBatchSize
		if end > len(links) {
			end = len(links)
		}
		batch := links[start:end]

		if !state.SpendBudget(target) {
			break
		}

		urls, err := lf.filterBatch(ctx, state.SessionID, batch)
		if err != nil {
			state.RefundBudget(target)
			lf.record(ctx, state.SessionID, fmt.Sprintf("link filtering failed for %s: %v", target, err))
			continue
		}
		selected = append(selected, urls...)
	}
	return selected
}

func (lf *LinkFilter) filterBatch(ctx context.Context, sessionID string, batch []string) ([]string, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(filterPrompt, string(payload))

	started := time.Now()
	completion, err := lf.Completer.Complete(ctx, prompt, 0)
	if err != nil {
		return nil, err
	}
	lf.logUsage(ctx, sessionID, completion, time.Since(started))

	return parseURLList(completion.Text)
}

// parseURLList reads a JSON array of URL strings, tolerating a fenced
// code block around it.
func parseURLList(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var urls []string
	if err := json.Unmarshal([]byte(text), &urls); err != nil {
		return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "malformed URL list in completion output: %v", err)
	}
	return urls, nil
}

func (lf *LinkFilter) logUsage(ctx context.Context, sessionID string, c *doccrawler.Completion, elapsed time.Duration) {
	if lf.Usage == nil {
		return
	}

	lf.mu.Lock()
	lf.requestCount++
	lf.totalInput += c.InputTokens
	lf.totalOutput += c.OutputTokens
	rec := &doccrawler.UsageRecord{
		Timestamp:         time.Now().UTC(),
		RequestType:       "url_filtering",
		RequestCount:      lf.requestCount,
		InputTokens:       c.InputTokens,
		OutputTokens:      c.OutputTokens,
		TotalInputTokens:  lf.totalInput,
		TotalOutputTokens: lf.totalOutput,
		Duration:          elapsed,
	}
	lf.mu.Unlock()

	if err := lf.Usage.SaveUsage(ctx, rec); err != nil {
		lf.record(ctx, sessionID, fmt.Sprintf("saving usage record: %v", err))
	}
}

func (lf *LinkFilter) record(ctx context.Context, sessionID, message string) {
	if lf.Errors == nil {
		return
	}
	_ = lf.Errors.Record(ctx, sessionID, message)
}

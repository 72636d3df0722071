package crawl

import (
	"strings"
	"sync"

	"github.com/Krish-Goyani/DocCrawler/bloom"
)

// Entry is one unit of crawl work: a URL at a depth, attributed to the
// target that discovered it.
type Entry struct {
	URL     string
	Depth   int
	Target  string
	BaseURL string

	// SitemapMode marks entries seeded from a sitemap; such entries are
	// recorded but never expanded.
	SitemapMode bool
}

// Frontier is an in-memory FIFO crawl queue with Bloom filter
// deduplication and drain tracking. Pop blocks while the queue is empty
// but entries are still in flight, and returns false once every pushed
// entry has been marked done. It is safe for concurrent use.
type Frontier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	seen    *bloom.Filter
	queue   []Entry
	pending int
	closed  bool
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	f := &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// stripFragment removes the URL fragment so URLs differing only by
// fragment dedupe to the same entry.
func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// Push adds an entry to the frontier. Returns false if the URL has
// already been seen. Fragments are stripped before deduplication and the
// stored entry carries the fragmentless URL.
func (f *Frontier) Push(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}

	e.URL = stripFragment(e.URL)
	if f.seen.TestAndAdd(e.URL) {
		return false
	}

	f.queue = append(f.queue, e)
	f.pending++
	f.cond.Signal()
	return true
}

// Pop returns the next entry in FIFO order. It blocks while the queue is
// empty but earlier entries are still being processed, since processing
// may push more work. The bool result is false once the frontier has
// drained or been closed.
func (f *Frontier) Pop() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) == 0 && f.pending > 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 || f.closed {
		return Entry{}, false
	}

	e := f.queue[0]
	f.queue = f.queue[1:]
	return e, true
}

// Done marks one popped entry as fully processed. When the last in-flight
// entry completes and the queue is empty, all blocked Pop calls return.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending > 0 {
		f.pending--
	}
	if f.pending == 0 {
		f.cond.Broadcast()
	}
}

// Close unblocks all Pop calls and rejects further pushes. Used to abort
// a crawl on context cancellation.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen reports whether the URL has been queued at any point. Fragments
// are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

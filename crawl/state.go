package crawl

import (
	"sync"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// budget tracks completion-API spend for one target. The lock pair is
// created at session init, before any worker starts, so workers never race
// on lock creation.
type budget struct {
	mu   sync.Mutex
	used int
}

// State is the shared mutable state of one crawl session: the frontier,
// per-target result accumulators, and per-target call-budget counters.
// It is created per session and passed explicitly, never held globally.
type State struct {
	SessionID string

	frontier  *Frontier
	budgetCap int
	budgets   map[string]*budget

	mu      sync.Mutex
	results map[string][]*doccrawler.PageRecord
}

// Frontier sizing for the Bloom-filter visited set.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// NewState creates session state with one budget counter and result list
// pre-created per target.
func NewState(sessionID string, targets []doccrawler.CrawlTarget, budgetCap int) *State {
	s := &State{
		SessionID: sessionID,
		frontier:  NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		budgetCap: budgetCap,
		budgets:   make(map[string]*budget, len(targets)),
		results:   make(map[string][]*doccrawler.PageRecord, len(targets)),
	}
	for _, t := range targets {
		s.budgets[t.Name] = &budget{}
		s.results[t.Name] = []*doccrawler.PageRecord{}
	}
	return s
}

// Frontier returns the session's crawl frontier.
func (s *State) Frontier() *Frontier {
	return s.frontier
}

// SpendBudget atomically checks and increments the target's budget counter.
// It returns false, without incrementing, if the counter is at the cap.
func (s *State) SpendBudget(target string) bool {
	b, ok := s.budgets[target]
	if !ok {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.used >= s.budgetCap {
		return false
	}
	b.used++
	return true
}

// RefundBudget rolls back one budget increment after a failed call so
// budget is not wasted on failures. The counter floors at zero.
func (s *State) RefundBudget(target string) {
	b, ok := s.budgets[target]
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.used > 0 {
		b.used--
	}
}

// BudgetRemaining reports whether the target may spend further
// completion-API calls.
func (s *State) BudgetRemaining(target string) bool {
	b, ok := s.budgets[target]
	if !ok {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used < s.budgetCap
}

// BudgetUsed returns the number of calls charged to the target.
func (s *State) BudgetUsed(target string) int {
	b, ok := s.budgets[target]
	if !ok {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// TotalBudgetUsed returns the number of calls charged across all targets.
func (s *State) TotalBudgetUsed() int {
	var total int
	for name := range s.budgets {
		total += s.BudgetUsed(name)
	}
	return total
}

// AppendPage appends a crawled page to the target's result list.
// Appends are atomic and safe under concurrent workers.
func (s *State) AppendPage(target string, page *doccrawler.PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[target] = append(s.results[target], page)
}

// Pages returns a snapshot of the target's result list.
func (s *State) Pages(target string) []*doccrawler.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*doccrawler.PageRecord(nil), s.results[target]...)
}

// Results returns a snapshot of all result lists keyed by target name.
func (s *State) Results() map[string][]*doccrawler.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]*doccrawler.PageRecord, len(s.results))
	for name, pages := range s.results {
		out[name] = append([]*doccrawler.PageRecord(nil), pages...)
	}
	return out
}

// RewriteContent replaces the content of the page identified by url within
// the target's result list. Returns false if no such page exists.
func (s *State) RewriteContent(target, url, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.results[target] {
		if page.URL == url {
			page.Content = content
			return true
		}
	}
	return false
}

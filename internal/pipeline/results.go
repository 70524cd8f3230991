package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/dgallion1/sowgen/internal/form"
)

// Result is one finished generation. It is not modified after it is stored.
type Result struct {
	ID       string    `json:"id"`
	Form     form.Form `json:"form"`
	Guide    string    `json:"guide"`
	SOW      string    `json:"sow"`
	Excerpt  string    `json:"excerpt"`
	Notices  []string  `json:"notices"`
	Filename string    `json:"filename,omitempty"`
	// PageCount is only set for PDF uploads.
	PageCount    int       `json:"page_count,omitempty"`
	GuideContext int       `json:"guide_context_chars"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResultStore is a thread-safe in-memory registry of results with TTL
// eviction, kept so downloads can be served after the page renders.
type ResultStore struct {
	mu      sync.Mutex
	results map[string]*Result
	ttl     time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return &ResultStore{
		results: make(map[string]*Result),
		ttl:     ttl,
	}
}

func (s *ResultStore) Put(r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.ID] = r
}

// Get returns the result with id, or nil.
func (s *ResultStore) Get(id string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[id]
}

func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Cleanup removes expired results.
func (s *ResultStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, r := range s.results {
		if now.Sub(r.CreatedAt) > s.ttl {
			delete(s.results, id)
		}
	}
}

// Start runs Cleanup every interval until Stop or ctx is done.
func (s *ResultStore) Start(ctx context.Context, interval time.Duration) {
	janitorCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-janitorCtx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Stop halts the janitor and waits for it to exit.
func (s *ResultStore) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

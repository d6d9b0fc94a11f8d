package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/wikichat/internal/nlp"
	"github.com/ppiankov/wikichat/internal/worker"
)

// lookupJob fetches and ranks the knowledge contribution of one entity
type lookupJob struct {
	index   int
	entity  string
	query   string
	session *Session
}

// lookupResult is the ordered contribution of one entity
type lookupResult struct {
	index     int
	sentences []string
	err       error
}

// GetError returns the lookup error, if any
func (r *lookupResult) GetError() error { return r.err }

// Execute looks up the entity and returns its top-ranked summary sentences
func (j *lookupJob) Execute(ctx context.Context) worker.Result {
	s := j.session

	results, err := s.kb.Search(ctx, j.entity)
	if err != nil {
		return &lookupResult{index: j.index, err: fmt.Errorf("search %q: %w", j.entity, err)}
	}
	if len(results) == 0 {
		return &lookupResult{index: j.index}
	}

	// Only the first search hits are consulted; ambiguity between
	// same-named entities is deliberately not resolved further.
	limit := s.cfg.Knowledge.ResultsPerEntity
	if limit <= 0 {
		limit = 1
	}
	if limit > len(results) {
		limit = len(results)
	}

	var sentences []string
	for _, hit := range results[:limit] {
		summary, err := s.kb.Summary(ctx, hit.ID)
		if err != nil {
			// A single missing article never fails the whole turn
			continue
		}
		sentences = append(sentences, nlp.SplitSentences(summary)...)
	}
	if len(sentences) == 0 {
		return &lookupResult{index: j.index}
	}

	top, err := s.ranker.TopN(ctx, j.query, sentences, s.cfg.Knowledge.TopSentences)
	if err != nil {
		return &lookupResult{index: j.index, err: fmt.Errorf("rank %q: %w", j.entity, err)}
	}

	return &lookupResult{index: j.index, sentences: top}
}

// buildKnowledge assembles the knowledge string for a query. Entity
// lookups run concurrently, but contributions are reassembled in the
// original entity order so the result is deterministic for a fixed set
// of lookups.
func (s *Session) buildKnowledge(ctx context.Context, query string, entities []string) string {
	if len(entities) == 0 {
		return ""
	}

	workers := s.cfg.Knowledge.Workers
	if workers <= 0 || workers > len(entities) {
		workers = len(entities)
	}

	// Queues sized to the job count: every entity is submitted from this
	// goroutine before Wait drains a single result.
	pool := worker.NewBufferedPool(workers, len(entities))
	pool.Start()
	for i, entity := range entities {
		pool.Submit(&lookupJob{index: i, entity: entity, query: query, session: s})
	}

	results := pool.Wait()
	contributions := make([]*lookupResult, 0, len(results))
	for _, r := range results {
		lr := r.(*lookupResult)
		if lr.err != nil {
			// Skip this entity's contribution rather than aborting the turn
			fmt.Fprintf(s.errOut, "Warning: knowledge lookup failed: %v\n", lr.err)
			continue
		}
		contributions = append(contributions, lr)
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].index < contributions[j].index
	})

	var parts []string
	for _, c := range contributions {
		parts = append(parts, c.sentences...)
	}
	return strings.Join(parts, " ")
}

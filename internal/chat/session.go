// Package chat runs the interactive dialogue loop: it assembles knowledge
// for each user turn and asks a generation provider for a reply.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/ppiankov/wikichat/internal/llm"
	"github.com/ppiankov/wikichat/internal/model"
	"github.com/ppiankov/wikichat/internal/nlp"
)

// KnowledgeSource is the slice of the knowledge-base client a session
// needs: entity search plus article summaries.
type KnowledgeSource interface {
	Search(ctx context.Context, text string) ([]model.SearchResult, error)
	Summary(ctx context.Context, entityRef string) (string, error)
}

// Ranker orders candidate sentences by similarity to an anchor query
type Ranker interface {
	TopN(ctx context.Context, anchor string, candidates []string, n int) ([]string, error)
}

// Deps are the collaborators a session is constructed with. Extractor,
// KB, and Ranker may all be nil, which disables knowledge augmentation.
type Deps struct {
	Extractor nlp.Extractor
	KB        KnowledgeSource
	Ranker    Ranker
	Provider  llm.Provider
}

// Session owns the dialogue history and orchestrates one turn at a time.
// It is not safe for concurrent use; the loop is strictly sequential.
type Session struct {
	cfg       *model.Config
	extractor nlp.Extractor
	kb        KnowledgeSource
	ranker    Ranker
	provider  llm.Provider
	verbose   bool
	out       io.Writer
	errOut    io.Writer
	dialog    []string
}

// NewSession creates a new chat session
func NewSession(cfg *model.Config, deps Deps, verbose bool, out, errOut io.Writer) *Session {
	return &Session{
		cfg:       cfg,
		extractor: deps.Extractor,
		kb:        deps.KB,
		ranker:    deps.Ranker,
		provider:  deps.Provider,
		verbose:   verbose,
		out:       out,
		errOut:    errOut,
	}
}

// augmented reports whether knowledge augmentation is wired up
func (s *Session) augmented() bool {
	return s.extractor != nil && s.kb != nil && s.ranker != nil
}

// History returns a copy of the full dialogue history
func (s *Session) History() []string {
	return append([]string(nil), s.dialog...)
}

// recentDialog returns at most the most recent HistoryLimit turns
func (s *Session) recentDialog() []string {
	limit := s.cfg.Dialog.HistoryLimit
	if limit <= 0 || len(s.dialog) <= limit {
		return s.dialog
	}
	return s.dialog[len(s.dialog)-limit:]
}

// Turn processes a single user query and returns the generated reply
func (s *Session) Turn(ctx context.Context, query string) (string, error) {
	s.dialog = append(s.dialog, query)

	knowledge := ""
	if s.augmented() {
		entities, err := s.extractor.Entities(ctx, query)
		if err != nil {
			// A failed extraction degrades to plain chitchat
			fmt.Fprintf(s.errOut, "Warning: entity extraction failed: %v\n", err)
		} else {
			knowledge = s.buildKnowledge(ctx, query, entities)
		}
	}

	if s.verbose {
		fmt.Fprintf(s.errOut, "Knowledge: %s\n", knowledge)
	}

	resp, err := s.provider.Generate(ctx, llm.GenerateRequest{
		Instruction: s.cfg.Dialog.Instruction,
		Knowledge:   knowledge,
		Dialog:      s.recentDialog(),
		MaxTokens:   s.cfg.LLM.MaxTokens,
		TopP:        s.cfg.LLM.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	return resp.Reply, nil
}

// Run reads queries line by line until EOF, printing a reply for each.
// A failed generation is reported to the user and the loop continues.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(s.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		query := scanner.Text()
		if query == "" {
			continue
		}

		reply, err := s.Turn(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(s.errOut, "Warning: %v\n", err)
			fmt.Fprintln(s.out, "Computer: (could not generate a response)")
			continue
		}

		fmt.Fprintf(s.out, "Computer: %s\n", reply)
	}
}

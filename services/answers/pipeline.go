// Package answers resolves free-text questions against the curated
// knowledge base: an exact-match pass over the Q/A table, then an
// embedding-based semantic pass.
package answers

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"studentbot/core/logger"
	"studentbot/models"
)

// Source loads the curated question/answer data.
type Source interface {
	LoadQnA() ([]models.KnowledgeItem, error)
	LoadKnowledge() ([]models.KnowledgeItem, error)
}

// Embedder maps text into the vector space shared with the knowledge base.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Options tune the semantic pass.
type Options struct {
	// SimilarityThreshold is the minimum cosine score for a semantic match.
	SimilarityThreshold float64
	// EmbedTimeout bounds a single embedding call; on expiry the semantic
	// pass degrades to "no match".
	EmbedTimeout time.Duration
}

// snapshot is the immutable view queries read. Reload builds a fresh one and
// swaps the pointer so concurrent readers never observe a half-updated table.
type snapshot struct {
	qna        []models.KnowledgeItem
	knowledge  []models.KnowledgeItem
	embeddings [][]float64
}

// Pipeline answers questions from the knowledge base. Safe for concurrent use.
type Pipeline struct {
	source   Source
	embedder Embedder
	opts     Options

	current atomic.Pointer[snapshot]
}

// NewPipeline builds an empty pipeline; call Reload to populate it.
func NewPipeline(source Source, embedder Embedder, opts Options) *Pipeline {
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = 0.8
	}
	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = 10 * time.Second
	}
	p := &Pipeline{source: source, embedder: embedder, opts: opts}
	p.current.Store(&snapshot{})
	return p
}

// Reload re-reads both tables and recomputes every knowledge embedding.
// The cache is replaced wholesale; there is no incremental update. When the
// embedding backend is unavailable the new snapshot still serves exact
// matches, and the error is returned for the caller to log.
func (p *Pipeline) Reload(ctx context.Context) error {
	next := &snapshot{}

	qna, err := p.source.LoadQnA()
	if err != nil {
		return err
	}
	next.qna = qna

	knowledge, err := p.source.LoadKnowledge()
	if err != nil {
		return err
	}
	next.knowledge = knowledge

	embedErr := p.embedAll(ctx, next)

	p.current.Store(next)
	logger.Info(ctx, "answers", "knowledge.reload",
		slog.Int("qna_items", len(next.qna)),
		slog.Int("knowledge_items", len(next.knowledge)),
		slog.Bool("semantic_ready", len(next.embeddings) == len(next.knowledge) && len(next.knowledge) > 0),
	)
	return embedErr
}

func (p *Pipeline) embedAll(ctx context.Context, next *snapshot) error {
	if p.embedder == nil || len(next.knowledge) == 0 {
		return nil
	}
	embeddings := make([][]float64, 0, len(next.knowledge))
	for _, item := range next.knowledge {
		vec, err := p.embedder.Embed(ctx, item.Question)
		if err != nil {
			// Leave the snapshot without vectors; the semantic pass will
			// report no match until the next successful reload.
			return err
		}
		embeddings = append(embeddings, vec)
	}
	next.embeddings = embeddings
	return nil
}

// Resolve returns the best answer for the question, or ok=false when neither
// pass finds one. A miss is a normal outcome, never an error.
func (p *Pipeline) Resolve(ctx context.Context, question string) (string, bool) {
	snap := p.current.Load()
	if snap == nil {
		return "", false
	}

	if answer, ok := exactMatch(snap.qna, question); ok {
		logger.Debug(ctx, "answers", "resolve.exact",
			slog.String("question", logger.SanitizeLimit(question, 128)),
		)
		return answer, true
	}

	return p.semanticMatch(ctx, snap, question)
}

// exactMatch scans for case-insensitive, whitespace-trimmed equality.
// First match wins; table questions are assumed unique.
func exactMatch(items []models.KnowledgeItem, question string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return "", false
	}
	for _, item := range items {
		if strings.ToLower(strings.TrimSpace(item.Question)) == normalized {
			return item.Answer, true
		}
	}
	return "", false
}

func (p *Pipeline) semanticMatch(ctx context.Context, snap *snapshot, question string) (string, bool) {
	if p.embedder == nil || len(snap.embeddings) == 0 {
		return "", false
	}

	embedCtx, cancel := context.WithTimeout(ctx, p.opts.EmbedTimeout)
	defer cancel()

	query, err := p.embedder.Embed(embedCtx, question)
	if err != nil {
		// Backend down or timed out: degrade to a miss.
		logger.Warn(ctx, "answers", "resolve.embed_unavailable",
			slog.String("err", err.Error()),
		)
		return "", false
	}

	bestIdx := -1
	bestScore := 0.0
	for i, vec := range snap.embeddings {
		// Strictly-greater keeps the lowest index on exact score ties.
		if score := cosineSimilarity(query, vec); bestIdx < 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 || bestScore < p.opts.SimilarityThreshold {
		logger.Debug(ctx, "answers", "resolve.miss",
			slog.Float64("best_score", bestScore),
		)
		return "", false
	}

	logger.Debug(ctx, "answers", "resolve.semantic",
		slog.Float64("score", bestScore),
		slog.Int("index", bestIdx),
	)
	return snap.knowledge[bestIdx].Answer, true
}

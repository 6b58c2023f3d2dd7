package answers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbot/models"
)

type fakeSource struct {
	qna       []models.KnowledgeItem
	knowledge []models.KnowledgeItem
	err       error
}

func (s *fakeSource) LoadQnA() ([]models.KnowledgeItem, error)       { return s.qna, s.err }
func (s *fakeSource) LoadKnowledge() ([]models.KnowledgeItem, error) { return s.knowledge, s.err }

// fakeEmbedder returns canned vectors keyed by text, or fails outright.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vec, ok := e.vectors[text]
	if !ok {
		return []float64{0, 0, 1}, nil
	}
	return vec, nil
}

func newLoadedPipeline(t *testing.T, source Source, embedder Embedder) *Pipeline {
	t.Helper()
	p := NewPipeline(source, embedder, Options{SimilarityThreshold: 0.8})
	require.NoError(t, p.Reload(context.Background()))
	return p
}

func TestResolveExactMatch(t *testing.T) {
	source := &fakeSource{
		qna: []models.KnowledgeItem{
			{Question: "How do I apply for a scholarship?", Answer: "Via the DSU portal."},
		},
	}
	p := newLoadedPipeline(t, source, nil)

	answer, ok := p.Resolve(context.Background(), "  how do i apply for a SCHOLARSHIP?  ")
	require.True(t, ok)
	assert.Equal(t, "Via the DSU portal.", answer)
}

func TestResolveEmptyQuestion(t *testing.T) {
	source := &fakeSource{qna: []models.KnowledgeItem{{Question: "x", Answer: "y"}}}
	p := newLoadedPipeline(t, source, nil)

	_, ok := p.Resolve(context.Background(), "   ")
	assert.False(t, ok)
}

func TestResolveSemanticMatch(t *testing.T) {
	source := &fakeSource{
		knowledge: []models.KnowledgeItem{
			{Question: "deadlines", Answer: "September."},
			{Question: "insurance", Answer: "SSN enrollment."},
		},
	}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"deadlines":                  {1, 0, 0},
		"insurance":                  {0, 1, 0},
		"when are the deadlines":     {0.9, 0.1, 0},
		"something about my laundry": {0, 0, 1},
	}}
	p := newLoadedPipeline(t, source, embedder)

	answer, ok := p.Resolve(context.Background(), "when are the deadlines")
	require.True(t, ok)
	assert.Equal(t, "September.", answer)

	// Below the threshold the pipeline reports a miss rather than guessing.
	_, ok = p.Resolve(context.Background(), "something about my laundry")
	assert.False(t, ok)
}

func TestResolveTieKeepsFirstEntry(t *testing.T) {
	source := &fakeSource{
		knowledge: []models.KnowledgeItem{
			{Question: "a", Answer: "first"},
			{Question: "b", Answer: "second"},
		},
	}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"a": {1, 0, 0},
		"b": {1, 0, 0},
		"q": {1, 0, 0},
	}}
	p := newLoadedPipeline(t, source, embedder)

	answer, ok := p.Resolve(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, "first", answer)
}

func TestResolveDegradesWhenEmbedderFails(t *testing.T) {
	source := &fakeSource{
		knowledge: []models.KnowledgeItem{{Question: "a", Answer: "x"}},
	}
	embedder := &fakeEmbedder{vectors: map[string][]float64{"a": {1, 0, 0}}}
	p := newLoadedPipeline(t, source, embedder)

	embedder.err = errors.New("backend down")
	_, ok := p.Resolve(context.Background(), "anything")
	assert.False(t, ok, "embedder failure must degrade to a miss, not an error")
}

func TestReloadSourceErrorKeepsSnapshot(t *testing.T) {
	source := &fakeSource{
		qna: []models.KnowledgeItem{{Question: "q", Answer: "old"}},
	}
	p := newLoadedPipeline(t, source, nil)

	source.err = errors.New("file missing")
	require.Error(t, p.Reload(context.Background()))

	answer, ok := p.Resolve(context.Background(), "q")
	require.True(t, ok, "failed reload must not clobber the serving snapshot")
	assert.Equal(t, "old", answer)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	source := &fakeSource{
		qna: []models.KnowledgeItem{{Question: "q", Answer: "old"}},
	}
	p := newLoadedPipeline(t, source, nil)

	source.qna = []models.KnowledgeItem{{Question: "q", Answer: "new"}}
	require.NoError(t, p.Reload(context.Background()))

	answer, ok := p.Resolve(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, "new", answer)
}

func TestReloadEmbedErrorStillServesExact(t *testing.T) {
	source := &fakeSource{
		qna:       []models.KnowledgeItem{{Question: "q", Answer: "a"}},
		knowledge: []models.KnowledgeItem{{Question: "k", Answer: "b"}},
	}
	embedder := &fakeEmbedder{err: errors.New("no backend")}
	p := NewPipeline(source, embedder, Options{})

	require.Error(t, p.Reload(context.Background()))

	answer, ok := p.Resolve(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, "a", answer)
}

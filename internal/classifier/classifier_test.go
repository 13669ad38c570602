package classifier

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verinews/apiserver/types"
)

// stubScorer returns canned probabilities per scoring text.
type stubScorer struct {
	probs map[string]float64
	errs  map[string]error
}

func (s *stubScorer) Score(text string) (float64, error) {
	if err, ok := s.errs[text]; ok {
		return 0, err
	}
	return s.probs[text], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyLabelBoundary(t *testing.T) {
	tests := []struct {
		name  string
		prob  float64
		label string
	}{
		{"well above threshold", 0.73, types.LabelReal},
		{"just above threshold", 0.500001, types.LabelReal},
		{"exactly at threshold", 0.5, types.LabelFake},
		{"below threshold", 0.2, types.LabelFake},
		{"zero", 0, types.LabelFake},
		{"one", 1, types.LabelReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := &stubScorer{probs: map[string]float64{"X ": tt.prob}}
			c := New(scorer, discardLogger())

			record, err := c.Classify(types.Article{Title: "X", Source: types.Source{Name: "src"}})
			require.NoError(t, err)
			assert.Equal(t, tt.label, record.Label)
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		prob float64
		want float64
	}{
		{0.73, 73.0},
		{0.5, 50.0},
		{0.123456, 12.35},
		{0.99999, 100.0},
		{0.12344, 12.34},
		{0, 0},
		{1, 100},
	}

	for _, tt := range tests {
		scorer := &stubScorer{probs: map[string]float64{"X ": tt.prob}}
		c := New(scorer, discardLogger())

		record, err := c.Classify(types.Article{Title: "X"})
		require.NoError(t, err)
		assert.InDelta(t, tt.want, record.Confidence, 1e-9, "prob %v", tt.prob)
		assert.GreaterOrEqual(t, record.Confidence, 0.0)
		assert.LessOrEqual(t, record.Confidence, 100.0)
	}
}

func TestClassifyAbsentDescription(t *testing.T) {
	scorer := &stubScorer{probs: map[string]float64{"X ": 0.73}}
	c := New(scorer, discardLogger())

	record, err := c.Classify(types.Article{Title: "X", Source: types.Source{Name: "wire"}})
	require.NoError(t, err)
	assert.Equal(t, types.LabelReal, record.Label)
	assert.Equal(t, 73.0, record.Confidence)
	assert.Equal(t, "wire", record.Source)
	assert.Empty(t, record.Description)
}

func TestClassifyAllPreservesOrderAndCounts(t *testing.T) {
	scorer := &stubScorer{probs: map[string]float64{
		"a 1": 0.9,
		"b 2": 0.1,
		"c 3": 0.8,
	}}
	c := New(scorer, discardLogger())

	articles := []types.Article{
		{Title: "a", Description: "1"},
		{Title: "b", Description: "2"},
		{Title: "c", Description: "3"},
	}
	result := c.ClassifyAll(articles)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "a", result.Items[0].Title)
	assert.Equal(t, "b", result.Items[1].Title)
	assert.Equal(t, "c", result.Items[2].Title)
	assert.Equal(t, 2, result.RealCount)
	assert.Equal(t, 1, result.FakeCount)
	assert.Equal(t, len(result.Items), result.RealCount+result.FakeCount)
}

func TestClassifyAllSkipsFailedArticles(t *testing.T) {
	scorer := &stubScorer{
		probs: map[string]float64{
			"a ": 0.9,
			"c ": 0.3,
		},
		errs: map[string]error{
			"b ": errors.New("scoring broke"),
		},
	}
	c := New(scorer, discardLogger())

	articles := []types.Article{
		{Title: "a"},
		{Title: "b"},
		{Title: "c"},
	}
	result := c.ClassifyAll(articles)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "a", result.Items[0].Title)
	assert.Equal(t, "c", result.Items[1].Title)
	assert.Equal(t, 1, result.RealCount)
	assert.Equal(t, 1, result.FakeCount)
}

func TestClassifyAllEmptyBatch(t *testing.T) {
	c := New(&stubScorer{}, discardLogger())

	result := c.ClassifyAll(nil)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.RealCount)
	assert.Zero(t, result.FakeCount)
}

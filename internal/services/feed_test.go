package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verinews/apiserver/internal/classifier"
	"github.com/verinews/apiserver/types"
)

// fakeSource records which endpoint was hit and returns canned articles.
type fakeSource struct {
	headlinesCategory string
	everythingQuery   string
	articles          []types.Article
	err               error
}

func (s *fakeSource) TopHeadlines(_ context.Context, category string) ([]types.Article, error) {
	s.headlinesCategory = category
	return s.articles, s.err
}

func (s *fakeSource) Everything(_ context.Context, query string) ([]types.Article, error) {
	s.everythingQuery = query
	return s.articles, s.err
}

// fixedScorer scores everything with one probability.
type fixedScorer struct {
	prob float64
}

func (s fixedScorer) Score(string) (float64, error) {
	return s.prob, nil
}

func testFeedService(source *fakeSource, prob float64) *FeedService {
	c := classifier.New(fixedScorer{prob: prob}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewFeedService(source, c)
}

func TestFetchDefaultsToGeneralHeadlines(t *testing.T) {
	source := &fakeSource{articles: []types.Article{{Title: "a"}}}
	svc := testFeedService(source, 0.9)

	result, err := svc.Fetch(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "general", source.headlinesCategory)
	assert.Empty(t, source.everythingQuery)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.RealCount)
}

func TestFetchQueryUsesEverything(t *testing.T) {
	source := &fakeSource{articles: []types.Article{{Title: "a"}, {Title: "b"}}}
	svc := testFeedService(source, 0.2)

	result, err := svc.Fetch(context.Background(), "sports", "elections")
	require.NoError(t, err)
	assert.Equal(t, "elections", source.everythingQuery)
	assert.Empty(t, source.headlinesCategory)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.FakeCount)
}

func TestFetchCategoryHeadlines(t *testing.T) {
	source := &fakeSource{articles: []types.Article{{Title: "a"}}}
	svc := testFeedService(source, 0.5)

	result, err := svc.Fetch(context.Background(), "business", "")
	require.NoError(t, err)
	assert.Equal(t, "business", source.headlinesCategory)
	require.Len(t, result.Items, 1)
	// Exactly 0.5 lands on the FAKE side of the boundary.
	assert.Equal(t, types.LabelFake, result.Items[0].Label)
}

func TestFetchPropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("news api down")}
	svc := testFeedService(source, 0.9)

	_, err := svc.Fetch(context.Background(), "", "")
	assert.Error(t, err)
}

package services

import (
	"context"
	"strings"

	"github.com/verinews/apiserver/internal/classifier"
	"github.com/verinews/apiserver/types"
)

const defaultCategory = "general"

// ArticleSource supplies raw article payloads from the upstream
// news provider.
type ArticleSource interface {
	TopHeadlines(ctx context.Context, category string) ([]types.Article, error)
	Everything(ctx context.Context, query string) ([]types.Article, error)
}

// FeedService fetches raw articles and classifies them into the feed
// served to admitted users.
type FeedService struct {
	source     ArticleSource
	classifier *classifier.Classifier
}

func NewFeedService(source ArticleSource, c *classifier.Classifier) *FeedService {
	return &FeedService{source: source, classifier: c}
}

// Fetch returns the classified feed. A non-empty query searches all
// articles; otherwise headlines for the category (default "general")
// are fetched.
func (s *FeedService) Fetch(ctx context.Context, category, query string) (classifier.Result, error) {
	var (
		articles []types.Article
		err      error
	)
	if strings.TrimSpace(query) != "" {
		articles, err = s.source.Everything(ctx, query)
	} else {
		if strings.TrimSpace(category) == "" {
			category = defaultCategory
		}
		articles, err = s.source.TopHeadlines(ctx, category)
	}
	if err != nil {
		return classifier.Result{}, err
	}

	return s.classifier.ClassifyAll(articles), nil
}

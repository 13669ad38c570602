package classifier

import (
	"log/slog"
	"math"

	"github.com/verinews/apiserver/types"
)

// TextScorer scores a text with the probability that it is real news.
type TextScorer interface {
	Score(text string) (float64, error)
}

// Classifier turns raw article payloads into labeled records.
type Classifier struct {
	scorer TextScorer
	logger *slog.Logger
}

// Result is a classified batch plus label counts summed over the
// produced records.
type Result struct {
	Items     []types.ArticleRecord `json:"items"`
	RealCount int                   `json:"real_count"`
	FakeCount int                   `json:"fake_count"`
}

func New(scorer TextScorer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{scorer: scorer, logger: logger}
}

// Classify scores one article. The scoring text is the title and
// description joined by a space; an absent description contributes an
// empty string, never a null placeholder.
func (c *Classifier) Classify(article types.Article) (types.ArticleRecord, error) {
	prob, err := c.scorer.Score(article.Title + " " + article.Description)
	if err != nil {
		return types.ArticleRecord{}, err
	}

	// Exactly 0.5 is FAKE by definition, not an approximation.
	label := types.LabelFake
	if prob > 0.5 {
		label = types.LabelReal
	}

	return types.ArticleRecord{
		Title:       article.Title,
		Description: article.Description,
		Source:      article.Source.Name,
		ImageURL:    article.ImageURL,
		Label:       label,
		Confidence:  confidence(prob),
	}, nil
}

// ClassifyAll classifies a batch in input order. An article whose
// scoring fails is skipped with a warning; the rest of the batch still
// classifies.
func (c *Classifier) ClassifyAll(articles []types.Article) Result {
	result := Result{Items: make([]types.ArticleRecord, 0, len(articles))}
	for _, article := range articles {
		record, err := c.Classify(article)
		if err != nil {
			c.logger.Warn("scoring failed, skipping article", "title", article.Title, "error", err)
			continue
		}
		result.Items = append(result.Items, record)
		if record.Label == types.LabelReal {
			result.RealCount++
		} else {
			result.FakeCount++
		}
	}
	return result
}

// confidence converts a probability to a percentage rounded to two
// decimal places, half away from zero.
func confidence(prob float64) float64 {
	return math.Round(prob*100*100) / 100
}

package classifier

import (
	"math"
	"strings"
	"unicode"
)

// Scorer computes the probability that a text describes real news.
// It holds only immutable artifact data, so a single Scorer is safe
// for concurrent use across requests.
type Scorer struct {
	artifact *Artifact
}

var _ TextScorer = (*Scorer)(nil)

// NewScorer constructs a Scorer over a loaded artifact.
func NewScorer(artifact *Artifact) *Scorer {
	return &Scorer{artifact: artifact}
}

// Score returns the probability in [0,1] that text is real news.
// Empty text is valid input: it scores to sigmoid of the intercept.
// Score never fails once the artifact has loaded; the error return
// satisfies TextScorer.
func (s *Scorer) Score(text string) (float64, error) {
	counts := make(map[int]float64)
	for _, token := range tokenize(text) {
		if index, ok := s.artifact.Vocabulary[token]; ok {
			counts[index]++
		}
	}

	// TF-IDF with L2 normalization over the present terms.
	var norm float64
	weights := make(map[int]float64, len(counts))
	for index, tf := range counts {
		w := tf * s.artifact.IDF[index]
		weights[index] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
	}

	z := s.artifact.Intercept
	for index, w := range weights {
		if norm > 0 {
			w /= norm
		}
		z += w * s.artifact.Coef[index]
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

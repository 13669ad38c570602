package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Artifact is the serialized scoring model: a TF-IDF vocabulary with
// per-term inverse document frequencies and logistic-regression
// weights over the same feature space. It is produced offline and
// loaded once at process start.
type Artifact struct {
	// Vocabulary maps a lowercased token to its feature index.
	Vocabulary map[string]int `json:"vocabulary"`

	// IDF holds the inverse document frequency per feature index.
	IDF []float64 `json:"idf"`

	// Coef holds the regression coefficient per feature index.
	Coef []float64 `json:"coef"`

	// Intercept is the regression bias term.
	Intercept float64 `json:"intercept"`
}

// LoadArtifact decodes and validates an artifact. Any failure here is
// treated as fatal by the caller: the process must not serve without a
// usable model.
func LoadArtifact(r io.Reader) (*Artifact, error) {
	var artifact Artifact
	if err := json.NewDecoder(r).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}
	return &artifact, nil
}

func (a *Artifact) validate() error {
	if len(a.Vocabulary) == 0 {
		return errors.New("empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(a.IDF), len(a.Vocabulary))
	}
	if len(a.Coef) != len(a.Vocabulary) {
		return fmt.Errorf("coef length %d does not match vocabulary size %d", len(a.Coef), len(a.Vocabulary))
	}
	for token, index := range a.Vocabulary {
		if index < 0 || index >= len(a.IDF) {
			return fmt.Errorf("token %q has out-of-range index %d", token, index)
		}
	}
	return nil
}

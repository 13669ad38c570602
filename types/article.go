package types

// Credibility labels assigned by the classifier.
const (
	LabelReal = "REAL"
	LabelFake = "FAKE"
)

// Article is a raw payload received from the news source. Description
// and ImageURL are optional and decode to the empty string when absent.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      Source `json:"source"`
	ImageURL    string `json:"urlToImage"`
}

// Source identifies the outlet that published an article.
type Source struct {
	Name string `json:"name"`
}

// ArticleRecord is a classified article as served to the feed. It is
// derived per request and never persisted.
type ArticleRecord struct {
	// Title is the raw article title.
	Title string `json:"title"`

	// Description is the raw article description, possibly empty.
	Description string `json:"description"`

	// Source is the name of the publishing outlet.
	Source string `json:"source"`

	// ImageURL is an optional reference to the article image.
	ImageURL string `json:"image,omitempty"`

	// Label is the derived credibility classification, REAL or FAKE.
	Label string `json:"label"`

	// Confidence is the scoring probability expressed as a
	// percentage in [0,100], rounded to two decimal places.
	Confidence float64 `json:"confidence"`
}

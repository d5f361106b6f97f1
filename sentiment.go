package sentimeter

import (
	"math"
	"strings"
)

// Sentiment is the three-way classification label of a comment.
type Sentiment string

// Sentiment constants. No other values are valid.
const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Sentiments lists all valid sentiments in display order.
var Sentiments = []Sentiment{Positive, Neutral, Negative}

// sentimentAliases maps the labels emitted by classification services to
// sentiments. The reference service labels its results in French.
var sentimentAliases = map[string]Sentiment{
	"positive": Positive,
	"positif":  Positive,
	"neutral":  Neutral,
	"neutre":   Neutral,
	"negative": Negative,
	"négatif":  Negative,
	"negatif":  Negative,
}

// ParseSentiment converts a service label to a Sentiment.
// Matching is case-insensitive and ignores surrounding whitespace.
// Returns EINVALID for unknown labels.
func ParseSentiment(label string) (Sentiment, error) {
	if s, ok := sentimentAliases[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s, nil
	}
	return "", Errorf(EINVALID, "unknown sentiment %q", label)
}

// SentimentFromLabel converts a numeric class label (1, 0, -1) to a Sentiment.
func SentimentFromLabel(label int) (Sentiment, error) {
	switch label {
	case 1:
		return Positive, nil
	case 0:
		return Neutral, nil
	case -1:
		return Negative, nil
	}
	return "", Errorf(EINVALID, "unknown sentiment label %d", label)
}

// Valid reports whether s is one of the known sentiments.
func (s Sentiment) Valid() bool {
	return s == Positive || s == Neutral || s == Negative
}

// Filter selects which classified items are visible.
type Filter string

// Filter constants.
const (
	FilterAll      Filter = "all"
	FilterPositive Filter = Filter(Positive)
	FilterNeutral  Filter = Filter(Neutral)
	FilterNegative Filter = Filter(Negative)
)

// ParseFilter converts user input to a Filter. An empty string selects all items.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPositive, FilterNeutral, FilterNegative:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown filter %q (want all, positive, neutral or negative)", s)
}

// Match reports whether an item with the given sentiment passes the filter.
func (f Filter) Match(s Sentiment) bool {
	return f == FilterAll || Sentiment(f) == s
}

// ClassifiedItem is a comment together with its classification.
type ClassifiedItem struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// Validate returns an error if the item contains invalid fields.
func (i ClassifiedItem) Validate() error {
	if !i.Sentiment.Valid() {
		return Errorf(EINVALID, "invalid sentiment %q", i.Sentiment)
	}
	if math.IsNaN(i.Confidence) || i.Confidence < 0 || i.Confidence > 1 {
		return Errorf(EINVALID, "confidence %v out of range [0,1]", i.Confidence)
	}
	return nil
}

// PercentTolerance is how far the sum of the three percentages may drift
// from 100 due to rounding.
const PercentTolerance = 1.0

// BatchStatistics holds the aggregate sentiment distribution of one batch.
type BatchStatistics struct {
	PositivePercent float64 `json:"positivePercent"`
	NeutralPercent  float64 `json:"neutralPercent"`
	NegativePercent float64 `json:"negativePercent"`
	TotalCount      int     `json:"totalCount"`
}

// Percent returns the percentage reported for the given sentiment.
func (s BatchStatistics) Percent(sentiment Sentiment) float64 {
	switch sentiment {
	case Positive:
		return s.PositivePercent
	case Neutral:
		return s.NeutralPercent
	case Negative:
		return s.NegativePercent
	}
	return 0
}

// Validate returns an error if the statistics are out of range or do not
// add up to 100 percent.
func (s BatchStatistics) Validate() error {
	if s.TotalCount < 0 {
		return Errorf(EINVALID, "negative total count %d", s.TotalCount)
	}
	for _, sentiment := range Sentiments {
		p := s.Percent(sentiment)
		if math.IsNaN(p) || p < 0 || p > 100 {
			return Errorf(EINVALID, "%s percentage %v out of range [0,100]", sentiment, p)
		}
	}
	if s.TotalCount == 0 {
		return nil
	}
	sum := s.PositivePercent + s.NeutralPercent + s.NegativePercent
	if math.Abs(sum-100) > PercentTolerance {
		return Errorf(EINVALID, "percentages sum to %.2f, want 100", sum)
	}
	return nil
}

// AnalysisResult is the outcome of one successful pipeline run.
type AnalysisResult struct {
	Items      []ClassifiedItem `json:"items"`
	Statistics BatchStatistics  `json:"statistics"`
}

// Validate returns an error if any item or the statistics are invalid.
func (r *AnalysisResult) Validate() error {
	for i, item := range r.Items {
		if err := item.Validate(); err != nil {
			return Errorf(EINVALID, "item %d: %s", i, ErrorMessage(err))
		}
	}
	return r.Statistics.Validate()
}

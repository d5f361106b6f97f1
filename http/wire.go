package http

import (
	"encoding/json"

	"github.com/fwojciec/sentimeter"
)

// batchRequest is the body of POST /predict_batch.
type batchRequest struct {
	Comments []string `json:"comments"`
}

// batchResponse is the body returned by POST /predict_batch.
// Pointer fields distinguish missing keys from zero values.
type batchResponse struct {
	Results       []resultJSON    `json:"results"`
	TotalComments *int            `json:"total_comments"`
	Statistics    *statisticsJSON `json:"statistics"`
}

type resultJSON struct {
	Text       string   `json:"text"`
	Sentiment  string   `json:"sentiment"`
	Label      *int     `json:"label"`
	Confidence *float64 `json:"confidence"`
}

type statisticsJSON struct {
	PositivePercent *float64 `json:"positive_percent"`
	NeutralPercent  *float64 `json:"neutral_percent"`
	NegativePercent *float64 `json:"negative_percent"`
}

// decodeBatchResponse parses raw into an AnalysisResult aligned with items.
// Result texts are taken from items because the service may truncate them.
func decodeBatchResponse(raw []byte, items []string) (*sentimeter.AnalysisResult, error) {
	var resp batchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "invalid JSON: %v", err)
	}

	if resp.Results == nil {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "missing results")
	}
	if len(resp.Results) != len(items) {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "got %d results for %d comments", len(resp.Results), len(items))
	}

	stats, err := resp.Statistics.decode()
	if err != nil {
		return nil, err
	}
	if resp.TotalComments != nil && *resp.TotalComments != len(resp.Results) {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "total_comments is %d but got %d results", *resp.TotalComments, len(resp.Results))
	}
	stats.TotalCount = len(resp.Results)

	result := &sentimeter.AnalysisResult{
		Items:      make([]sentimeter.ClassifiedItem, len(resp.Results)),
		Statistics: stats,
	}
	for i, r := range resp.Results {
		item, err := r.decode(items[i])
		if err != nil {
			return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "result %d: %s", i, sentimeter.ErrorMessage(err))
		}
		result.Items[i] = item
	}

	if err := result.Validate(); err != nil {
		return nil, sentimeter.Errorf(sentimeter.EMALFORMED, "%s", sentimeter.ErrorMessage(err))
	}
	return result, nil
}

func (r resultJSON) decode(text string) (sentimeter.ClassifiedItem, error) {
	var (
		s   sentimeter.Sentiment
		err error
	)
	switch {
	case r.Sentiment != "":
		s, err = sentimeter.ParseSentiment(r.Sentiment)
	case r.Label != nil:
		s, err = sentimeter.SentimentFromLabel(*r.Label)
	default:
		err = sentimeter.Errorf(sentimeter.EMALFORMED, "missing sentiment")
	}
	if err != nil {
		return sentimeter.ClassifiedItem{}, err
	}

	if r.Confidence == nil {
		return sentimeter.ClassifiedItem{}, sentimeter.Errorf(sentimeter.EMALFORMED, "missing confidence")
	}

	return sentimeter.ClassifiedItem{
		Text:       text,
		Sentiment:  s,
		Confidence: *r.Confidence,
	}, nil
}

func (s *statisticsJSON) decode() (sentimeter.BatchStatistics, error) {
	if s == nil {
		return sentimeter.BatchStatistics{}, sentimeter.Errorf(sentimeter.EMALFORMED, "missing statistics")
	}
	if s.PositivePercent == nil || s.NeutralPercent == nil || s.NegativePercent == nil {
		return sentimeter.BatchStatistics{}, sentimeter.Errorf(sentimeter.EMALFORMED, "incomplete statistics")
	}
	return sentimeter.BatchStatistics{
		PositivePercent: *s.PositivePercent,
		NeutralPercent:  *s.NeutralPercent,
		NegativePercent: *s.NegativePercent,
	}, nil
}

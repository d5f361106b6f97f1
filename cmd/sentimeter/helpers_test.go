package main_test

import (
	"context"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/mock"
)

const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func testResult() *sentimeter.AnalysisResult {
	return &sentimeter.AnalysisResult{
		Items: []sentimeter.ClassifiedItem{
			{Text: "love this song", Sentiment: sentimeter.Positive, Confidence: 0.95},
			{Text: "it's fine", Sentiment: sentimeter.Neutral, Confidence: 0.6},
			{Text: "terrible mix", Sentiment: sentimeter.Negative, Confidence: 0.82},
			{Text: "classic", Sentiment: sentimeter.Positive, Confidence: 0.7},
		},
		Statistics: sentimeter.BatchStatistics{
			PositivePercent: 50,
			NeutralPercent:  25,
			NegativePercent: 25,
			TotalCount:      4,
		},
	}
}

func testExtractor(texts ...string) *mock.Extractor {
	return &mock.Extractor{
		InjectFn: func(context.Context, string) error { return nil },
		ExtractFn: func(context.Context, string) (*sentimeter.Extraction, error) {
			return sentimeter.NewExtraction(texts), nil
		},
		CloseFn: func() error { return nil },
	}
}

func testClassifier(result *sentimeter.AnalysisResult) *mock.Classifier {
	return &mock.Classifier{
		HealthFn: func(context.Context) error { return nil },
		ClassifyBatchFn: func(context.Context, []string) (*sentimeter.AnalysisResult, error) {
			return result, nil
		},
	}
}

package sentimeter

import "context"

// Classifier is the remote sentiment classification service.
type Classifier interface {
	// Health probes the service. Returns EUNAVAILABLE unless the service
	// answers with a success status within the call's timeout.
	Health(ctx context.Context) error

	// ClassifyBatch submits all items in a single request. On success the
	// result items are index-aligned with the input.
	//
	// Returns ETRANSPORT for non-success statuses, EMALFORMED for bodies that
	// do not match the expected shape and EUNREACHABLE for network failures.
	ClassifyBatch(ctx context.Context, items []string) (*AnalysisResult, error)
}

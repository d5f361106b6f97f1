package sentimeter

import (
	"context"
	"strings"
)

// Extraction is the response of an Extractor: the comment texts found on a
// page, in document order.
type Extraction struct {
	Items   []string `json:"items"`
	Count   int      `json:"count"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

// NewExtraction builds a successful Extraction from raw texts.
// Texts are trimmed and empty ones are dropped.
func NewExtraction(texts []string) *Extraction {
	items := TrimItems(texts)
	return &Extraction{
		Items:   items,
		Count:   len(items),
		Success: true,
	}
}

// FailedExtraction builds an Extraction reporting that the page could not be read.
func FailedExtraction(msg string) *Extraction {
	return &Extraction{
		Items: []string{},
		Error: msg,
	}
}

// Texts returns the usable items of the extraction. An unsuccessful or empty
// extraction yields no items.
func (e *Extraction) Texts() []string {
	if e == nil || !e.Success || e.Count == 0 {
		return nil
	}
	return TrimItems(e.Items)
}

// TrimItems trims whitespace from each text and drops empty results,
// preserving order.
func TrimItems(texts []string) []string {
	items := make([]string, 0, len(texts))
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// Extractor reads comment texts from a rendered page.
//
// Extraction happens in two steps so callers can wait for the page to settle
// in between: Inject prepares the page (navigates, installs helpers, triggers
// lazy loading), Extract reads the comments.
type Extractor interface {
	// Inject prepares the page at pageURL for extraction.
	// Implementations that need no preparation return nil.
	Inject(ctx context.Context, pageURL string) error

	// Extract returns the comment texts currently rendered on the page.
	// A returned error means the round-trip to the page itself failed.
	Extract(ctx context.Context, pageURL string) (*Extraction, error)

	// Close releases resources held by the extractor.
	Close() error
}

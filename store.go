package sentimeter

import "sync"

// ResultStore holds the result of the last successful analysis run and the
// active filter. It replaces ambient view state with an owned object: the
// pipeline calls Replace, the filter selection calls SetFilter, and presenters
// only read derived views.
//
// ResultStore is safe for concurrent use; writes are last-writer-wins.
type ResultStore struct {
	mu     sync.Mutex
	result *AnalysisResult
	filter Filter

	// visible caches the filtered view; nil means stale.
	visible []ClassifiedItem
}

// NewResultStore returns an empty store with the filter set to FilterAll.
func NewResultStore() *ResultStore {
	return &ResultStore{filter: FilterAll}
}

// Replace discards any prior result and stores the new one.
// The active filter is left untouched.
func (s *ResultStore) Replace(result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = copyResult(result)
	s.visible = nil
}

// SetFilter changes the active filter. The visible view is recomputed on the
// next read.
func (s *ResultStore) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == s.filter {
		return
	}
	s.filter = f
	s.visible = nil
}

// Filter returns the active filter.
func (s *ResultStore) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Result returns a copy of the stored result, or nil if no run has
// completed.
func (s *ResultStore) Result() *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyResult(s.result)
}

func copyResult(result *AnalysisResult) *AnalysisResult {
	if result == nil {
		return nil
	}
	r := *result
	r.Items = append([]ClassifiedItem(nil), result.Items...)
	return &r
}

// Statistics returns the statistics of the stored result.
// Returns the zero value if no run has completed.
func (s *ResultStore) Statistics() BatchStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return BatchStatistics{}
	}
	return s.result.Statistics
}

// VisibleItems returns the stored items that pass the active filter, in
// batch order. An empty slice means no item matches the filter.
func (s *ResultStore) VisibleItems() []ClassifiedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.visible == nil {
		s.visible = s.filterItems()
	}
	return append([]ClassifiedItem{}, s.visible...)
}

// filterItems computes the filtered view. Must be called with mu held.
func (s *ResultStore) filterItems() []ClassifiedItem {
	visible := []ClassifiedItem{}
	if s.result == nil {
		return visible
	}
	for _, item := range s.result.Items {
		if s.filter.Match(item.Sentiment) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Counts returns the number of stored items per sentiment.
func (s *ResultStore) Counts() map[Sentiment]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[Sentiment]int, len(Sentiments))
	for _, sentiment := range Sentiments {
		counts[sentiment] = 0
	}
	if s.result == nil {
		return counts
	}
	for _, item := range s.result.Items {
		counts[item.Sentiment]++
	}
	return counts
}

// ExportText renders every stored item regardless of the active filter,
// one entry per item separated by blank lines.
func (s *ResultStore) ExportText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return ""
	}
	return FormatItems(s.result.Items)
}

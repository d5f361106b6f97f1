package sentimeter

import (
	"fmt"
	"strings"
)

// FormatItem renders one classified item as "[SENTIMENT] (NN.N%) text".
// Confidence is shown as a percentage with one decimal place.
func FormatItem(item ClassifiedItem) string {
	return fmt.Sprintf("[%s] (%.1f%%) %s", strings.ToUpper(string(item.Sentiment)), item.Confidence*100, item.Text)
}

// FormatItems formats items one per entry, separated by blank lines.
func FormatItems(items []ClassifiedItem) string {
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, FormatItem(item))
	}

	return strings.Join(parts, "\n\n")
}

// FormatStatistics renders the aggregate distribution on a single line.
func FormatStatistics(stats BatchStatistics) string {
	return fmt.Sprintf("positive %.1f%%  neutral %.1f%%  negative %.1f%%  (%d comments)",
		stats.PositivePercent, stats.NeutralPercent, stats.NegativePercent, stats.TotalCount)
}

package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/sentimeter"
)

// renderReport writes the statistics and the comments passing the active
// filter.
func renderReport(w io.Writer, store *sentimeter.ResultStore) {
	fmt.Fprintln(w, sentimeter.FormatStatistics(store.Statistics()))

	items := store.VisibleItems()
	fmt.Fprintf(w, "Filter: %s (%d)\n\n", store.Filter(), len(items))

	if len(items) == 0 {
		fmt.Fprintln(w, "No comments in this category.")
		return
	}
	fmt.Fprintln(w, sentimeter.FormatItems(items))
}

// progress shows that an analysis is running.
type progress struct {
	w io.Writer
}

// SetBusy prints a full line so log output written during the run starts on
// its own line.
func (p *progress) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(p.w, "Analyzing comments...")
	}
}

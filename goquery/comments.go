// Package goquery extracts comment texts from static HTML using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sentimeter"
)

// DefaultCommentSelector selects the body of each top-level comment thread
// on a YouTube watch page.
const DefaultCommentSelector = "ytd-comment-thread-renderer #content-text"

// ExtractComments returns the trimmed, non-empty text of every element
// matching selector, in document order.
func ExtractComments(html, selector string) ([]string, error) {
	if selector == "" {
		selector = DefaultCommentSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sentimeter.Errorf(sentimeter.EINVALID, "failed to parse HTML: %v", err)
	}

	var texts []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, sel.Text())
	})

	return sentimeter.TrimItems(texts), nil
}

// HasComments reports whether html already contains rendered comments.
// Pages that render comments client-side return false.
func HasComments(html, selector string) bool {
	comments, err := ExtractComments(html, selector)
	return err == nil && len(comments) > 0
}

package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/goquery"
	"github.com/fwojciec/sentimeter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Extractor implements sentimeter.Extractor.
var _ sentimeter.Extractor = (*goquery.Extractor)(nil)

const pageURL = "https://www.youtube.com/watch?v=abc"

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("extracts comments from page fetched by Inject", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetches++
				assert.Equal(t, pageURL, url)
				return watchPageHTML, nil
			},
		}
		extractor := goquery.NewExtractor(fetcher)

		require.NoError(t, extractor.Inject(context.Background(), pageURL))
		extraction, err := extractor.Extract(context.Background(), pageURL)

		require.NoError(t, err)
		assert.True(t, extraction.Success)
		assert.Equal(t, 3, extraction.Count)
		assert.Equal(t, []string{"great!", "meh @someone", "terrible"}, extraction.Items)
		assert.Equal(t, 1, fetches)
	})

	t.Run("fetches on Extract when Inject was skipped", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return watchPageHTML, nil
			},
		}
		extractor := goquery.NewExtractor(fetcher)

		extraction, err := extractor.Extract(context.Background(), pageURL)

		require.NoError(t, err)
		assert.Equal(t, 3, extraction.Count)
	})

	t.Run("returns fetch error from Inject", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection reset")
			},
		}
		extractor := goquery.NewExtractor(fetcher)

		err := extractor.Inject(context.Background(), pageURL)

		assert.EqualError(t, err, "connection reset")
	})

	t.Run("returns fetch error from Extract", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection reset")
			},
		}
		extractor := goquery.NewExtractor(fetcher)

		_, err := extractor.Extract(context.Background(), pageURL)

		require.Error(t, err)
	})

	t.Run("reports empty extraction for page without comments", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body><ytd-app></ytd-app></body></html>`, nil
			},
		}
		extractor := goquery.NewExtractor(fetcher)

		extraction, err := extractor.Extract(context.Background(), pageURL)

		require.NoError(t, err)
		assert.True(t, extraction.Success)
		assert.Zero(t, extraction.Count)
		assert.Empty(t, extraction.Texts())
	})

	t.Run("uses selector option", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<p class="c">one</p><p class="c">two</p>`, nil
			},
		}
		extractor := goquery.NewExtractor(fetcher, goquery.WithSelector("p.c"))

		extraction, err := extractor.Extract(context.Background(), pageURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, extraction.Items)
	})

	t.Run("close delegates to fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		fetcher := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		require.NoError(t, goquery.NewExtractor(fetcher).Close())
		assert.True(t, closed)
	})
}

package sentimeter_test

import (
	"testing"

	"github.com/fwojciec/sentimeter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextMatcher_Match(t *testing.T) {
	t.Parallel()

	m := sentimeter.DefaultContextMatcher()

	t.Run("matches watch pages", func(t *testing.T) {
		t.Parallel()

		assert.True(t, m.Match("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
		assert.True(t, m.Match("https://youtube.com/watch?v=abc"))
		assert.True(t, m.Match("https://m.youtube.com/watch?v=abc&t=42s"))
		assert.True(t, m.Match("https://www.youtube.com/watch?list=PL1&v=abc"))
	})

	t.Run("rejects other pages", func(t *testing.T) {
		t.Parallel()

		assert.False(t, m.Match("https://www.youtube.com/"))
		assert.False(t, m.Match("https://www.youtube.com/watch"))
		assert.False(t, m.Match("https://www.youtube.com/watch?v="))
		assert.False(t, m.Match("https://www.youtube.com/results?search_query=go"))
		assert.False(t, m.Match("https://example.com/youtube.com/watch?v=abc"))
		assert.False(t, m.Match(""))
	})
}

func TestNewContextMatcher(t *testing.T) {
	t.Parallel()

	t.Run("uses custom pattern", func(t *testing.T) {
		t.Parallel()

		m, err := sentimeter.NewContextMatcher(`^https://example\.com/item/\d+$`)

		require.NoError(t, err)
		assert.True(t, m.Match("https://example.com/item/42"))
		assert.False(t, m.Match("https://www.youtube.com/watch?v=abc"))
	})

	t.Run("empty pattern falls back to default", func(t *testing.T) {
		t.Parallel()

		m, err := sentimeter.NewContextMatcher("")

		require.NoError(t, err)
		assert.Equal(t, sentimeter.DefaultContextPattern, m.String())
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := sentimeter.NewContextMatcher("(")

		assert.Equal(t, sentimeter.EINVALID, sentimeter.ErrorCode(err))
	})
}

package sentimeter

import "regexp"

// DefaultContextPattern matches the single-video watch page of YouTube.
const DefaultContextPattern = `^https?://(?:www\.|m\.)?youtube\.com/watch\?(?:[^#]*&)?v=[^&#]+`

// ContextMatcher decides whether a page address is a page sentimeter can
// analyze.
type ContextMatcher struct {
	re *regexp.Regexp
}

// NewContextMatcher compiles pattern into a ContextMatcher.
// An empty pattern selects DefaultContextPattern.
func NewContextMatcher(pattern string) (*ContextMatcher, error) {
	if pattern == "" {
		pattern = DefaultContextPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid page pattern: %v", err)
	}
	return &ContextMatcher{re: re}, nil
}

// DefaultContextMatcher returns a matcher for DefaultContextPattern.
func DefaultContextMatcher() *ContextMatcher {
	return &ContextMatcher{re: regexp.MustCompile(DefaultContextPattern)}
}

// Match reports whether pageURL is an analyzable page.
func (m *ContextMatcher) Match(pageURL string) bool {
	return m.re.MatchString(pageURL)
}

// String returns the pattern.
func (m *ContextMatcher) String() string {
	return m.re.String()
}

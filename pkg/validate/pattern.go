package validate

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"sync"
)

// compiled holds full-match regexps keyed by their source pattern. Patterns in
// argument checks are usually literals, so each is compiled once per process.
var compiled sync.Map

// fullMatcher returns a regexp that only matches when pattern covers the whole
// input. The parsed pattern is anchored, not the source text, so constructs
// such as an unterminated \Q cannot swallow the anchors.
func fullMatcher(pattern string) (*regexp.Regexp, error) {
	if re, ok := compiled.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	// Compile the bare pattern first so syntax errors quote what the caller wrote.
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, err
	}
	anchored := &syntax.Regexp{
		Op: syntax.OpConcat,
		Sub: []*syntax.Regexp{
			{Op: syntax.OpBeginText},
			parsed,
			{Op: syntax.OpEndText},
		},
	}
	re, err := regexp.Compile(anchored.String())
	if err != nil {
		return nil, err
	}

	actual, _ := compiled.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

func quotePatterns(patterns []string) string {
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = `"` + p + `"`
	}
	return strings.Join(quoted, ", ")
}

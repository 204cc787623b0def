// Package wrapper strips the "object wrapper { ... }" scaffold from Scala
// code blocks so that rendered documentation shows only the example body.
package wrapper

import "regexp"

var (
	reWrapperStart = regexp.MustCompile(`object wrapper.*\{`)
	reWrapperEnd   = regexp.MustCompile(`^}`)
)

// Matcher classifies a single text run.
type Matcher func(text []byte) bool

// Patterns holds the two recognizers that drive the state machine.
type Patterns struct {
	Start Matcher
	End   Matcher
}

// DefaultPatterns returns the wrapper opener and closer recognizers.
func DefaultPatterns() Patterns {
	return Patterns{Start: IsWrapperStart, End: IsWrapperEnd}
}

// IsWrapperStart reports whether text contains a line declaring the wrapper
// object, e.g. "object wrapper {" or "  object wrapper extends App {".
func IsWrapperStart(text []byte) bool {
	return reWrapperStart.Match(text)
}

// IsWrapperEnd reports whether text begins with a closing brace. Only the
// first byte of the run counts; braces further along are ignored.
func IsWrapperEnd(text []byte) bool {
	return reWrapperEnd.Match(text)
}

package wrapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWrapperStart(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"object wrapper {", true},
		{"object wrapper {\n", true},
		{"  object wrapper {", true},
		{"private object wrapper extends App {", true},
		{"object wrapper{", true},
		{"val a = 1\nobject wrapper {\n", true},
		{"object wrapper {}", true},
		{`println("object wrapper {")`, true},
		{"object wrapper", false},
		{"object wrapper\n{", false},
		{"object Wrapper {", false},
		{"object other {", false},
		{"class wrapper {", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWrapperStart([]byte(tt.text)), "%q", tt.text)
	}
}

func TestIsWrapperEnd(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"}", true},
		{"}\n", true},
		{"} // end of wrapper", true},
		{"}}", true},
		{" }", false},
		{"\t}", false},
		{"val m = Map()}", false},
		{"x\n}", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWrapperEnd([]byte(tt.text)), "%q", tt.text)
	}
}

func TestDefaultPatterns(t *testing.T) {
	p := DefaultPatterns()

	assert.True(t, p.Start([]byte("object wrapper {")))
	assert.True(t, p.End([]byte("}")))
}

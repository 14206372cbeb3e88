package sed_test

import (
	"testing"

	"github.com/databrickslabs/sandbox/tally/sed"
	"github.com/stretchr/testify/assert"
)

func TestPipeline(t *testing.T) {
	p := sed.Pipeline{
		sed.Rule(`\bfoo\b`, "bar"),
		sed.Rule(`bar+`, "baz"),
	}
	assert.Equal(t, "baz baz", p.Apply("foo barrr"))
}

func TestWords(t *testing.T) {
	testCases := []struct {
		in  string
		out []string
	}{
		{"Hello, world!", []string{"Hello", "world"}},
		{"don't stop-me now", []string{"don't", "stop-me", "now"}},
		{"'quoted' -- dash", []string{"quoted", "dash"}},
		{"  \t\n", []string{}},
		{"v1.2 and 3", []string{"v1", "2", "and", "3"}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.out, sed.Words.Fields(tc.in), tc.in)
	}
}

func TestLower(t *testing.T) {
	assert.Equal(t, []string{"the", "the", "cat"}, sed.Lower("The THE cat."))
}

package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/databrickslabs/sandbox/tally/fileset"
	"github.com/databrickslabs/sandbox/tally/fixtures"
	"github.com/databrickslabs/sandbox/tally/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func files(t *testing.T, contents map[string]string) fileset.FileSet {
	t.Helper()
	dir := t.TempDir()
	for name, content := range contents {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	fs, err := fileset.RecursiveChildren(dir)
	require.NoError(t, err)
	return fs
}

func TestWords(t *testing.T) {
	ctx := fixtures.Context(t)
	fs := files(t, map[string]string{
		"a.txt": "The cat sat.\nThe dog sat!",
		"b.txt": "the end",
	})

	table, err := scan.Words(ctx, fs, scan.Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, table.Count())
	assert.Equal(t, 2, table.Get("The"))
	assert.Equal(t, 1, table.Get("the"))

	table, err = scan.Words(ctx, fs, scan.Options{Workers: 2, Lowercase: true})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Get("the"))
	max, err := table.Max()
	require.NoError(t, err)
	assert.Equal(t, []string{"the"}, max)
	// a.txt is listed first, so its words come first
	assert.Equal(t, []string{"the", "cat", "sat", "dog", "end"}, table.Items())
}

func TestWordsProgress(t *testing.T) {
	fs := files(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	progress := make(chan string, 2)
	_, err := scan.Words(context.Background(), fs, scan.Options{Progress: progress})
	require.NoError(t, err)
	close(progress)
	var seen []string
	for name := range progress {
		seen = append(seen, name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, seen)
}

func TestLines(t *testing.T) {
	fs := files(t, map[string]string{
		"x.log": "GET /\nGET /\n\nPOST /login",
	})
	table, err := scan.Lines(fixtures.Context(t), fs, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /", "POST /login"}, table.Items())
	assert.Equal(t, []int{2, 1}, table.Frequencies())
}

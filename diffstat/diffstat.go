// Package diffstat tallies unified diffs: how many lines changed per file
// and which words were added or removed.
package diffstat

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/databrickslabs/sandbox/tally/sed"
	"github.com/sourcegraph/go-diff/diff"
)

// generated files are noise in any statistics
var skipSuffixes = []string{"go.sum", "go.work.sum", "package-lock.json"}

type Stats struct {
	// Files holds the number of added plus removed lines per file.
	Files   *counters.Table[string]
	Added   *counters.Table[string]
	Removed *counters.Table[string]
}

type Options struct {
	// Tokenize splits a changed line into words. Defaults to sed.Words.
	Tokenize func(string) []string
}

func Parse(ctx context.Context, raw []byte, opts Options) (*Stats, error) {
	if opts.Tokenize == nil {
		opts.Tokenize = sed.Words.Fields
	}
	fileDiffs, err := diff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	stats := &Stats{
		Files:   counters.New[string](),
		Added:   counters.New[string](),
		Removed: counters.New[string](),
	}
	for _, fd := range fileDiffs {
		name := FileName(fd)
		if skipped(name) {
			logger.Debugf(ctx, "skipping generated file %s", name)
			continue
		}
		changed := 0
		for _, hunk := range fd.Hunks {
			n, err := stats.hunk(hunk.Body, opts.Tokenize)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			changed += n
		}
		if err := stats.Files.AddN(name, changed); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		logger.Debugf(ctx, "%s: %d changed lines in %d hunks", name, changed, len(fd.Hunks))
	}
	return stats, nil
}

func (s *Stats) hunk(body []byte, tokenize func(string) []string) (int, error) {
	changed := 0
	for _, line := range bytes.Split(body, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var target *counters.Table[string]
		switch line[0] {
		case '+':
			target = s.Added
		case '-':
			target = s.Removed
		default:
			continue
		}
		changed++
		if err := target.AddRange(tokenize(string(line[1:]))); err != nil {
			return 0, err
		}
	}
	return changed, nil
}

// FileName is the path a file diff applies to, without the a/ and b/
// prefixes git adds. Deleted files are reported under their old name.
func FileName(fd *diff.FileDiff) string {
	name := fd.NewName
	if name == "/dev/null" || name == "" {
		name = fd.OrigName
	}
	name = strings.TrimPrefix(name, "b/")
	return strings.TrimPrefix(name, "a/")
}

func skipped(name string) bool {
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

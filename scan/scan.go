// Package scan builds frequency tables out of files on disk.
package scan

import (
	"context"
	"fmt"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/databrickslabs/sandbox/tally/fileset"
	"github.com/databrickslabs/sandbox/tally/parallel"
	"github.com/databrickslabs/sandbox/tally/sed"
)

type Options struct {
	Workers   int
	Lowercase bool
	// Progress, when set, receives the relative name of every file before
	// it is read.
	Progress chan<- string
}

func (o Options) tokenizer() func(string) []string {
	if o.Lowercase {
		return sed.Lower
	}
	return sed.Words.Fields
}

// Words counts the words of every file. Files are read concurrently, each
// into its own table, and the tables are merged in file order, so the
// result is deterministic.
func Words(ctx context.Context, files fileset.FileSet, opts Options) (*counters.Table[string], error) {
	tokenize := opts.tokenizer()
	perFile := func(ctx context.Context, file fileset.File) (*counters.Table[string], error) {
		opts.report(ctx, file.Relative)
		table := counters.New[string]()
		err := file.Lines(ctx, func(line string) error {
			return table.AddRange(tokenize(line))
		})
		if err != nil {
			return nil, fmt.Errorf("words: %w", err)
		}
		logger.Debugf(ctx, "%s: %d words, %d distinct", file.Relative, table.Count(), table.Len())
		return table, nil
	}
	merge := func(acc *counters.Table[string], t *counters.Table[string]) (*counters.Table[string], error) {
		return acc, acc.Merge(t)
	}
	return parallel.Fold(ctx, opts.Workers, files, perFile, counters.New[string](), merge)
}

// Lines counts identical lines across all files, which is handy for logs
// and other line-oriented data.
func Lines(ctx context.Context, files fileset.FileSet, opts Options) (*counters.Table[string], error) {
	perFile := func(ctx context.Context, file fileset.File) (*counters.Table[string], error) {
		opts.report(ctx, file.Relative)
		table := counters.New[string]()
		err := file.Lines(ctx, func(line string) error {
			if line != "" {
				table.Add(line)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("lines: %w", err)
		}
		return table, nil
	}
	merge := func(acc *counters.Table[string], t *counters.Table[string]) (*counters.Table[string], error) {
		return acc, acc.Merge(t)
	}
	return parallel.Fold(ctx, opts.Workers, files, perFile, counters.New[string](), merge)
}

func (o Options) report(ctx context.Context, name string) {
	if o.Progress == nil {
		return
	}
	select {
	case <-ctx.Done():
	case o.Progress <- name:
	}
}

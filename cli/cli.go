// Package cli wires the tally command line: every command builds a
// frequency table out of some input and prints its top entries.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/databrickslabs/sandbox/tally/render"
	"github.com/spf13/pflag"
)

type Config struct {
	Workers   int
	Lowercase bool
	Output    string
	Exclude   []string
}

type Root = lite.Root[Config]

func New(ctx context.Context, version string) *Root {
	return lite.New(ctx, lite.Init[Config]{
		Name:       "tally",
		Version:    version,
		Short:      "Frequency tables for words, diffs, commits and logs",
		ConfigPath: "$HOME/.tally",
		EnvPrefix:  "TALLY",
		Bind: func(flags *pflag.FlagSet, cfg *Config) {
			flags.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Files to read in parallel")
			flags.BoolVar(&cfg.Lowercase, "lowercase", false, "Fold words to lower case")
			flags.StringVarP(&cfg.Output, "output", "o", "table", "Output format: table or json")
			flags.StringSliceVar(&cfg.Exclude, "exclude", nil, "Regular expressions of paths to skip")
		},
	}).With(
		wordsCommand(),
		diffCommand(),
		authorsCommand(),
		logCommand(),
		modeCommand(),
		rootsCommand(),
	)
}

// emit prints the top entries of table in the configured format.
func emit[T comparable](root *Root, header string, table *counters.Table[T], top int) error {
	pairs := table.Top(top)
	w := root.OutOrStdout()
	switch root.Config.Output {
	case "json":
		return render.Pairs(w, pairs)
	case "table", "":
		return render.Table(w, header, pairs, table.Count())
	default:
		return fmt.Errorf("unknown output: %s", root.Config.Output)
	}
}

// open returns stdin for "-" and the named file otherwise.
func open(root *Root, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(root.InOrStdin()), nil
	}
	return os.Open(name)
}

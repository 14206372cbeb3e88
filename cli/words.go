package cli

import (
	"context"
	"fmt"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/databrickslabs/sandbox/tally/fileset"
	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/databrickslabs/sandbox/tally/render"
	"github.com/databrickslabs/sandbox/tally/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type wordsRequest struct {
	Top   int
	Min   int
	Max   int
	Lines bool
}

func wordsCommand() *lite.Command[Config, wordsRequest] {
	return &lite.Command[Config, wordsRequest]{
		Name:  "words PATH",
		Short: "Count words in a file or every file of a folder",
		Args:  cobra.ExactArgs(1),
		Flags: func(flags *pflag.FlagSet, req *wordsRequest) {
			flags.IntVar(&req.Top, "top", 20, "Entries to show, 0 for all")
			flags.IntVar(&req.Min, "min", 0, "Drop entries seen fewer times")
			flags.IntVar(&req.Max, "max", 0, "Drop entries seen more times")
			flags.BoolVar(&req.Lines, "lines", false, "Count whole lines instead of words")
		},
		Run: func(ctx context.Context, root *Root, req *wordsRequest, args []string) error {
			if req.Min > 0 && req.Max > 0 {
				err := counters.Between(req.Min, req.Max).Validate()
				if err != nil {
					return fmt.Errorf("--min/--max: %w", err)
				}
			}
			files, err := fileset.Resolve(args[0])
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			files, err = files.Exclude(root.Config.Exclude...)
			if err != nil {
				return fmt.Errorf("exclude: %w", err)
			}
			logger.Debugf(ctx, "scanning %d files", len(files))
			updates, stop := render.Progress(ctx, root.ErrOrStderr())
			opts := scan.Options{
				Workers:   root.Config.Workers,
				Lowercase: root.Config.Lowercase,
				Progress:  updates,
			}
			count := scan.Words
			header := "word"
			if req.Lines {
				count = scan.Lines
				header = "line"
			}
			table, err := count(ctx, files, opts)
			stop()
			if err != nil {
				return err
			}
			err = keepBetween(table, req.Min, req.Max)
			if err != nil {
				return err
			}
			return emit(root, header, table, req.Top)
		},
	}
}

// keepBetween drops entries seen fewer than min or more than max times.
// Zero disables a bound.
func keepBetween[T comparable](table *counters.Table[T], min, max int) error {
	if table.IsEmpty() {
		return nil
	}
	upper := table.MaxFrequency()
	if min > 1 {
		_, err := table.RemoveBetween(1, min-1)
		if err != nil {
			return err
		}
	}
	if max > 0 && max < upper {
		_, err := table.RemoveBetween(max+1, upper)
		if err != nil {
			return err
		}
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/databrickslabs/sandbox/tally/diffstat"
	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/databrickslabs/sandbox/tally/sed"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type diffRequest struct {
	Top int
	By  string
}

func diffCommand() *lite.Command[Config, diffRequest] {
	return &lite.Command[Config, diffRequest]{
		Name:  "diff FILE",
		Short: "Count changed lines per file or changed words of a patch, - for stdin",
		Args:  cobra.ExactArgs(1),
		Flags: func(flags *pflag.FlagSet, req *diffRequest) {
			flags.IntVar(&req.Top, "top", 20, "Entries to show, 0 for all")
			flags.StringVar(&req.By, "by", "files", "What to count: files, added or removed")
		},
		Run: func(ctx context.Context, root *Root, req *diffRequest, args []string) error {
			in, err := open(root, args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}
			var opts diffstat.Options
			if root.Config.Lowercase {
				opts.Tokenize = sed.Lower
			}
			stats, err := diffstat.Parse(ctx, raw, opts)
			if err != nil {
				return err
			}
			var table *counters.Table[string]
			header := "word"
			switch req.By {
			case "files":
				table, header = stats.Files, "file"
			case "added":
				table = stats.Added
			case "removed":
				table = stats.Removed
			default:
				return fmt.Errorf("--by: unknown value: %s", req.By)
			}
			return emit(root, header, table, req.Top)
		},
	}
}

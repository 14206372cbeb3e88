package cli

import (
	"context"
	"fmt"

	"github.com/databrickslabs/sandbox/tally/git"
	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type authorsRequest struct {
	Top int
	By  string
}

func authorsCommand() *lite.Command[Config, authorsRequest] {
	return &lite.Command[Config, authorsRequest]{
		Name:  "authors [DIR]",
		Short: "Count commits per author, churn per file or commits per hour of a git repository",
		Args:  cobra.MaximumNArgs(1),
		Flags: func(flags *pflag.FlagSet, req *authorsRequest) {
			flags.IntVar(&req.Top, "top", 20, "Entries to show, 0 for all")
			flags.StringVar(&req.By, "by", "commits", "What to count: commits, churn or hour")
		},
		Run: func(ctx context.Context, root *Root, req *authorsRequest, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			commits, err := git.History(ctx, dir)
			if err != nil {
				return err
			}
			switch req.By {
			case "commits":
				return emit(root, "author", commits.ByAuthor(), req.Top)
			case "churn":
				return emit(root, "file", commits.Churn(), req.Top)
			case "hour":
				return emit(root, "hour", commits.ByHour(), req.Top)
			default:
				return fmt.Errorf("--by: unknown value: %s", req.By)
			}
		},
	}
}

package cli

import (
	"context"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/accesslog"
	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type logRequest struct {
	Top   int
	Field string
}

func logCommand() *lite.Command[Config, logRequest] {
	return &lite.Command[Config, logRequest]{
		Name:  "log FILE",
		Short: "Count values of a field in a Common Log Format access log, - for stdin",
		Args:  cobra.ExactArgs(1),
		Flags: func(flags *pflag.FlagSet, req *logRequest) {
			flags.IntVar(&req.Top, "top", 20, "Entries to show, 0 for all")
			flags.StringVar(&req.Field, "field", "status", "Field to count: host, user, method, path, status or hour")
		},
		Run: func(ctx context.Context, root *Root, req *logRequest, args []string) error {
			field, err := accesslog.ParseField(req.Field)
			if err != nil {
				return err
			}
			in, err := open(root, args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			summary, err := accesslog.Tally(ctx, in, field)
			if err != nil {
				return err
			}
			if summary.Malformed > 0 {
				logger.Warnf(ctx, "skipped %d malformed lines", summary.Malformed)
			}
			return emit(root, string(field), summary.Table, req.Top)
		},
	}
}

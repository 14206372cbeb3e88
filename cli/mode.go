package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/databrickslabs/sandbox/tally/lite"
	"github.com/databrickslabs/sandbox/tally/render"
	"github.com/databrickslabs/sandbox/tally/stats"
	"github.com/spf13/cobra"
)

type summary struct {
	Mode     []float64 `json:"mode"`
	Median   []float64 `json:"median"`
	Mean     float64   `json:"mean"`
	Variance float64   `json:"variance"`
}

func modeCommand() *lite.Command[Config, struct{}] {
	return &lite.Command[Config, struct{}]{
		Name:  "mode VALUES...",
		Short: "Print the mode, median, mean and variance of numbers",
		Long:  "Negative numbers have to follow --, so that they are not taken for flags.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(ctx context.Context, root *Root, _ *struct{}, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			modes, err := stats.Mode(values)
			if err != nil {
				return err
			}
			s := summary{
				Mode:     modes,
				Median:   stats.MedianOf(values),
				Mean:     stats.Mean(values),
				Variance: stats.Variance(values),
			}
			if root.Config.Output == "json" {
				return render.JSON(root.OutOrStdout(), s)
			}
			return render.Fields(root.OutOrStdout(), [][2]string{
				{"mode", formatFloats(s.Mode)},
				{"median", formatFloats(s.Median)},
				{"mean", formatFloats([]float64{s.Mean})},
				{"variance", formatFloats([]float64{s.Variance})},
			})
		},
	}
}

func rootsCommand() *lite.Command[Config, struct{}] {
	return &lite.Command[Config, struct{}]{
		Name:  "roots A B C",
		Short: "Print the real roots of Ax² + Bx + C = 0",
		Long:  "Negative coefficients have to follow --, so that they are not taken for flags.",
		Args:  cobra.ExactArgs(3),
		Run: func(ctx context.Context, root *Root, _ *struct{}, args []string) error {
			c, err := parseFloats(args)
			if err != nil {
				return err
			}
			roots, err := stats.Quadratic(c[0], c[1], c[2])
			if err != nil {
				return err
			}
			if root.Config.Output == "json" {
				return render.JSON(root.OutOrStdout(), roots)
			}
			_, err = fmt.Fprintln(root.OutOrStdout(), formatFloats(roots))
			return err
		},
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %s", a)
		}
		out = append(out, v)
	}
	return out, nil
}

func formatFloats(values []float64) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(out, " ")
}

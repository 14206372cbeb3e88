package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/fatih/color"
)

const barWidth = 30

// Table writes one row per pair: the item, its frequency, its share of
// total and a bar scaled to the largest frequency in pairs.
func Table[T comparable](w io.Writer, header string, pairs []counters.Pair[T], total int) error {
	// escape codes would count towards cell widths, so the header is
	// aligned plain and made bold afterwards
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCOUNT\tSHARE\t\n", strings.ToUpper(header))
	peak := 0
	for _, p := range pairs {
		if p.Frequency > peak {
			peak = p.Frequency
		}
	}
	for _, p := range pairs {
		share := 0.0
		if total > 0 {
			share = 100 * float64(p.Frequency) / float64(total)
		}
		fmt.Fprintf(tw, "%v\t%d\t%5.1f%%\t%s\n",
			p.Item, p.Frequency, share,
			color.GreenString(bar(p.Frequency, peak)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	first, rest, _ := strings.Cut(buf.String(), "\n")
	_, err := fmt.Fprintf(w, "%s\n%s", color.New(color.Bold).Sprint(first), rest)
	return err
}

func bar(frequency, peak int) string {
	if peak == 0 {
		return ""
	}
	n := frequency * barWidth / peak
	if n == 0 && frequency > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// Fields writes aligned key/value rows with bold keys.
func Fields(w io.Writer, rows [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	bold := color.New(color.Bold)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", bold.Sprint(row[0]), row[1])
	}
	return tw.Flush()
}

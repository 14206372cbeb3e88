package render

import (
	"encoding/json"
	"io"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/fatih/color"
	"github.com/nwidger/jsoncolor"
)

type jsonPair struct {
	Item      any `json:"item"`
	Frequency int `json:"frequency"`
}

// JSON writes v indented, with colors when the terminal supports them.
func JSON(w io.Writer, v any) error {
	var raw []byte
	var err error
	if color.NoColor {
		raw, err = json.MarshalIndent(v, "", "  ")
	} else {
		raw, err = jsoncolor.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

// Pairs writes pairs as a JSON array of item/frequency objects.
func Pairs[T comparable](w io.Writer, pairs []counters.Pair[T]) error {
	out := make([]jsonPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, jsonPair{p.Item, p.Frequency})
	}
	return JSON(w, out)
}

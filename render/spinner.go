package render

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Progress shows a spinner on w with the latest update as its suffix, as
// long as w looks like a terminal. Call stop once the work is done; it
// waits for the spinner to clear its line.
func Progress(ctx context.Context, w io.Writer) (updates chan<- string, stop func()) {
	isTTY := !color.NoColor
	var sp *spinner.Spinner
	if isTTY {
		charset := spinner.CharSets[11]
		sp = spinner.New(charset, 200*time.Millisecond,
			spinner.WithWriter(w),
			spinner.WithColor("green"))
		sp.Start()
	}
	ch := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if isTTY {
			defer sp.Stop()
		}
		for {
			select {
			case <-ctx.Done():
				return
			case x, hasMore := <-ch:
				if !hasMore {
					return
				}
				if isTTY {
					sp.Lock()
					sp.Suffix = " " + x
					sp.Unlock()
				}
			}
		}
	}()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			close(ch)
			<-done
		})
	}
}

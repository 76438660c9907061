package cmd

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress wraps schollz/progressbar with an opt-out (total < 2: no bar,
// single conversions finish before a bar is worth drawing).
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(total int) *progress {
	if total < 2 {
		return &progress{bar: nil}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(250*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
	)
	return &progress{bar: bar}
}

func (p *progress) increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

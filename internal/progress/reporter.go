// Package progress reports export progress to a terminal or a CI log.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives export progress. Update may be called from several
// goroutines as long as calls are serialized by the caller.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a CIReporter under CI and a TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter draws a progress bar captioned with the file being
// written.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Exporting site"),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(message)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter writes plain lines for CI logs. With Every > 1 only every
// Every-th update and the last one are printed.
type CIReporter struct {
	Out   io.Writer
	Every int
	// Now defaults to time.Now.
	Now func() time.Time

	total   int
	started time.Time
}

func (r *CIReporter) Start(total int) {
	r.total = total
	r.started = r.now()
	fmt.Fprintf(r.out(), "Exporting %d files\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	if r.Every > 1 && current%r.Every != 0 && current != r.total {
		return
	}
	fmt.Fprintf(r.out(), "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	elapsed := r.now().Sub(r.started).Round(time.Millisecond)
	fmt.Fprintf(r.out(), "Export complete in %s\n", elapsed)
}

func (r *CIReporter) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *CIReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}

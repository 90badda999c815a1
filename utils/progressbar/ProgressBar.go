// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ProgressBar is a progress bar which may be incremented from many
// goroutines. It is only printed when Display() is called.
type ProgressBar struct {
	out   io.Writer
	width int
	max   int64
	start time.Time

	current atomic.Int64
	mu      sync.Mutex
}

// New returns a new progress bar that is width characters wide,
// reaches 100% after max Increment() calls and prints to out.
func New(out io.Writer, width, max int) *ProgressBar {
	if width < 1 || max < 1 {
		panic(fmt.Sprintf("new: width and max must be positive, got %v "+
			"and %v", width, max))
	}
	return &ProgressBar{out: out, width: width, max: int64(max),
		start: time.Now()}
}

// Increment increments the internal progress counter, saturating at
// the maximum progress
func (p *ProgressBar) Increment() {
	for {
		c := p.current.Load()
		if c >= p.max || p.current.CompareAndSwap(c, c+1) {
			return
		}
	}
}

// Progress returns the fraction of progress made, in [0, 1]
func (p *ProgressBar) Progress() float64 {
	return float64(p.current.Load()) / float64(p.max)
}

// String returns the bar without the elapsed time
func (p *ProgressBar) String() string {
	progress := p.Progress()
	filled := int(progress * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Fprintf(&bar, "| [%.2f%%]", progress*100)
	return bar.String()
}

// Display prints the progress bar over the current terminal line
func (p *ProgressBar) Display() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r\033[K%v elapsed: %v", p,
		time.Since(p.start).Truncate(time.Second))
}

// Close ends the line that the progress bar is printed on
func (p *ProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

package timeutil

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Printer writes prefixed, optionally time-stamped lines.
//
//	[game 0:03] INFO spawned 4 enemies
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
	clock  func() time.Duration
}

type PrinterOption func(*Printer)

// WithElapsed stamps every line with the value returned by elapsed.
func WithElapsed(elapsed func() time.Duration) PrinterOption {
	return func(p *Printer) { p.clock = elapsed }
}

func NewPrinter(w io.Writer, prefix string, opts ...PrinterOption) *Printer {
	if w == nil {
		w = os.Stdout
	}
	p := &Printer{w: w, prefix: prefix}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Print(args ...any) { p.line("INFO", fmt.Sprint(args...)) }

func (p *Printer) Printf(format string, args ...any) { p.line("INFO", fmt.Sprintf(format, args...)) }

func (p *Printer) Warn(args ...any) { p.line("WARN", fmt.Sprint(args...)) }

func (p *Printer) Error(args ...any) { p.line("ERROR", fmt.Sprint(args...)) }

func (p *Printer) line(level, msg string) {
	head := p.prefix
	if p.clock != nil {
		stamp := FormatDuration(p.clock())
		if head != "" {
			head += " " + stamp
		} else {
			head = stamp
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if head != "" {
		fmt.Fprintf(p.w, "[%s] %s %s\n", head, level, msg)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", level, msg)
}

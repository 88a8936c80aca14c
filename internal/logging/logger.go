package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/c2h5oh/datasize"
)

// Logger provides optional verbose logging and lightweight timing helpers.
type Logger struct {
	Writer  io.Writer
	Verbose bool
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	fmt.Fprintf(l.Writer, format+"\n", args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Verbose: "+format, args...)
}

// Warnf is verbose-only as well; warnings here are diagnostics, not
// per-file outcomes.
func (l Logger) Warnf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Warning: "+format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}

// Size renders a byte count for diagnostics, e.g. "1.5 MB".
func Size(n int64) string {
	if n < 0 {
		return "-" + datasize.ByteSize(-n).HR()
	}
	return datasize.ByteSize(n).HR()
}

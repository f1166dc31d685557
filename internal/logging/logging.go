package logging

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger provides CLI output
type Logger struct {
	quiet   bool
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewLogger creates a new logger writing to stdout and stderr
func NewLogger(quiet, verbose bool) *Logger {
	return &Logger{
		quiet:   quiet,
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// Out returns the writer used for normal output
func (l *Logger) Out() io.Writer {
	return l.out
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.quiet {
		fmt.Fprintf(l.out, format+"\n", args...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(l.errOut, "ERROR: "+format+"\n", args...)
}

// Debug logs a debug message when verbose output is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose && !l.quiet {
		fmt.Fprintf(l.out, "DEBUG: "+format+"\n", args...)
	}
}

// PrintSummary prints a summary of the duplicate search
func (l *Logger) PrintSummary(groups, files, redundant int, wastedBytes int64, duration time.Duration) {
	if l.quiet {
		return
	}

	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, "=== Summary ===")
	fmt.Fprintf(l.out, "Duplicate groups: %d\n", groups)
	fmt.Fprintf(l.out, "Duplicate files: %d (%d redundant)\n", files, redundant)
	fmt.Fprintf(l.out, "Reclaimable: %s\n", FormatBytes(wastedBytes))
	fmt.Fprintf(l.out, "Duration: %s\n", duration.Round(time.Millisecond))
}

// FormatBytes formats bytes in human readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

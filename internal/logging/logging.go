// Package logging builds the charm logger used by the command line tools.
package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
	now func() time.Time
}

// Write buffers bytes until a newline is found; every full line is written
// with a timestamp prefix. Partial lines stay buffered.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			// put the partial line back for the next write
			t.buf.WriteString(line)
			break
		}
		ts := t.now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return n, err
		}
	}
	return n, nil
}

// terminalWriter exposes Fd so charm can detect a TTY behind a wrapped writer.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

func (tw *terminalWriter) Fd() uintptr { return tw.fd }

// Options configure New.
type Options struct {
	// Out defaults to os.Stderr.
	Out     io.Writer
	LogFile string
	Level   string
	Verbose bool
	Prefix  string
}

// ParseLevel maps a config string to a level. ok is false for unknown
// values, which map to info.
func ParseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, true
	case "info", "":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	default:
		return log.InfoLevel, false
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing timestamped lines to Out and, when LogFile
// is set, appending to that file as well. The returned closer releases the
// log file. A log file that cannot be opened is reported through the logger
// and otherwise ignored.
func New(o Options) (*log.Logger, io.Closer) {
	out := o.Out
	var fd uintptr
	if out == nil {
		out = os.Stderr
		fd = os.Stderr.Fd()
	}

	var closer io.Closer = nopCloser{}
	var fileErr error
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = io.MultiWriter(out, f)
			closer = f
		} else {
			fileErr = err
		}
	}

	tw := &timestampWriter{w: out, now: time.Now}
	logger := log.NewWithOptions(&terminalWriter{w: tw, fd: fd}, log.Options{Prefix: o.Prefix})

	level, known := ParseLevel(o.Level)
	if o.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	if !known {
		logger.Warn("unknown log_level, defaulting to info", "provided", o.Level)
	}
	if fileErr != nil {
		logger.Warn("log_file could not be opened; logging to stderr only", "path", o.LogFile, "err", fileErr)
	}
	return logger, closer
}

package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the log file used when the config leaves logging.file empty.
const DefaultFilePath = "logs/showroom.log"

// maxBufferedLines bounds the in-memory history shown by the in-game console.
const maxBufferedLines = 512

// Options selects level and sinks for New.
type Options struct {
	Level   string
	File    string
	Console bool
	// Extra receives a copy of every line (tests, remote sinks). Optional.
	Extra io.Writer
}

// Logger is the process logger: a zerolog.Logger plus the Buffer that keeps
// recent lines for the on-screen console.
type Logger struct {
	zerolog.Logger
	buf  *Buffer
	file *os.File
}

// New builds a Logger writing to the optional log file, optional stderr console and the line buffer.
// The file's directory is created if needed; a file that cannot be opened is skipped, not fatal.
func New(opts Options) *Logger {
	buf := NewBuffer(maxBufferedLines)
	writers := []io.Writer{buf}
	l := &Logger{buf: buf}

	if opts.File != "" {
		_ = os.MkdirAll(filepath.Dir(opts.File), 0755)
		if f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			l.file = f
			writers = append(writers, f)
		}
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	if opts.Extra != nil {
		writers = append(writers, opts.Extra)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return l
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Lines returns a copy of the buffered, human-readable log lines (oldest first).
func (l *Logger) Lines() []string {
	return l.buf.Lines()
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Buffer is an io.Writer that keeps the last N log records as formatted text lines.
type Buffer struct {
	mu    sync.Mutex
	lines []string
	limit int
	fmt   zerolog.ConsoleWriter
}

// NewBuffer returns a Buffer holding at most limit lines.
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = maxBufferedLines
	}
	b := &Buffer{limit: limit}
	b.fmt = zerolog.ConsoleWriter{NoColor: true, TimeFormat: time.TimeOnly}
	return b
}

// Write formats one JSON record and stores it. Records that are not valid JSON are stored verbatim.
func (b *Buffer) Write(p []byte) (int, error) {
	var sb strings.Builder
	w := b.fmt
	w.Out = &sb
	if _, err := w.Write(p); err != nil {
		sb.Reset()
		sb.Write(p)
	}
	line := strings.TrimRight(sb.String(), "\n")

	b.mu.Lock()
	b.lines = append(b.lines, line)
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	b.mu.Unlock()
	return len(p), nil
}

// Lines returns a copy of all stored lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

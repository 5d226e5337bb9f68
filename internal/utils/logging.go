// Copyright (c) 2025 @AmarnathCJD

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

type LogLevel int

const (
	TraceLevel LogLevel = iota + 1
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	NoLevel
)

func (l LogLevel) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case NoLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts the level names used in config (trace, debug, info, warn, error, disable).
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "none", "disable", "disabled":
		return NoLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

var (
	colorReset     = "\033[0m"
	colorBold      = "\033[1m"
	colorDim       = "\033[2m"
	colorRed       = "\033[31m"
	colorGreen     = "\033[32m"
	colorYellow    = "\033[33m"
	colorBlue      = "\033[34m"
	colorMagenta   = "\033[35m"
	colorCyan      = "\033[36m"
	colorBrightRed = "\033[91m"
)

type LogFormatter interface {
	Format(entry *LogEntry) string
}

type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   LogLevel       `json:"level"`
	Message string         `json:"message"`
	Prefix  string         `json:"prefix,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Error   error          `json:"error,omitempty"`
}

// Logger is a small leveled logger. With* methods return copies, so a derived logger
// never changes the one it came from.
type Logger struct {
	mu        *sync.Mutex
	level     LogLevel
	prefix    string
	output    io.Writer
	formatter LogFormatter
	fields    map[string]any
}

type LoggerConfig struct {
	Level     LogLevel
	Prefix    string
	Output    io.Writer
	Formatter LogFormatter
	Color     bool
}

func NewLoggerWithConfig(config *LoggerConfig) *Logger {
	if config == nil {
		config = &LoggerConfig{}
	}
	if config.Level == 0 {
		config.Level = InfoLevel
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}
	if config.Formatter == nil {
		config.Formatter = &TextFormatter{NoColor: !config.Color || !isTerminal(config.Output)}
	}

	return &Logger{
		mu:        &sync.Mutex{},
		level:     config.Level,
		prefix:    config.Prefix,
		output:    config.Output,
		formatter: config.Formatter,
		fields:    make(map[string]any),
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = maps.Clone(l.fields)
	return &c
}

func (l *Logger) WithPrefix(prefix string) *Logger {
	c := l.clone()
	c.prefix = prefix
	return c
}

func (l *Logger) WithField(key string, value any) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	c := l.clone()
	maps.Copy(c.fields, fields)
	return c
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err)
}

func (l *Logger) Lev() LogLevel {
	return l.level
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	entry := &LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Prefix:  l.prefix,
		Fields:  maps.Clone(l.fields),
	}
	if err, ok := entry.Fields["error"].(error); ok {
		entry.Error = err
		delete(entry.Fields, "error")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, l.formatter.Format(entry))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (l *Logger) Trace(msg string, args ...any) { l.log(TraceLevel, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(DebugLevel, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(InfoLevel, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(WarnLevel, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(ErrorLevel, msg, args...) }

func (l *Logger) ErrorErr(err error) { l.WithError(err).Error(err.Error()) }

// TextFormatter formats logs as human-readable text
type TextFormatter struct {
	NoColor         bool
	TimestampFormat string
}

func (f *TextFormatter) paint(b *strings.Builder, color, s string) {
	if f.NoColor || color == "" {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

func (f *TextFormatter) Format(entry *LogEntry) string {
	var b strings.Builder

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = "15:04:05.000"
	}
	f.paint(&b, colorDim, entry.Time.Format(timestampFormat))
	b.WriteString(" ")

	levelStr := fmt.Sprintf("%-5s", entry.Level.String())
	f.paint(&b, levelColor(entry.Level)+colorBold, levelStr)
	b.WriteString(" ")

	if entry.Prefix != "" {
		f.paint(&b, colorDim+colorBlue, entry.Prefix)
		b.WriteString(" ")
	}

	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		b.WriteString(" [")
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(k)
			b.WriteString("=")
			f.paint(&b, colorCyan, fmt.Sprintf("%v", entry.Fields[k]))
		}
		b.WriteString("]")
	}

	if entry.Error != nil {
		b.WriteString(" ")
		f.paint(&b, colorBrightRed, "error="+entry.Error.Error())
	}

	b.WriteString("\n")
	return b.String()
}

func levelColor(level LogLevel) string {
	switch level {
	case TraceLevel:
		return colorMagenta
	case DebugLevel:
		return colorBlue
	case InfoLevel:
		return colorGreen
	case WarnLevel:
		return colorYellow
	case ErrorLevel:
		return colorRed
	default:
		return ""
	}
}

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	TimestampFormat string
}

func (f *JSONFormatter) Format(entry *LogEntry) string {
	data := make(map[string]any, len(entry.Fields)+4)
	maps.Copy(data, entry.Fields)

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = time.RFC3339Nano
	}

	data["timestamp"] = entry.Time.Format(timestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Prefix != "" {
		data["prefix"] = entry.Prefix
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	output, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %v"}`+"\n", err)
	}
	return string(output) + "\n"
}

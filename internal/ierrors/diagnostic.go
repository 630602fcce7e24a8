package ierrors

import (
	"fmt"
	"log"
)

// Level classifies the severity of a Diagnostic. Phase (lexing,
// parsing, preprocessing, visiting) is implied by where a Diagnostic
// is pushed from and is not separately modeled as a type; callers that
// care can inspect the message or the File field.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Location is the 1-based, code-point counted source span of a
// Diagnostic or IR node.
type Location struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// SourceLine is the full text of StartLine, carried alongside the
	// numeric span so a renderer can print the offending line with a
	// caret under StartColumn without re-reading the original file.
	SourceLine string
}

// Diagnostic is the structured value pushed into a Sink by every phase
// of the importer.
type Diagnostic struct {
	Level    Level
	Message  string
	File     string
	Location *Location
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("[%s] %s", d.Level, d.Message)
	}
	if d.Location == nil {
		return fmt.Sprintf("[%s] %s: %s", d.Level, d.File, d.Message)
	}
	return fmt.Sprintf("[%s] %s:%d:%d: %s", d.Level, d.File, d.Location.StartLine, d.Location.StartColumn, d.Message)
}

// Sink accumulates Diagnostics for the duration of one Import call. It
// is safe to read after import completes; it is not safe for
// concurrent writes from multiple goroutines (callers that parallelize
// the visitor phase must give each document its own Sink and merge
// afterward, preserving per-document order).
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) push(level Level, file string, loc *Location, format string, args ...interface{}) {
	s.diags = append(s.diags, Diagnostic{
		Level:    level,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Location: loc,
	})
}

// Errorf records an error-level diagnostic.
func (s *Sink) Errorf(file string, loc *Location, format string, args ...interface{}) {
	s.push(Error, file, loc, format, args...)
}

// Warnf records a warning-level diagnostic.
func (s *Sink) Warnf(file string, loc *Location, format string, args ...interface{}) {
	s.push(Warn, file, loc, format, args...)
}

// Infof records an info-level diagnostic.
func (s *Sink) Infof(file string, loc *Location, format string, args ...interface{}) {
	s.push(Info, file, loc, format, args...)
}

// All returns every Diagnostic recorded so far, in the order they were
// pushed.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// HasErrors reports whether any Error-level Diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// Merge appends another Sink's diagnostics onto this one, in order.
// Used to combine per-document sinks after a parallelized visitor
// phase.
func (s *Sink) Merge(other *Sink) {
	s.diags = append(s.diags, other.diags...)
}

// LogSink adapts a Sink to also forward every pushed Diagnostic to a
// standard library *log.Logger, for use at a server or CLI boundary.
type LogSink struct {
	*Sink
	logger *log.Logger
}

// NewLogSink wraps a fresh Sink with forwarding to logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{Sink: NewSink(), logger: logger}
}

// Errorf records an error-level diagnostic and forwards it to the
// wrapped logger.
func (s *LogSink) Errorf(file string, loc *Location, format string, args ...interface{}) {
	s.Sink.Errorf(file, loc, format, args...)
	s.log()
}

// Warnf records a warning-level diagnostic and forwards it to the
// wrapped logger.
func (s *LogSink) Warnf(file string, loc *Location, format string, args ...interface{}) {
	s.Sink.Warnf(file, loc, format, args...)
	s.log()
}

// Infof records an info-level diagnostic and forwards it to the
// wrapped logger.
func (s *LogSink) Infof(file string, loc *Location, format string, args ...interface{}) {
	s.Sink.Infof(file, loc, format, args...)
	s.log()
}

func (s *LogSink) log() {
	if s.logger == nil || len(s.diags) == 0 {
		return
	}
	s.logger.Print(s.diags[len(s.diags)-1].String())
}

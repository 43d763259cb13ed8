package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ETLLogger is the logger shared by the preparation pipeline and the server
type ETLLogger struct {
	logger    zerolog.Logger
	file      *os.File
	isVerbose bool
}

// NewETLLogger writes to stdout and, when logFile is set, appends to that file as well.
// A "%s" in logFile is replaced with the current date.
func NewETLLogger(verbose bool, logFile string) *ETLLogger {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}

	var file *os.File
	var openErr error
	if logFile != "" {
		name := logFile
		if strings.Contains(name, "%s") {
			name = fmt.Sprintf(name, time.Now().Format("2006-01-02"))
		}
		file, openErr = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr == nil {
			writers = append(writers, file)
		}
	}

	l := newETLLogger(zerolog.MultiLevelWriter(writers...), verbose)
	l.file = file
	if openErr != nil {
		l.Error("could not open log file %s, logging to stdout only: %v", logFile, openErr)
	}
	return l
}

// NewETLLoggerWithWriter logs JSON lines to w
func NewETLLoggerWithWriter(w io.Writer, verbose bool) *ETLLogger {
	return newETLLogger(w, verbose)
}

// NopLogger discards everything
func NopLogger() *ETLLogger {
	return &ETLLogger{logger: zerolog.Nop()}
}

func newETLLogger(w io.Writer, verbose bool) *ETLLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &ETLLogger{
		logger:    zerolog.New(w).Level(level).With().Timestamp().Logger(),
		isVerbose: verbose,
	}
}

// With returns a child logger tagged with a component name
func (l *ETLLogger) With(component string) *ETLLogger {
	return &ETLLogger{
		logger:    l.logger.With().Str("component", component).Logger(),
		isVerbose: l.isVerbose,
	}
}

// Close releases the log file, if any
func (l *ETLLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Info logs at info level
func (l *ETLLogger) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

// Warn logs a recoverable problem
func (l *ETLLogger) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

// Error logs at error level
func (l *ETLLogger) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// Debug only logs in verbose mode
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.logger.Debug().Msgf(format, v...)
}

// Fatal logs and exits the process
func (l *ETLLogger) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// LogETLStart marks the beginning of a preparation run
func (l *ETLLogger) LogETLStart(source string) {
	l.logger.Info().Str("source", source).Msg("preparation started")
}

// LogETLComplete reports the outcome of a successful run
func (l *ETLLogger) LogETLComplete(startTime time.Time, records, rows, countries int) {
	l.logger.Info().
		Dur("duration", time.Since(startTime)).
		Int("records", records).
		Int("rows", rows).
		Int("countries", countries).
		Msg("preparation finished")
}

// LogExtractStart marks the beginning of the extract phase
func (l *ETLLogger) LogExtractStart(source string) {
	l.logger.Info().Str("phase", "extract").Str("source", source).Msg("phase started")
}

// LogExtractComplete reports how many raw rows were read
func (l *ETLLogger) LogExtractComplete(records, skipped int, duration time.Duration) {
	l.logger.Info().
		Str("phase", "extract").
		Int("records", records).
		Int("skipped", skipped).
		Dur("duration", duration).
		Msg("phase finished")
}

// LogTransformComplete reports the aggregated table shape
func (l *ETLLogger) LogTransformComplete(rows, zeroSubstitutions int, duration time.Duration) {
	l.logger.Info().
		Str("phase", "transform").
		Int("rows", rows).
		Int("zero_substitutions", zeroSubstitutions).
		Dur("duration", duration).
		Msg("phase finished")
}

// LogLoadComplete reports the dataset indices
func (l *ETLLogger) LogLoadComplete(countries, years int, duration time.Duration) {
	l.logger.Info().
		Str("phase", "load").
		Int("countries", countries).
		Int("years", years).
		Dur("duration", duration).
		Msg("phase finished")
}

// Package logging configures zerolog for configma.
//
// The console follows the -v count. The log file in the state directory
// always records at least debug level, so a run that moved content into a
// backup can be reconstructed afterwards.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls Setup
type Options struct {
	Verbosity int
	// LogFile is opened for appending. Empty disables the file.
	LogFile string
	// Console defaults to stderr.
	Console io.Writer
	NoColor bool
}

// ConsoleLevel maps the -v count to the level shown on the console
func ConsoleLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

var (
	fileMu     sync.Mutex
	logFile    *os.File
	consoleOut io.Writer
)

// Setup installs the global logger, closing any log file a previous call
// opened. A log file that cannot be opened is reported on the console and
// otherwise ignored. Call Close when the process is done logging.
func Setup(opts Options) {
	Close()

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleLevel := ConsoleLevel(opts.Verbosity)

	consoleW := levelFilter{
		w:   zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen, NoColor: opts.NoColor},
		min: consoleLevel,
	}
	writers := []io.Writer{consoleW}
	globalLevel := consoleLevel

	var fileErr error
	if opts.LogFile != "" {
		var file *os.File
		file, fileErr = openLogFile(opts.LogFile)
		if fileErr == nil {
			fileMu.Lock()
			logFile = file
			consoleOut = consoleW
			fileMu.Unlock()
			writers = append(writers, levelFilter{w: file, min: zerolog.DebugLevel})
			if globalLevel > zerolog.DebugLevel {
				globalLevel = zerolog.DebugLevel
			}
		}
	}

	zerolog.SetGlobalLevel(globalLevel)
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.LogFile).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().
		Int("verbosity", opts.Verbosity).
		Str("console_level", consoleLevel.String()).
		Str("log_file", opts.LogFile).
		Msg("Logger initialized")
}

// Close closes the log file and leaves the global logger writing to the
// console only. It is safe to call more than once.
func Close() {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile == nil {
		return
	}
	log.Logger = log.Logger.Output(consoleOut)
	_ = logFile.Close()
	logFile = nil
	consoleOut = nil
}

// OpenLogFile returns the path of the open log file, or "" when none is open
func OpenLogFile() string {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// GetLogger returns a logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogCommand records which command is about to run
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Running command")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// levelFilter drops events below min. zerolog's global level only filters
// for the most verbose writer.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

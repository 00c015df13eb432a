// Package logger keeps an audit log of every run in a rotating logfmt file.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/punchclock/internal/constants"
)

var (
	// Logger is the global logger instance, nil until Init.
	Logger *log.Logger

	path string
)

// Config holds logger configuration
type Config struct {
	// Debug lowers the level to debug and mirrors every line to stderr.
	Debug bool
	// ConfigDir is where the logs directory is created.
	ConfigDir string
}

// Init opens the run log under cfg.ConfigDir/logs and installs the global logger.
func Init(cfg Config) error {
	file, err := openRotating(filepath.Join(cfg.ConfigDir, "logs"))
	if err != nil {
		return err
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          constants.AppName,
		Formatter:       log.LogfmtFormatter,
		Level:           log.InfoLevel,
	}
	var w io.Writer = file
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		w = io.MultiWriter(os.Stderr, file)
	}

	Logger = log.NewWithOptions(w, opts)
	path = file.Filename
	return nil
}

// openRotating keeps about three months of runs, enough to audit past periods.
func openRotating(dir string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    5, // MB
		MaxBackups: 5,
		MaxAge:     90,
		Compress:   true,
	}, nil
}

// Path returns the log file in use, or "" before Init.
func Path() string {
	return path
}

// With returns a child logger carrying the given key/value pairs.
// Before Init it returns a logger that discards everything.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With(keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Package logger is the process-wide structured log. Records go to a rotated
// file under the config directory; stderr is added only with --debug because
// the TUI owns the terminal otherwise.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/smokefree/internal/constants"
)

const (
	rotateMegabytes = 2
	rotateKeep      = 5
	rotateDays      = 90
)

var (
	Logger *log.Logger

	logPath string
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Level is one of debug, info, warn or error. Debug overrides it.
	Level string
}

func (c Config) level() (log.Level, error) {
	switch {
	case c.Debug:
		return log.DebugLevel, nil
	case c.Level == "":
		return log.WarnLevel, nil
	default:
		return log.ParseLevel(c.Level)
	}
}

// Init replaces the global logger. It may be called again, e.g. by tests.
func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	logPath = filepath.Join(dir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    rotateMegabytes,
		MaxBackups: rotateKeep,
		MaxAge:     rotateDays,
		Compress:   true,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

// Path is the active log file, empty before Init
func Path() string {
	return logPath
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal exits with status 1 even when Init was never called
func Fatal(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}

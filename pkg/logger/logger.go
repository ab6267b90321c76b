// Package logger printf-style логгер поверх gommon/log
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} ${short_file}:${line}"

// Logger логгер сервиса
type Logger struct {
	l    *log.Logger
	file *os.File
}

// New создает логгер. Если filePath пуст, пишет в stdout.
func New(filePath string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	var file *os.File
	if filePath != "" {
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	lg := newLogger(out, lvl)
	lg.file = file
	return lg, nil
}

// NewWithWriter создает логгер, пишущий в w (используется в тестах)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return newLogger(w, lvl), nil
}

func newLogger(w io.Writer, lvl log.Lvl) *Logger {
	l := log.New("space-booking")
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetHeader(header)
	return &Logger{l: l}
}

func parseLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

func (lg *Logger) Debug(format string, v ...interface{}) {
	lg.l.Debugf(format, v...)
}

func (lg *Logger) Info(format string, v ...interface{}) {
	lg.l.Infof(format, v...)
}

func (lg *Logger) Warn(format string, v ...interface{}) {
	lg.l.Warnf(format, v...)
}

func (lg *Logger) Error(format string, v ...interface{}) {
	lg.l.Errorf(format, v...)
}

// Fatal логирует и завершает процесс
func (lg *Logger) Fatal(format string, v ...interface{}) {
	lg.l.Errorf(format, v...)
	_ = lg.Close()
	os.Exit(1)
}

// Close закрывает файл логов, если он был открыт
func (lg *Logger) Close() error {
	if lg.file == nil {
		return nil
	}
	err := lg.file.Close()
	lg.file = nil
	return err
}

package logging

import (
	"log"

	"github.com/natefinch/lumberjack"
)

type stdLogger struct {
	*lumberjack.Logger
}

var logger stdLogger

// Config selects where log messages go.
type Config struct {
	Logfile string `yaml:"logfile" toml:"logfile"`
	MaxSize int    `yaml:"max_log_size" toml:"max_log_size"`
	MaxAge  int    `yaml:"max_log_age" toml:"max_log_age"`
	Level   string `yaml:"level" toml:"level"`
}

// SetLogger applies the level and, when a log file is named, sends log
// messages to a rotating file instead of stderr.
func (c *Config) SetLogger() {
	if c == nil {
		return
	}
	if m, ok := ParseMode(c.Level); ok {
		SetLogMode(m)
	} else {
		Warningf("unknown log level %q, using info", c.Level)
		SetLogMode(InfoMode)
	}
	if c.Logfile == "" {
		return
	}
	l := &lumberjack.Logger{
		Filename: c.Logfile,
		MaxSize:  c.MaxSize, // megabytes
		MaxAge:   c.MaxAge,  // days
	}
	log.SetOutput(l)
	logger = stdLogger{l}
	Infof("sending log messages to %s", c.Logfile)
}

func (slog stdLogger) Debugf(format string, args ...interface{}) {
	log.Printf(" DEBUG "+format, args...)
}

func (slog stdLogger) Infof(format string, args ...interface{}) {
	log.Printf(" INFO "+format, args...)
}

func (slog stdLogger) Warningf(format string, args ...interface{}) {
	log.Printf(" WARNING "+format, args...)
}

func (slog stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf(" ERROR "+format, args...)
}

func (slog stdLogger) Criticalf(format string, args ...interface{}) {
	log.Printf(" CRITICAL "+format, args...)
}

func (slog stdLogger) Shutdown() {
	if slog.Logger != nil {
		slog.Close()
	}
}

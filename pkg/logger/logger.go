package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSize = 10
	maxBack = 5
	maxAge  = 30
)

type Options struct {
	// Level is a zerolog level name, "warn" when empty.
	Level string
	// FilePath adds a rotating log file when set.
	FilePath string
	// Console receives human readable output. Stdout is reserved for the
	// command result, so this is normally stderr.
	Console *os.File
}

func NewLogger(serviceName string, opts Options) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(console.Fd()) && !isatty.IsCygwinTerminal(console.Fd()),
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	if opts.FilePath != "" {
		fileRotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    maxSize, // megabytes before rotation
			MaxBackups: maxBack,
			MaxAge:     maxAge, // days
			Compress:   true,
		}
		writers = append(writers, fileRotator)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger().
		Level(level)

	logger.Debug().
		Str("logsFilePath", opts.FilePath).
		Str("serviceName", serviceName).
		Msg("Logger initialized")

	return logger, nil
}

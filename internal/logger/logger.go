// internal/logger/logger.go
//
// Structured logger (Zap + Lumberjack).
//
// Context
// -------
// The service writes lifecycle and error events as JSON.  When a log
// directory is configured, events go to one file per day under
// `<dir>/YYYY-MM-DD.log`, rotated, compressed, and pruned by Lumberjack.
// When running in an interactive TTY, or when no directory is configured
// (App Engine collects stdout), the same events are written to stdout.
//
// Usage
// -----
//
//	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Dir: cfg.Log.Dir, TTY: tty})
//	if err != nil { … }
//	log.Infow("secret loaded", "secret", name)
//
// Notes
// -----
// • Zap core uses ISO-8601 timestamps and lowercase levels.
// • Level names follow the operator vocabulary: DEBUG, INFO, WARNING,
//   ERROR, CRITICAL.  Unknown names fall back to INFO.
// • Oxford commas, two spaces after periods.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects sinks and verbosity.
type Options struct {
	Level string    // LOG_LEVEL value
	Dir   string    // rotating file sink; empty disables it
	TTY   bool      // stdout is a terminal: colorized console output
	Out   io.Writer // stdout override for tests; nil uses os.Stdout
}

// ParseLevel maps an operator level name to a zap level.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.DebugLevel
	case "WARNING", "WARN":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	case "CRITICAL", "FATAL":
		return zap.DPanicLevel
	default:
		return zap.InfoLevel
	}
}

// New returns a *zap.SugaredLogger built from opts and installs it as the
// process-wide default via zap.ReplaceGlobals.
func New(opts Options) (*zap.SugaredLogger, error) {
	level := ParseLevel(opts.Level)

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var (
		cores    []zapcore.Core
		errorOut zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
	)

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, err
		}
		fileSink := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, time.Now().Format("2006-01-02")+".log"),
			MaxSize:    50, // MB
			MaxBackups: 7,  // keep last seven files
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(fileSink),
			level,
		))
		errorOut = zapcore.AddSync(fileSink)
	}

	if opts.TTY || opts.Dir == "" {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		enc := zapcore.NewJSONEncoder(encCfg)
		if opts.TTY {
			consoleCfg := encCfg
			consoleCfg.EncodeLevel = zapcore.LowercaseColorLevelEncoder
			enc = zapcore.NewConsoleEncoder(consoleCfg)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(out), level))
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(errorOut),
	).Sugar()

	// Make this the global logger so zap.S() works everywhere after startup.
	zap.ReplaceGlobals(z.Desugar())

	z.Debugw("logger online", "level", level.String(), "file", opts.Dir != "", "tty", opts.TTY)
	return z, nil
}

/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"io"
	"os"
	"sync"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is used to provide dependencies to a Logging instance.
type Config struct {
	// LogSpec determines the default level that is enabled for loggers. It
	// must parse as a zapcore level ("debug", "info", "warn", "error"). An
	// empty spec enables INFO.
	LogSpec string

	// Writer is the sink for encoded and formatted log records. When nil,
	// os.Stderr is used.
	Writer io.Writer
}

// Logging maintains the state associated with the licensing logging system.
// Records are encoded as logfmt for console consumption.
type Logging struct {
	mutex  sync.RWMutex
	level  zap.AtomicLevel
	writer zapcore.WriteSyncer
}

// New creates a new logging system and initializes it with the provided
// configuration.
func New(c Config) (*Logging, error) {
	l := &Logging{level: zap.NewAtomicLevel()}
	if err := l.Apply(c); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply applies the provided configuration to the logging system.
func (l *Logging) Apply(c Config) error {
	if err := l.ActivateSpec(c.LogSpec); err != nil {
		return err
	}

	w := c.Writer
	if w == nil {
		w = os.Stderr
	}
	l.SetWriter(w)
	return nil
}

// ActivateSpec sets the enabled log level from a level spec string. An empty
// spec activates INFO.
func (l *Logging) ActivateSpec(spec string) error {
	if spec == "" {
		l.level.SetLevel(zapcore.InfoLevel)
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.Set(spec); err != nil {
		return err
	}
	l.level.SetLevel(lvl)
	return nil
}

// SetWriter controls which writer formatted log records are written to.
func (l *Logging) SetWriter(w io.Writer) {
	var sw zapcore.WriteSyncer
	switch t := w.(type) {
	case *os.File:
		sw = zapcore.Lock(t)
	case zapcore.WriteSyncer:
		sw = t
	default:
		sw = zapcore.AddSync(w)
	}

	l.mutex.Lock()
	l.writer = sw
	l.mutex.Unlock()
}

// ZapLogger instantiates a new zap.Logger with the specified name.
func (l *Logging) ZapLogger(name string) *zap.Logger {
	l.mutex.RLock()
	core := zapcore.NewCore(
		zaplogfmt.NewEncoder(encoderConfig()),
		l.writer,
		l.level,
	)
	l.mutex.RUnlock()

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named(name)
}

// Logger instantiates a new Logger with the specified name. The name is used
// to locate the logger in emitted records.
func (l *Logging) Logger(name string) *Logger {
	return NewLogger(l.ZapLogger(name))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "name",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

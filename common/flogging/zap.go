/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// A Logger is an adapter around a zap.SugaredLogger that provides structured
// logging capabilities while keeping the printf-style entry points the
// licensing packages use.
//
// Methods without a formatting suffix (f or w) build the log entry message
// with fmt.Sprintln semantics so that arguments are separated by spaces.
type Logger struct{ s *zap.SugaredLogger }

// NewLogger creates a Logger that delegates to the zap.SugaredLogger.
func NewLogger(l *zap.Logger, options ...zap.Option) *Logger {
	return &Logger{
		s: l.WithOptions(append(options, zap.AddCallerSkip(1))...).Sugar(),
	}
}

func (l *Logger) Debug(args ...interface{})                   { l.s.Debugf(formatArgs(args)) }
func (l *Logger) Debugf(template string, args ...interface{}) { l.s.Debugf(template, args...) }
func (l *Logger) Debugw(msg string, kvPairs ...interface{})   { l.s.Debugw(msg, kvPairs...) }
func (l *Logger) Info(args ...interface{})                    { l.s.Infof(formatArgs(args)) }
func (l *Logger) Infof(template string, args ...interface{})  { l.s.Infof(template, args...) }
func (l *Logger) Infow(msg string, kvPairs ...interface{})    { l.s.Infow(msg, kvPairs...) }
func (l *Logger) Warn(args ...interface{})                    { l.s.Warnf(formatArgs(args)) }
func (l *Logger) Warnf(template string, args ...interface{})  { l.s.Warnf(template, args...) }
func (l *Logger) Warnw(msg string, kvPairs ...interface{})    { l.s.Warnw(msg, kvPairs...) }
func (l *Logger) Error(args ...interface{})                   { l.s.Errorf(formatArgs(args)) }
func (l *Logger) Errorf(template string, args ...interface{}) { l.s.Errorf(template, args...) }
func (l *Logger) Errorw(msg string, kvPairs ...interface{})   { l.s.Errorw(msg, kvPairs...) }
func (l *Logger) Panic(args ...interface{})                   { l.s.Panicf(formatArgs(args)) }
func (l *Logger) Panicf(template string, args ...interface{}) { l.s.Panicf(template, args...) }
func (l *Logger) Fatal(args ...interface{})                   { l.s.Fatalf(formatArgs(args)) }
func (l *Logger) Fatalf(template string, args ...interface{}) { l.s.Fatalf(template, args...) }

func (l *Logger) Named(name string) *Logger { return &Logger{s: l.s.Named(name)} }
func (l *Logger) Sync() error               { return l.s.Sync() }
func (l *Logger) Zap() *zap.Logger          { return l.s.Desugar() }

func formatArgs(args []interface{}) string { return strings.TrimSuffix(fmt.Sprintln(args...), "\n") }

/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"io"
	"os"
)

const specEnvKey = "LICENSING_LOGGING_SPEC"

var Global *Logging

func init() {
	logging, err := New(Config{LogSpec: os.Getenv(specEnvKey)})
	if err != nil {
		panic(err)
	}
	Global = logging
}

// Init initializes the global logging system with the provided configuration.
// Loggers created before Init keep the writer they were created with; the
// level set by Init applies to them as well.
func Init(config Config) {
	if err := Global.Apply(config); err != nil {
		panic(err)
	}
}

// MustGetLogger creates a logger with the specified name. It does not panic
// itself: an invalid level spec in the environment already panics in init.
func MustGetLogger(loggerName string) *Logger {
	return Global.Logger(loggerName)
}

// ActivateSpec activates the level spec on the global logging system. It
// panics for an invalid spec.
func ActivateSpec(spec string) {
	if err := Global.ActivateSpec(spec); err != nil {
		panic(err)
	}
}

// SetWriter redirects the global logging output. The previous writer is not
// restored.
func SetWriter(w io.Writer) {
	Global.SetWriter(w)
}

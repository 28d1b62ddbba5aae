/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3divi/nuitrack-licensing/common/flogging"
)

func TestNew(t *testing.T) {
	logging, err := flogging.New(flogging.Config{})
	require.NoError(t, err)
	require.NotNil(t, logging)

	_, err = flogging.New(flogging.Config{LogSpec: "::"})
	require.Error(t, err)
}

func TestLoggerWritesToConfiguredWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{LogSpec: "debug", Writer: buf})
	require.NoError(t, err)

	logger := logging.Logger("test")
	logger.Infof("certificate = %s", "CAFE")
	require.Contains(t, buf.String(), "certificate = CAFE")
	require.Contains(t, buf.String(), "test")

	logger.Debugw("issued", "device", "XYZ")
	require.Contains(t, buf.String(), "XYZ")
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{LogSpec: "warn", Writer: buf})
	require.NoError(t, err)

	logger := logging.Logger("filter")
	logger.Info("suppressed")
	require.Empty(t, buf.String())

	logger.Warn("surfaced")
	require.Contains(t, buf.String(), "surfaced")
}

func TestMustGetLogger(t *testing.T) {
	require.NotNil(t, flogging.MustGetLogger("licensing"))
}

func TestNamed(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{Writer: buf})
	require.NoError(t, err)

	logging.Logger("parent").Named("child").Warn("hello")
	require.Contains(t, buf.String(), "parent.child")
}

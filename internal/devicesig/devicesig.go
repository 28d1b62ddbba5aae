/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package devicesig acquires the device-signature string that certificates
// are bound to. The hardware-dongle path lives outside this tool.
package devicesig

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// FromGenerator runs the external signature generator binary (the Android
// workflow ships one) and returns its trimmed standard output.
func FromGenerator(path string) (string, error) {
	out, err := exec.Command(path).Output()
	if err != nil {
		return "", errors.Wrapf(err, "signature generator %s failed", path)
	}
	signature := strings.TrimSpace(string(out))
	if signature == "" {
		return "", errors.Errorf("signature generator %s produced no signature", path)
	}
	return signature, nil
}

var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// Linux derives a device signature from the host machine identity.
func Linux() (string, error) {
	for _, path := range machineIDPaths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	}
	return "", errors.New("no machine identity source available")
}

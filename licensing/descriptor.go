/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package licensing

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/common/flogging"
)

var logger = flogging.MustGetLogger("licensing")

// LicenseField is the descriptor field that carries the certificate.
const LicenseField = "NuitrackLicense"

// WriteCertificate stores the certificate into the license descriptor at
// path. A descriptor that does not exist or cannot be parsed is rewritten
// from scratch; other fields of a readable descriptor are preserved.
func WriteCertificate(path, certificate string) error {
	descriptor := map[string]interface{}{}

	raw, err := os.ReadFile(path)
	if err == nil {
		err = json.Unmarshal(raw, &descriptor)
	}
	if err != nil {
		logger.Warnf("Error reading license file %s: %s", path, err)
		logger.Warnf("Rewriting it...")
		descriptor = map[string]interface{}{}
	}

	descriptor[LicenseField] = certificate

	out, err := json.MarshalIndent(descriptor, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "failed encoding license descriptor for %s", path)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "cannot write license to %s", path)
	}
	return nil
}

// ReadCertificate loads the certificate from the license descriptor at path.
func ReadCertificate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read license file %s", path)
	}

	descriptor := map[string]interface{}{}
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return "", errors.Wrapf(err, "license file %s is not valid JSON", path)
	}

	certificate, ok := descriptor[LicenseField].(string)
	if !ok {
		return "", errors.Errorf("license file %s carries no %s field", path, LicenseField)
	}
	return certificate, nil
}

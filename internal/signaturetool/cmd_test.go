/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signaturetool

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
	"github.com/3divi/nuitrack-licensing/licensing"
)

func writeKeyFiles(t *testing.T, dir string) (privateKeyFile, publicKeyFile string, kp sw.KeyPair) {
	t.Helper()
	kp, err := sw.GenerateKeyPairWith(sw.NewSeededNonceSource(77))
	require.NoError(t, err)

	privateKeyFile = filepath.Join(dir, "nuitrack_private.key")
	publicKeyFile = filepath.Join(dir, "nuitrack_public.key")
	require.NoError(t, os.WriteFile(privateKeyFile, []byte(kp.PrivateKey+"\n"), 0o600))
	require.NoError(t, os.WriteFile(publicKeyFile, []byte(kp.PublicKey+"\n"), 0o600))
	return privateKeyFile, publicKeyFile, kp
}

func execute(t *testing.T, args ...string) (stderr string, err error) {
	t.Helper()
	cmd := Cmd()
	buf := &bytes.Buffer{}
	cmd.SetErr(buf)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return buf.String(), err
}

func TestSignWritesLicenseFile(t *testing.T) {
	dir := t.TempDir()
	privateKeyFile, publicKeyFile, kp := writeKeyFiles(t, dir)
	licenseFile := filepath.Join(dir, "license.json")

	stderr, err := execute(t,
		"-s", "XYZ",
		"-k", privateKeyFile,
		"-n", licenseFile,
		"--public-key", publicKeyFile,
	)
	require.NoError(t, err)
	require.Contains(t, stderr, "Device signature: XYZ")
	require.Contains(t, stderr, "Certificate saving status: OK")

	certificate, err := licensing.ReadCertificate(licenseFile)
	require.NoError(t, err)
	require.Len(t, certificate, 128)

	issuer, err := licensing.NewIssuer()
	require.NoError(t, err)
	require.NoError(t, issuer.Validate("XYZ", certificate, kp.PublicKey))
}

func TestVerifyModeAcceptsFreshCertificate(t *testing.T) {
	dir := t.TempDir()
	privateKeyFile, publicKeyFile, _ := writeKeyFiles(t, dir)
	licenseFile := filepath.Join(dir, "license.json")

	_, err := execute(t, "-s", "XYZ", "-k", privateKeyFile, "-n", licenseFile)
	require.NoError(t, err)

	certificate, err := licensing.ReadCertificate(licenseFile)
	require.NoError(t, err)

	stderr, err := execute(t,
		"-v",
		"-s", "XYZ",
		"-c", certificate,
		"--public-key", publicKeyFile,
	)
	require.NoError(t, err)
	require.Contains(t, stderr, "Verify certificate: OK")
}

func TestVerifyModeRejectsWrongSignature(t *testing.T) {
	dir := t.TempDir()
	privateKeyFile, publicKeyFile, _ := writeKeyFiles(t, dir)
	licenseFile := filepath.Join(dir, "license.json")

	_, err := execute(t, "-s", "XYZ", "-k", privateKeyFile, "-n", licenseFile)
	require.NoError(t, err)

	certificate, err := licensing.ReadCertificate(licenseFile)
	require.NoError(t, err)

	stderr, err := execute(t,
		"-v",
		"-s", "OTHER-DEVICE",
		"-c", certificate,
		"--public-key", publicKeyFile,
	)
	require.Error(t, err)
	require.Contains(t, stderr, "Verify certificate: failed")
}

func TestVerifyModeRequiresArguments(t *testing.T) {
	dir := t.TempDir()
	_, publicKeyFile, _ := writeKeyFiles(t, dir)

	_, err := execute(t, "-v", "--public-key", publicKeyFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Specify signature")

	_, err = execute(t, "-v", "-s", "XYZ", "--public-key", publicKeyFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Specify certificate")

	_, err = execute(t, "-v", "-s", "XYZ", "-c", "00")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Specify public key")
}

func TestSignRequiresPrivateKeyAndLicenseFile(t *testing.T) {
	_, err := execute(t, "-s", "XYZ")
	require.Error(t, err)
}

func TestSignReportsUnreadableKeyFile(t *testing.T) {
	dir := t.TempDir()
	licenseFile := filepath.Join(dir, "license.json")

	_, err := execute(t,
		"-s", "XYZ",
		"-k", filepath.Join(dir, "missing.key"),
		"-n", licenseFile,
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't read private key file")
}

func TestSignRewritesCorruptLicenseFile(t *testing.T) {
	dir := t.TempDir()
	privateKeyFile, _, kp := writeKeyFiles(t, dir)
	licenseFile := filepath.Join(dir, "license.json")
	require.NoError(t, os.WriteFile(licenseFile, []byte("garbage"), 0o644))

	_, err := execute(t, "-s", "XYZ", "-k", privateKeyFile, "-n", licenseFile)
	require.NoError(t, err)

	certificate, err := licensing.ReadCertificate(licenseFile)
	require.NoError(t, err)

	issuer, err := licensing.NewIssuer()
	require.NoError(t, err)
	require.NoError(t, issuer.Validate("XYZ", certificate, kp.PublicKey))
}

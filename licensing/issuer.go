/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package licensing

import (
	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
)

// Issuer signs device signatures into certificates and checks them, backed
// by the software crypto service provider.
type Issuer struct {
	csp gostcsp.CSP
}

// NewIssuer returns an issuer with the default (compatibility-mode) nonce
// source.
func NewIssuer() (*Issuer, error) {
	csp, err := sw.New()
	if err != nil {
		return nil, errors.WithMessage(err, "failed instantiating crypto provider")
	}
	return &Issuer{csp: csp}, nil
}

// NewIssuerWith returns an issuer whose signing nonces come from the given
// source factory. Intended for tests and reproducible runs.
func NewIssuerWith(nonces func() sw.NonceSource) (*Issuer, error) {
	csp, err := sw.NewWith(nonces)
	if err != nil {
		return nil, errors.WithMessage(err, "failed instantiating crypto provider")
	}
	return &Issuer{csp: csp}, nil
}

// Certificate signs the device signature with the private key and returns
// the 128-hex-character certificate.
func (i *Issuer) Certificate(deviceSignature, privateKeyHex string) (string, error) {
	k, err := i.csp.KeyImport(privateKeyHex, &gostcsp.GOST3410PrivateKeyImportOpts{})
	if err != nil {
		return "", err
	}
	signature, err := i.csp.Sign(k, []byte(deviceSignature), &gostcsp.GOST3410SignerOpts{})
	if err != nil {
		return "", err
	}
	return string(signature), nil
}

// Check verifies a certificate against the device signature and the public
// key. A malformed certificate or key is an error; an honest mismatch is
// (false, nil).
func (i *Issuer) Check(deviceSignature, certificate, publicKeyHex string) (bool, error) {
	k, err := i.csp.KeyImport(publicKeyHex, &gostcsp.GOST3410PublicKeyImportOpts{})
	if err != nil {
		return false, err
	}
	return i.csp.Verify(k, []byte(certificate), []byte(deviceSignature), &gostcsp.GOST3410SignerOpts{})
}

// Validate is Check folded into the error domain for callers that treat a
// mismatch as terminal.
func (i *Issuer) Validate(deviceSignature, certificate, publicKeyHex string) error {
	ok, err := i.Check(deviceSignature, certificate, publicKeyHex)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(gostcsp.ErrVerifyFailed, "certificate does not match device signature")
	}
	return nil
}

// Issue signs the device signature and persists the certificate into the
// license descriptor at licensePath. When a public key is supplied the
// fresh certificate is round-trip verified first; a failed round-trip is
// logged but, matching the original tool, does not block persistence.
func (i *Issuer) Issue(licensePath, deviceSignature, privateKeyHex, publicKeyHex string) (string, error) {
	certificate, err := i.Certificate(deviceSignature, privateKeyHex)
	if err != nil {
		return "", err
	}

	if publicKeyHex != "" {
		ok, err := i.Check(deviceSignature, certificate, publicKeyHex)
		switch {
		case err != nil:
			logger.Warnf("Verify certificate: %s", err)
		case ok:
			logger.Infof("Verify certificate: OK")
		default:
			logger.Warnf("Verify certificate: failed")
		}
	}

	if err := WriteCertificate(licensePath, certificate); err != nil {
		return "", err
	}
	return certificate, nil
}

/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
)

// Base64Encode encodes b with the standard RFC 4648 alphabet and padding.
func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64Decode decodes s with the standard alphabet. Whitespace is ignored
// and absent padding is tolerated, so payloads that crossed line-wrapping
// transports still decode.
func Base64Decode(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimRight(cleaned, "=")

	b, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, errors.Wrap(gostcsp.ErrIntegrityFailure, err.Error())
	}
	return b, nil
}

// EncodePayload encrypts plaintext into a 3DES frame and wraps it in base64
// for transport.
func EncodePayload(ks *sw.TripleDESKeyset, plaintext []byte) (string, error) {
	ciphertext, err := ks.EncryptFrame(plaintext)
	if err != nil {
		return "", err
	}
	return Base64Encode(ciphertext), nil
}

// DecodePayload inverts EncodePayload.
func DecodePayload(ks *sw.TripleDESKeyset, payload string) ([]byte, error) {
	ciphertext, err := Base64Decode(payload)
	if err != nil {
		return nil, err
	}
	return ks.DecryptFrame(ciphertext)
}

/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3divi/nuitrack-licensing/gostcsp"
	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
)

const testKeyset = "00112233445566778899AABBCCDDEEFFFEDCBA98765432100123456789ABCDEF"

func TestBase64RoundTrip(t *testing.T) {
	t.Parallel()

	r := mrand.New(mrand.NewSource(31))
	for size := 0; size <= 64; size++ {
		b := make([]byte, size)
		_, err := r.Read(b)
		require.NoError(t, err)

		decoded, err := Base64Decode(Base64Encode(b))
		require.NoError(t, err)
		require.Equal(t, b, decoded)
	}
}

func TestBase64DecodeToleratesWhitespaceAndMissingPadding(t *testing.T) {
	t.Parallel()

	// "any carnal pleasure" split over lines, padding stripped.
	decoded, err := Base64Decode("YW55IGNhcm5h\nbCBwbGVhc3Vy\r\n ZQ")
	require.NoError(t, err)
	require.Equal(t, "any carnal pleasure", string(decoded))

	decoded, err = Base64Decode("c2FsdA==")
	require.NoError(t, err)
	require.Equal(t, "salt", string(decoded))
}

func TestBase64DecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Base64Decode("!!not base64!!")
	require.ErrorIs(t, err, gostcsp.ErrIntegrityFailure)
}

func TestPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	ks, err := sw.ParseTripleDESKeyset(testKeyset)
	require.NoError(t, err)

	plaintext := []byte(`{"status":"ok","salt":1}`)
	payload, err := EncodePayload(ks, plaintext)
	require.NoError(t, err)

	decoded, err := DecodePayload(ks, payload)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}

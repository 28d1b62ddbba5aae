/*
Copyright 3DiVi Inc. All Rights Reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

		 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sw

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(100))
	require.NoError(t, err)
	require.Len(t, kp.PrivateKey, 64)
	require.Len(t, kp.PublicKey, 128)

	message := "device:ABCDEF"
	signature, err := SignMessageWith(message, kp.PrivateKey, NewSeededNonceSource(101))
	require.NoError(t, err)

	valid, err := CheckSign(message, signature, kp.PublicKey)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(200))
	require.NoError(t, err)

	message := "device:ABCDEF"
	signature, err := SignMessageWith(message, kp.PrivateKey, NewSeededNonceSource(201))
	require.NoError(t, err)

	// Flip one hex nibble of r.
	tampered := []byte(signature)
	pos := 100
	if tampered[pos] == '0' {
		tampered[pos] = '1'
	} else {
		tampered[pos] = '0'
	}

	valid, err := CheckSign(message, string(tampered), kp.PublicKey)
	if err != nil {
		// The flip may push r out of [1, q), which is rejected as a
		// malformed signature rather than a mismatch.
		require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)
		return
	}
	require.False(t, valid)
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(300))
	require.NoError(t, err)

	signature, err := SignMessageWith("device:ABCDEF", kp.PrivateKey, NewSeededNonceSource(301))
	require.NoError(t, err)

	valid, err := CheckSign("device:FEDCBA", signature, kp.PublicKey)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSignatureWireFormat(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(400))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		signature, err := SignMessageWith("wire format", kp.PrivateKey, NewSeededNonceSource(int64(500+i)))
		require.NoError(t, err)
		require.Len(t, signature, 128)
		require.Equal(t, strings.ToUpper(signature), signature)

		s, ok := new(big.Int).SetString(signature[:64], 16)
		require.True(t, ok)
		r, ok := new(big.Int).SetString(signature[64:], 16)
		require.True(t, ok)
		require.True(t, s.Cmp(curveQ) < 0)
		require.True(t, r.Cmp(curveQ) < 0)
	}
}

func TestSignatureIsCaseInsensitiveOnVerify(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(600))
	require.NoError(t, err)

	signature, err := SignMessageWith("case", kp.PrivateKey, NewSeededNonceSource(601))
	require.NoError(t, err)

	valid, err := CheckSign("case", strings.ToLower(signature), kp.PublicKey)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestSignRejectsMalformedPrivateKey(t *testing.T) {
	t.Parallel()

	_, err := SignMessage("msg", "too-short")
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)

	_, err = SignMessage("msg", strings.Repeat("Z", 64))
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)
}

func TestCheckSignRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(700))
	require.NoError(t, err)

	_, err = CheckSign("msg", "deadbeef", kp.PublicKey)
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)

	zero := strings.Repeat("0", 64)
	_, err = CheckSign("msg", zero+zero, kp.PublicKey)
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)

	signature, err := SignMessageWith("msg", kp.PrivateKey, NewSeededNonceSource(701))
	require.NoError(t, err)
	_, err = CheckSign("msg", signature, "abc")
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)
}

func TestGenerateKeyPairIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	kp1, err := GenerateKeyPairWith(NewSeededNonceSource(42))
	require.NoError(t, err)
	kp2, err := GenerateKeyPairWith(NewSeededNonceSource(42))
	require.NoError(t, err)
	require.Equal(t, kp1, kp2)

	kp3, err := GenerateKeyPairWith(NewSeededNonceSource(43))
	require.NoError(t, err)
	require.NotEqual(t, kp1.PrivateKey, kp3.PrivateKey)
}

func TestPublicKeyMatchesPrivateScalar(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPairWith(NewSeededNonceSource(800))
	require.NoError(t, err)

	d, ok := new(big.Int).SetString(kp.PrivateKey, 16)
	require.True(t, ok)
	q := basePoint().scalarMul(d)
	require.True(t, q.onCurve(curveB))

	qx, qy, err := parsePublicKey(kp.PublicKey)
	require.NoError(t, err)
	require.Zero(t, q.x.Cmp(qx))
	require.Zero(t, q.y.Cmp(qy))
}

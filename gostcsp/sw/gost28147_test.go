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
	"bytes"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, r *mrand.Rand, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := r.Read(b)
	require.NoError(t, err)
	return b
}

func TestECBRoundTrip(t *testing.T) {
	t.Parallel()

	r := mrand.New(mrand.NewSource(1))
	for i := 0; i < 64; i++ {
		key := randomBytes(t, r, gost28147KeySize)
		plaintext := randomBytes(t, r, gost28147BlockSize)

		c, err := newGost28147(key, nil, true)
		require.NoError(t, err)

		ciphertext := make([]byte, gost28147BlockSize)
		decrypted := make([]byte, gost28147BlockSize)
		c.encryptBlock(ciphertext, plaintext)
		c.decryptBlock(decrypted, ciphertext)

		require.Equal(t, plaintext, decrypted)
		require.NotEqual(t, plaintext, ciphertext)
	}
}

func TestECBPreShiftEquivalence(t *testing.T) {
	t.Parallel()

	r := mrand.New(mrand.NewSource(2))
	key := randomBytes(t, r, gost28147KeySize)

	fast, err := newGost28147(key, nil, true)
	require.NoError(t, err)
	plain, err := newGost28147(key, nil, false)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		src := randomBytes(t, r, gost28147BlockSize)
		a := make([]byte, gost28147BlockSize)
		b := make([]byte, gost28147BlockSize)
		fast.encryptBlock(a, src)
		plain.encryptBlock(b, src)
		require.Equal(t, a, b, "pre-shifted and plain tables must agree")
	}
}

func TestSetKeyRejectsWrongSize(t *testing.T) {
	t.Parallel()

	_, err := newGost28147(make([]byte, 16), nil, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "32")
}

func TestGammaRoundTrip(t *testing.T) {
	t.Parallel()

	r := mrand.New(mrand.NewSource(3))
	key := randomBytes(t, r, gost28147KeySize)
	iv := randomBytes(t, r, gost28147BlockSize)

	for _, size := range []int{0, 1, 7, 8, 9, 16, 33, 100} {
		plaintext := randomBytes(t, r, size)

		ciphertext, err := EncryptGOST28147Gamma(key, iv, plaintext, nil)
		require.NoError(t, err)
		require.Len(t, ciphertext, size)

		decrypted, err := EncryptGOST28147Gamma(key, iv, ciphertext, nil)
		require.NoError(t, err)
		require.Equal(t, plaintext, decrypted)

		if size > 0 {
			require.False(t, bytes.Equal(plaintext, ciphertext))
		}
	}
}

func TestGammaKeystreamDependsOnIV(t *testing.T) {
	t.Parallel()

	r := mrand.New(mrand.NewSource(4))
	key := randomBytes(t, r, gost28147KeySize)
	plaintext := randomBytes(t, r, 24)

	c1, err := EncryptGOST28147Gamma(key, make([]byte, 8), plaintext, nil)
	require.NoError(t, err)
	iv2 := make([]byte, 8)
	iv2[0] = 1
	c2, err := EncryptGOST28147Gamma(key, iv2, plaintext, nil)
	require.NoError(t, err)

	require.NotEqual(t, c1, c2)
}

func TestGammaRejectsShortIV(t *testing.T) {
	t.Parallel()

	_, err := EncryptGOST28147Gamma(make([]byte, gost28147KeySize), []byte{1, 2, 3}, []byte("data"), nil)
	require.Error(t, err)
}

func TestNextGammaCarry(t *testing.T) {
	t.Parallel()

	// High word at the wrap boundary picks up the extra increment.
	var gamma [gost28147BlockSize]byte
	for i := 0; i < 8; i++ {
		gamma[i] = 0xFF
	}
	nextGamma(&gamma)

	require.Equal(t, []byte{0x00, 0x01, 0x01, 0x01}, gamma[:4])
	require.Equal(t, []byte{0x04, 0x01, 0x01, 0x01}, gamma[4:8])
}

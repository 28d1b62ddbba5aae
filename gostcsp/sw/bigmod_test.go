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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

func TestBigModNonNegative(t *testing.T) {
	t.Parallel()

	m := big.NewInt(7)
	require.Equal(t, int64(3), bigMod(big.NewInt(10), m).Int64())
	require.Equal(t, int64(4), bigMod(big.NewInt(-10), m).Int64())
	require.Equal(t, int64(0), bigMod(big.NewInt(-7), m).Int64())
	require.Equal(t, int64(6), bigMod(big.NewInt(-1), m).Int64())
}

func TestExtendedGCD(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ a, b int64 }{
		{240, 46},
		{46, 240},
		{17, 0},
		{1, 1},
		{99991, 6547},
	} {
		a := big.NewInt(tc.a)
		b := big.NewInt(tc.b)
		d, x, y := extendedGCD(a, b)

		expected := new(big.Int).GCD(nil, nil, a, b)
		require.Equal(t, expected, d)

		identity := new(big.Int).Mul(a, x)
		identity.Add(identity, new(big.Int).Mul(b, y))
		require.Equal(t, d, identity, "a·x + b·y must equal gcd for a=%d b=%d", tc.a, tc.b)
	}
}

func TestModInverse(t *testing.T) {
	t.Parallel()

	inv, err := modInverse(big.NewInt(3), big.NewInt(11))
	require.NoError(t, err)
	require.Equal(t, int64(4), inv.Int64())

	// A scalar larger than the modulus reduces first.
	inv, err = modInverse(big.NewInt(14), big.NewInt(11))
	require.NoError(t, err)
	require.Equal(t, int64(4), inv.Int64())

	// gcd ≠ 1 has no inverse.
	_, err = modInverse(big.NewInt(6), big.NewInt(9))
	require.Error(t, err)
	require.ErrorIs(t, err, gostcsp.ErrInvalidParameter)
}

func TestModInverseOverCurveOrder(t *testing.T) {
	t.Parallel()

	e := mustParseBig("123456789ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789ABCDEF0", 16)
	inv, err := modInverse(e, curveQ)
	require.NoError(t, err)

	product := bigMod(new(big.Int).Mul(e, inv), curveQ)
	require.Equal(t, int64(1), product.Int64())
}

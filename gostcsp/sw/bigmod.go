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

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

// bigMod returns the non-negative residue of x modulo m, in [0, m). Negative
// operands are lifted into the positive range first.
func bigMod(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// extendedGCD returns (d, x, y) with a·x + b·y = d = gcd(a, b). Both inputs
// must be non-negative.
func extendedGCD(a, b *big.Int) (d, x, y *big.Int) {
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)

	if b.Sign() == 0 {
		return a, big.NewInt(1), big.NewInt(0)
	}

	x2, x1 := big.NewInt(1), big.NewInt(0)
	y2, y1 := big.NewInt(0), big.NewInt(1)
	q, r := new(big.Int), new(big.Int)
	x, y = new(big.Int), new(big.Int)

	for b.Sign() > 0 {
		q.DivMod(a, b, r)
		x.Sub(x2, new(big.Int).Mul(q, x1))
		y.Sub(y2, new(big.Int).Mul(q, y1))
		a.Set(b)
		b.Set(r)
		x2.Set(x1)
		x1.Set(x)
		y2.Set(y1)
		y1.Set(y)
	}

	return a, x2, y2
}

// modInverse returns x in [0, n) with a·x ≡ 1 (mod n). It fails when a and n
// are not coprime.
func modInverse(a, n *big.Int) (*big.Int, error) {
	d, x, _ := extendedGCD(bigMod(a, n), n)
	if d.Cmp(bigOne) != 0 {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "no modular inverse, gcd is [%s]", d)
	}
	return bigMod(x, n), nil
}

var bigOne = big.NewInt(1)

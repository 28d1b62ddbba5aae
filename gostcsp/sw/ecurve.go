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

import "math/big"

// curvePoint is an affine point on y² = x³ + a·x + b over Fp. The curve
// coefficient a and the modulus p travel with the point so that arithmetic
// stays self-describing. The point at infinity is tagged, its coordinates
// are unused.
type curvePoint struct {
	x, y *big.Int
	a, p *big.Int
	inf  bool
}

func newCurvePoint(x, y, a, p *big.Int) *curvePoint {
	return &curvePoint{
		x: new(big.Int).Set(x),
		y: new(big.Int).Set(y),
		a: a,
		p: p,
	}
}

// neutralPoint returns the group neutral element for the given curve.
func neutralPoint(a, p *big.Int) *curvePoint {
	return &curvePoint{x: new(big.Int), y: new(big.Int), a: a, p: p, inf: true}
}

func (pt *curvePoint) clone() *curvePoint {
	return &curvePoint{
		x:   new(big.Int).Set(pt.x),
		y:   new(big.Int).Set(pt.y),
		a:   pt.a,
		p:   pt.p,
		inf: pt.inf,
	}
}

func (pt *curvePoint) set(other *curvePoint) *curvePoint {
	pt.x.Set(other.x)
	pt.y.Set(other.y)
	pt.a = other.a
	pt.p = other.p
	pt.inf = other.inf
	return pt
}

func (pt *curvePoint) equal(other *curvePoint) bool {
	if pt.inf || other.inf {
		return pt.inf == other.inf
	}
	return pt.x.Cmp(other.x) == 0 && pt.y.Cmp(other.y) == 0
}

// onCurve reports whether the affine coordinates satisfy the curve equation
// with the supplied b coefficient.
func (pt *curvePoint) onCurve(b *big.Int) bool {
	if pt.inf {
		return false
	}
	lhs := bigMod(new(big.Int).Mul(pt.y, pt.y), pt.p)
	rhs := new(big.Int).Mul(pt.x, pt.x)
	rhs.Mul(rhs, pt.x)
	rhs.Add(rhs, new(big.Int).Mul(pt.a, pt.x))
	rhs.Add(rhs, b)
	return lhs.Cmp(bigMod(rhs, pt.p)) == 0
}

// add sets pt to pt + other and returns pt. The chord branch is taken for
// distinct x coordinates, the tangent branch for doubling; the sum with an
// inverse point collapses to the neutral element.
func (pt *curvePoint) add(other *curvePoint) *curvePoint {
	if other.inf {
		return pt
	}
	if pt.inf {
		return pt.set(other)
	}

	negY := bigMod(new(big.Int).Neg(other.y), pt.p)
	if pt.y.Cmp(negY) == 0 {
		pt.inf = true
		return pt
	}

	xTmp := new(big.Int).Set(pt.x)
	var lambda *big.Int

	if pt.x.Cmp(other.x) != 0 {
		den := bigMod(new(big.Int).Sub(other.x, pt.x), pt.p)
		num := bigMod(new(big.Int).Sub(other.y, pt.y), pt.p)
		invDen, err := modInverse(den, pt.p)
		if err != nil {
			// Unreachable for points on the curve: den ≠ 0 mod prime p.
			pt.inf = true
			return pt
		}
		lambda = bigMod(new(big.Int).Mul(num, invDen), pt.p)
		lambda2 := bigMod(new(big.Int).Mul(lambda, lambda), pt.p)
		pt.x = bigMod(lambda2.Sub(lambda2, pt.x).Sub(lambda2, other.x), pt.p)
	} else {
		den := bigMod(new(big.Int).Lsh(pt.y, 1), pt.p)
		num := new(big.Int).Mul(pt.x, pt.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, pt.a)
		num = bigMod(num, pt.p)
		invDen, err := modInverse(den, pt.p)
		if err != nil {
			pt.inf = true
			return pt
		}
		lambda = bigMod(new(big.Int).Mul(num, invDen), pt.p)
		lambda2 := bigMod(new(big.Int).Mul(lambda, lambda), pt.p)
		pt.x = bigMod(lambda2.Sub(lambda2, new(big.Int).Lsh(pt.x, 1)), pt.p)
	}

	y := new(big.Int).Mul(lambda, xTmp.Sub(xTmp, pt.x))
	pt.y = bigMod(y.Sub(y, pt.y), pt.p)
	return pt
}

// scalarMul sets pt to k·pt by right-to-left double-and-add and returns pt.
// Multiplying by zero yields the neutral element. Not constant-time.
func (pt *curvePoint) scalarMul(k *big.Int) *curvePoint {
	result := neutralPoint(pt.a, pt.p)
	point := pt.clone()
	n := new(big.Int).Set(k)

	for n.Sign() > 0 {
		if n.Bit(0) == 1 {
			result.add(point)
		}
		point.add(point.clone())
		n.Rsh(n, 1)
	}
	return pt.set(result)
}

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
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

// Fixed GOST R 34.10-2012 curve parameters over the 256-bit prime
// p = 2^256 − 617.
var (
	curveP = mustParseBig("57896044618658097711785492504343953926634992332820282019728792003956564821041", 10)
	curveA = big.NewInt(7)
	curveB = mustParseBig("43308876546767276905765904595650931995942111794451039583252968842033849580414", 10)
	curveQ = mustParseBig("57896044618658097711785492504343953927082934583725450622380973592137631069619", 10)
	baseX  = big.NewInt(2)
	baseY  = mustParseBig("4018974056539037503335449422937059775635739389905545080690979365213431566280", 10)
)

const (
	privateKeyHexLen = 64
	publicKeyHexLen  = 128
	signatureHexLen  = 128
)

// KeyPair carries a generated GOST R 34.10-2012 key pair in wire form: the
// private scalar as 64 hex characters and the public point as Qx‖Qy, 128 hex
// characters.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

func mustParseBig(s string, base int) *big.Int {
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		panic(fmt.Sprintf("invalid big integer literal [%s]", s))
	}
	return v
}

func basePoint() *curvePoint {
	return newCurvePoint(baseX, baseY, curveA, curveP)
}

func parseHexScalar(s string, wantLen int, what string) (*big.Int, error) {
	if len(s) != wantLen {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "%s must be [%d] hex characters, got [%d]", what, wantLen, len(s))
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "%s is not valid hex", what)
	}
	return v, nil
}

// hex64 renders a scalar as exactly 64 uppercase hex characters.
func hex64(v *big.Int) string {
	return fmt.Sprintf("%064X", v)
}

// messageScalar recomputes the scalar form of the message digest: the
// 32-byte hash read as an uppercase big-endian hex integer.
func messageScalar(message string) *big.Int {
	return mustParseBig(GOSTR3411HexDigest([]byte(message)), 16)
}

// SignMessage signs a device-signature string with the private scalar and
// returns the certificate as hex64(s)‖hex64(r). The nonce comes from the
// compatibility source.
func SignMessage(message, privateKeyHex string) (string, error) {
	return SignMessageWith(message, privateKeyHex, NewCompatNonceSource())
}

// SignMessageWith signs with an explicit nonce source. The intermediate
// scalars are taken as they fall: e, r and s are not re-rolled on zero, for
// byte compatibility with certificates issued by the original authority.
func SignMessageWith(message, privateKeyHex string, nonces NonceSource) (string, error) {
	d, err := parseHexScalar(strings.TrimSpace(privateKeyHex), privateKeyHexLen, "private key")
	if err != nil {
		return "", err
	}

	k := bigMod(nonces.Scalar(), curveQ)
	e := bigMod(messageScalar(message), curveQ)

	c := basePoint().scalarMul(k)
	r := bigMod(c.x, curveQ)

	s := new(big.Int).Mul(r, d)
	s.Add(s, new(big.Int).Mul(k, e))
	s = bigMod(s, curveQ)

	return hex64(s) + hex64(r), nil
}

// CheckSign verifies a certificate against the device-signature string and
// the public key. It returns false with a nil error for an honest mismatch
// and an error for malformed input.
//
// The equation intentionally inverts the message scalar e rather than s:
// certificates in the field were issued and checked against this variant,
// and correcting it would invalidate them.
func CheckSign(message, signatureHex, publicKeyHex string) (bool, error) {
	if len(signatureHex) != signatureHexLen {
		return false, errors.Wrapf(gostcsp.ErrInvalidParameter, "signature must be [%d] hex characters, got [%d]", signatureHexLen, len(signatureHex))
	}
	s, err := parseHexScalar(signatureHex[:64], 64, "signature s")
	if err != nil {
		return false, err
	}
	r, err := parseHexScalar(signatureHex[64:], 64, "signature r")
	if err != nil {
		return false, err
	}
	if s.Sign() < 1 || s.Cmp(curveQ) >= 0 {
		return false, errors.Wrap(gostcsp.ErrInvalidParameter, "signature scalar s out of range")
	}
	if r.Sign() < 1 || r.Cmp(curveQ) >= 0 {
		return false, errors.Wrap(gostcsp.ErrInvalidParameter, "signature scalar r out of range")
	}

	qx, qy, err := parsePublicKey(publicKeyHex)
	if err != nil {
		return false, err
	}

	e := messageScalar(message)
	v, err := modInverse(e, curveQ)
	if err != nil {
		return false, nil
	}

	z1 := bigMod(new(big.Int).Mul(s, v), curveQ)
	z2 := bigMod(new(big.Int).Mul(new(big.Int).Neg(r), v), curveQ)

	nc := basePoint().scalarMul(z1)
	nc.add(newCurvePoint(qx, qy, curveA, curveP).scalarMul(z2))
	if nc.inf {
		return false, nil
	}

	return bigMod(nc.x, curveQ).Cmp(r) == 0, nil
}

// GenerateKeyPair generates a fresh key pair with the compatibility nonce
// source.
func GenerateKeyPair() (KeyPair, error) {
	return GenerateKeyPairWith(NewCompatNonceSource())
}

// GenerateKeyPairWith generates a key pair with an explicit randomness
// source: d is the source's scalar reduced modulo q, Q = d·P.
func GenerateKeyPairWith(nonces NonceSource) (KeyPair, error) {
	d := bigMod(nonces.Scalar(), curveQ)
	q := basePoint().scalarMul(d)
	if q.inf {
		return KeyPair{}, errors.Wrap(gostcsp.ErrInvalidParameter, "degenerate private scalar")
	}
	return KeyPair{
		PrivateKey: strings.ToLower(hex64(d)),
		PublicKey:  strings.ToLower(hex64(q.x) + hex64(q.y)),
	}, nil
}

func parsePublicKey(publicKeyHex string) (qx, qy *big.Int, err error) {
	publicKeyHex = strings.TrimSpace(publicKeyHex)
	if len(publicKeyHex) != publicKeyHexLen {
		return nil, nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "public key must be [%d] hex characters, got [%d]", publicKeyHexLen, len(publicKeyHex))
	}
	qx, err = parseHexScalar(publicKeyHex[:64], 64, "public key x")
	if err != nil {
		return nil, nil, err
	}
	qy, err = parseHexScalar(publicKeyHex[64:], 64, "public key y")
	if err != nil {
		return nil, nil, err
	}
	return qx, qy, nil
}

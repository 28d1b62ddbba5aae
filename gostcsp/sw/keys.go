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
	"strings"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

// gost3410PrivateKey wraps the 64-hex-character private scalar.
type gost3410PrivateKey struct {
	d string
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *gost3410PrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *gost3410PrivateKey) SKI() []byte {
	pub, err := k.PublicKey()
	if err != nil {
		return nil
	}
	return pub.SKI()
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric.
func (k *gost3410PrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *gost3410PrivateKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of
// an asymmetric public/private key pair.
func (k *gost3410PrivateKey) PublicKey() (gostcsp.Key, error) {
	d, err := parseHexScalar(k.d, privateKeyHexLen, "private key")
	if err != nil {
		return nil, err
	}
	q := basePoint().scalarMul(d)
	if q.inf {
		return nil, errors.Wrap(gostcsp.ErrInvalidParameter, "degenerate private scalar")
	}
	return &gost3410PublicKey{pub: strings.ToLower(hex64(q.x) + hex64(q.y))}, nil
}

// gost3410PublicKey wraps the 128-hex-character Qx‖Qy point.
type gost3410PublicKey struct {
	pub string
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *gost3410PublicKey) Bytes() ([]byte, error) {
	return []byte(k.pub), nil
}

// SKI returns the subject key identifier of this key.
func (k *gost3410PublicKey) SKI() []byte {
	d := GOSTR3411Digest([]byte(k.pub))
	return d[:]
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric.
func (k *gost3410PublicKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *gost3410PublicKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of
// an asymmetric public/private key pair.
func (k *gost3410PublicKey) PublicKey() (gostcsp.Key, error) {
	return k, nil
}

// tripleDESKey wraps a parsed 3DES keyset.
type tripleDESKey struct {
	ks  *TripleDESKeyset
	raw string
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *tripleDESKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *tripleDESKey) SKI() []byte {
	d := GOSTR3411Digest([]byte(k.raw))
	return d[:]
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric.
func (k *tripleDESKey) Symmetric() bool {
	return true
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *tripleDESKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of
// an asymmetric public/private key pair. This method returns
// an error in symmetric key schemes.
func (k *tripleDESKey) PublicKey() (gostcsp.Key, error) {
	return nil, errors.New("Cannot call this method on a symmetric key.")
}

// gost28147Key wraps a raw 256-bit GOST 28147-89 key.
type gost28147Key struct {
	key [gost28147KeySize]byte
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *gost28147Key) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *gost28147Key) SKI() []byte {
	d := GOSTR3411Digest(k.key[:])
	return d[:]
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric.
func (k *gost28147Key) Symmetric() bool {
	return true
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *gost28147Key) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of
// an asymmetric public/private key pair. This method returns
// an error in symmetric key schemes.
func (k *gost28147Key) PublicKey() (gostcsp.Key, error) {
	return nil, errors.New("Cannot call this method on a symmetric key.")
}

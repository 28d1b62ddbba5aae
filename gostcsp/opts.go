/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gostcsp

import "fmt"

const (
	// GOST3410 signature scheme over the fixed 256-bit prime curve.
	GOST3410 = "GOST3410"

	// GOSTR3411 is the 256-bit GOST R 34.11-94 hash.
	GOSTR3411 = "GOSTR3411"

	// TripleDESFrame is the DES-EDE3-CBC length-prefixed frame codec.
	TripleDESFrame = "3DES_FRAME"

	// GOST28147 is the 64-bit block cipher in CBC-gamma streaming mode.
	GOST28147 = "GOST28147"
)

// GOST3410KeyGenOpts contains options for GOST R 34.10-2012 key generation.
type GOST3410KeyGenOpts struct {
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *GOST3410KeyGenOpts) Algorithm() string {
	return GOST3410
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *GOST3410KeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// GOST3410PrivateKeyImportOpts contains options for importing a private
// scalar from its 64-hex-character representation.
type GOST3410PrivateKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *GOST3410PrivateKeyImportOpts) Algorithm() string {
	return GOST3410
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *GOST3410PrivateKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// GOST3410PublicKeyImportOpts contains options for importing a public key
// from its 128-hex-character Qx‖Qy representation.
type GOST3410PublicKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *GOST3410PublicKeyImportOpts) Algorithm() string {
	return GOST3410
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *GOST3410PublicKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// GOSTR3411Opts contains options relating to the GOST R 34.11-94 hash.
type GOSTR3411Opts struct{}

// Algorithm returns the hash algorithm identifier (to be used).
func (opts *GOSTR3411Opts) Algorithm() string {
	return GOSTR3411
}

// GOST3410SignerOpts contains options for signing with GOST R 34.10-2012.
type GOST3410SignerOpts struct{}

// Algorithm returns the signing algorithm identifier (to be used).
func (opts *GOST3410SignerOpts) Algorithm() string {
	return GOST3410
}

// TripleDESKeyImportOpts contains options for importing a 3DES keyset from
// its 64-hex-character k1‖k2‖k3‖iv representation.
type TripleDESKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *TripleDESKeyImportOpts) Algorithm() string {
	return TripleDESFrame
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *TripleDESKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// TripleDESFrameOpts selects the length-prefixed padded frame mode for
// Encrypt and Decrypt.
type TripleDESFrameOpts struct{}

// GOST28147KeyImportOpts contains options for importing a raw 256-bit
// GOST 28147-89 key.
type GOST28147KeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *GOST28147KeyImportOpts) Algorithm() string {
	return GOST28147
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *GOST28147KeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// GOST28147GammaOpts selects the CBC-gamma streaming mode for Encrypt and
// Decrypt. The same transformation is applied in both directions.
type GOST28147GammaOpts struct {
	// IV seeds the gamma block. It must be 8 bytes.
	IV []byte
}

// GetHashOpt returns the HashOpts corresponding to the passed hash function
func GetHashOpt(hashFunction string) (HashOpts, error) {
	switch hashFunction {
	case GOSTR3411:
		return &GOSTR3411Opts{}, nil
	}
	return nil, fmt.Errorf("hash function not recognized [%s]", hashFunction)
}

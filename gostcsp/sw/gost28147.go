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
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

const (
	gost28147KeySize   = 32
	gost28147BlockSize = 8

	// Gamma feedback constants from GOST 28147-89.
	gammaC1 = 0x01010101
	gammaC2 = 0x01010104
)

// Sbox is a GOST 28147-89 substitution set: eight 16-entry 4-bit tables,
// S1 first.
type Sbox [8][16]byte

// SboxGostR341194TestParamSet is the substitution set from the GOST R
// 34.11-94 test parameters. The hash is defined over this set and it is the
// default whenever the caller does not supply one.
var SboxGostR341194TestParamSet = Sbox{
	{0x4, 0xA, 0x9, 0x2, 0xD, 0x8, 0x0, 0xE, 0x6, 0xB, 0x1, 0xC, 0x7, 0xF, 0x5, 0x3},
	{0xE, 0xB, 0x4, 0xC, 0x6, 0xD, 0xF, 0xA, 0x2, 0x3, 0x8, 0x1, 0x0, 0x7, 0x5, 0x9},
	{0x5, 0x8, 0x1, 0xD, 0xA, 0x3, 0x4, 0x2, 0xE, 0xF, 0xC, 0x7, 0x6, 0x0, 0x9, 0xB},
	{0x7, 0xD, 0xA, 0x1, 0x0, 0x8, 0x9, 0xF, 0xE, 0x4, 0x6, 0xC, 0xB, 0x2, 0x5, 0x3},
	{0x6, 0xC, 0x7, 0x1, 0x5, 0xF, 0xD, 0x8, 0x4, 0xA, 0x9, 0xE, 0x0, 0x3, 0xB, 0x2},
	{0x4, 0xB, 0xA, 0x0, 0x7, 0x2, 0x1, 0xD, 0x3, 0x6, 0x8, 0x5, 0x9, 0xC, 0xF, 0xE},
	{0xD, 0xB, 0x4, 0x1, 0x3, 0xF, 0x5, 0x9, 0x0, 0xA, 0xE, 0x7, 0x6, 0x8, 0x2, 0xC},
	{0x1, 0xF, 0xD, 0x0, 0x5, 0x7, 0xA, 0x4, 0x9, 0x2, 0x3, 0xE, 0x6, 0xB, 0x8, 0xC},
}

// gost28147 is a scheduled GOST 28147-89 cipher context. The four 256-entry
// tables fuse pairs of S-boxes; with preShifted set they additionally absorb
// the input permutation of the 11-bit rotate, which is the fast path. The
// tables are immutable once built; the key may be replaced between blocks.
type gost28147 struct {
	key                [8]uint32
	k87, k65, k43, k21 [256]uint32
	preShifted         bool
}

// newGost28147 builds the S-box tables and schedules the 256-bit key. A nil
// sbox selects SboxGostR341194TestParamSet.
func newGost28147(key []byte, sbox *Sbox, preShift bool) (*gost28147, error) {
	c := &gost28147{}
	c.kboxInit(sbox, preShift)
	if err := c.setKey(key); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *gost28147) kboxInit(sbox *Sbox, preShift bool) {
	if sbox == nil {
		sbox = &SboxGostR341194TestParamSet
	}
	for i := 0; i < 256; i++ {
		c.k87[i] = uint32(sbox[7][i>>4])<<4 | uint32(sbox[6][i&15])
		c.k65[i] = uint32(sbox[5][i>>4])<<4 | uint32(sbox[4][i&15])
		c.k43[i] = uint32(sbox[3][i>>4])<<4 | uint32(sbox[2][i&15])
		c.k21[i] = uint32(sbox[1][i>>4])<<4 | uint32(sbox[0][i&15])
	}
	if preShift {
		for i := 0; i < 256; i++ {
			c.k87[i] <<= 24
			c.k65[i] <<= 16
			c.k43[i] <<= 8
		}
	}
	c.preShifted = preShift
}

// setKey stores the 256-bit key as eight little-endian words.
func (c *gost28147) setKey(key []byte) error {
	if len(key) != gost28147KeySize {
		return errors.Wrapf(gostcsp.ErrInvalidParameter, "GOST 28147-89 key must be [%d] bytes, got [%d]", gost28147KeySize, len(key))
	}
	for i := 0; i < 8; i++ {
		c.key[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return nil
}

// f is the GOST round function: S-box substitution followed by an 11-bit
// left rotate.
func (c *gost28147) f(x uint32) uint32 {
	if c.preShifted {
		x = c.k87[x>>24&255] | c.k65[x>>16&255] | c.k43[x>>8&255] | c.k21[x&255]
	} else {
		x = c.k87[x>>24&255]<<24 | c.k65[x>>16&255]<<16 | c.k43[x>>8&255]<<8 | c.k21[x&255]
	}
	return x<<11 | x>>(32-11)
}

// encryptBlock encrypts one 64-bit block: three forward key passes and one
// reverse pass. Instead of swapping halves, the half names swap each round.
func (c *gost28147) encryptBlock(dst, src []byte) {
	n1 := binary.LittleEndian.Uint32(src[0:])
	n2 := binary.LittleEndian.Uint32(src[4:])

	for pass := 0; pass < 3; pass++ {
		n2 ^= c.f(n1 + c.key[0])
		n1 ^= c.f(n2 + c.key[1])
		n2 ^= c.f(n1 + c.key[2])
		n1 ^= c.f(n2 + c.key[3])
		n2 ^= c.f(n1 + c.key[4])
		n1 ^= c.f(n2 + c.key[5])
		n2 ^= c.f(n1 + c.key[6])
		n1 ^= c.f(n2 + c.key[7])
	}

	n2 ^= c.f(n1 + c.key[7])
	n1 ^= c.f(n2 + c.key[6])
	n2 ^= c.f(n1 + c.key[5])
	n1 ^= c.f(n2 + c.key[4])
	n2 ^= c.f(n1 + c.key[3])
	n1 ^= c.f(n2 + c.key[2])
	n2 ^= c.f(n1 + c.key[1])
	n1 ^= c.f(n2 + c.key[0])

	binary.LittleEndian.PutUint32(dst[0:], n2)
	binary.LittleEndian.PutUint32(dst[4:], n1)
}

// decryptBlock inverts encryptBlock: one forward key pass and three reverse
// passes.
func (c *gost28147) decryptBlock(dst, src []byte) {
	n1 := binary.LittleEndian.Uint32(src[0:])
	n2 := binary.LittleEndian.Uint32(src[4:])

	n2 ^= c.f(n1 + c.key[0])
	n1 ^= c.f(n2 + c.key[1])
	n2 ^= c.f(n1 + c.key[2])
	n1 ^= c.f(n2 + c.key[3])
	n2 ^= c.f(n1 + c.key[4])
	n1 ^= c.f(n2 + c.key[5])
	n2 ^= c.f(n1 + c.key[6])
	n1 ^= c.f(n2 + c.key[7])

	for pass := 0; pass < 3; pass++ {
		n2 ^= c.f(n1 + c.key[7])
		n1 ^= c.f(n2 + c.key[6])
		n2 ^= c.f(n1 + c.key[5])
		n1 ^= c.f(n2 + c.key[4])
		n2 ^= c.f(n1 + c.key[3])
		n1 ^= c.f(n2 + c.key[2])
		n2 ^= c.f(n1 + c.key[1])
		n1 ^= c.f(n2 + c.key[0])
	}

	binary.LittleEndian.PutUint32(dst[0:], n2)
	binary.LittleEndian.PutUint32(dst[4:], n1)
}

// nextGamma advances the gamma block: C1 is added to the low word, C2 to the
// high word with an extra increment when the high-word addition wraps.
func nextGamma(gamma *[gost28147BlockSize]byte) {
	s0 := binary.LittleEndian.Uint32(gamma[0:])
	s1 := binary.LittleEndian.Uint32(gamma[4:])

	s0 += gammaC1
	s1 += gammaC2
	if s1 < gammaC2 {
		s1++
	}

	binary.LittleEndian.PutUint32(gamma[0:], s0)
	binary.LittleEndian.PutUint32(gamma[4:], s1)
}

// cryptGamma applies the CBC-gamma stream to src and writes the result to
// dst. The gamma block is derived from iv; encryption and decryption are the
// same operation. dst and src may overlap exactly.
func (c *gost28147) cryptGamma(dst, src, iv []byte) {
	var gamma, keystream [gost28147BlockSize]byte
	c.encryptBlock(gamma[:], iv)

	for len(src) > 0 {
		nextGamma(&gamma)
		c.encryptBlock(keystream[:], gamma[:])

		n := len(src)
		if n > gost28147BlockSize {
			n = gost28147BlockSize
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ keystream[i]
		}
		src = src[n:]
		dst = dst[n:]
	}
}

// EncryptGOST28147Gamma encrypts data with the GOST 28147-89 CBC-gamma
// stream under the given 256-bit key and 8-byte IV. A nil sbox selects the
// default substitution set. Decryption is the same transformation.
func EncryptGOST28147Gamma(key, iv, data []byte, sbox *Sbox) ([]byte, error) {
	if len(iv) != gost28147BlockSize {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "IV must be [%d] bytes, got [%d]", gost28147BlockSize, len(iv))
	}
	c, err := newGost28147(key, sbox, true)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	c.cryptGamma(out, data, iv)
	return out, nil
}

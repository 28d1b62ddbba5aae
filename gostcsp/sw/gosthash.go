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
	"fmt"
	"hash"
)

const (
	// GOSTR3411Size is the digest size of GOST R 34.11-94 in bytes.
	GOSTR3411Size = 32

	// GOSTR3411BlockSize is the hash block size in bytes.
	GOSTR3411BlockSize = 32
)

// c2 is the only non-zero mixing constant of the key-generation stage.
var c2 = [GOSTR3411BlockSize]byte{
	0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
	0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00,
	0x00, 0xFF, 0xFF, 0x00, 0xFF, 0x00, 0x00, 0xFF,
	0xFF, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0xFF,
}

// gostHash is a GOST R 34.11-94 context: 256-bit chaining value H, running
// block sum Z modulo 2^256, running bit count, and an embedded GOST 28147-89
// context whose key is replaced on every step.
type gostHash struct {
	buffer [GOSTR3411BlockSize]byte
	nx     int
	bitLen uint64
	h      [GOSTR3411BlockSize]byte
	z      [GOSTR3411BlockSize]byte
	cipher gost28147
}

// NewGOSTR3411 returns a new GOST R 34.11-94 hash computing a 256-bit digest
// over the default substitution set.
func NewGOSTR3411() hash.Hash {
	g := &gostHash{}
	g.cipher.kboxInit(&SboxGostR341194TestParamSet, true)
	return g
}

func (g *gostHash) Size() int      { return GOSTR3411Size }
func (g *gostHash) BlockSize() int { return GOSTR3411BlockSize }

func (g *gostHash) Reset() {
	g.nx = 0
	g.bitLen = 0
	g.h = [GOSTR3411BlockSize]byte{}
	g.z = [GOSTR3411BlockSize]byte{}
	g.buffer = [GOSTR3411BlockSize]byte{}
}

func (g *gostHash) Write(p []byte) (int, error) {
	n := len(p)
	g.bitLen += uint64(n) * 8

	if g.nx > 0 {
		c := copy(g.buffer[g.nx:], p)
		g.nx += c
		p = p[c:]
		if g.nx == GOSTR3411BlockSize {
			g.blockTransform(&g.buffer)
			g.nx = 0
		}
	}
	for len(p) >= GOSTR3411BlockSize {
		var m [GOSTR3411BlockSize]byte
		copy(m[:], p)
		g.blockTransform(&m)
		p = p[GOSTR3411BlockSize:]
	}
	if len(p) > 0 {
		g.nx = copy(g.buffer[:], p)
	}
	return n, nil
}

// Sum appends the digest to b without disturbing the running state.
func (g *gostHash) Sum(b []byte) []byte {
	d := *g
	digest := d.checkSum()
	return append(b, digest[:]...)
}

// checkSum drains the context: the trailing partial block is zero-padded and
// folded in, then the bit-length block L and the sum block Z are folded in,
// in that order.
func (g *gostHash) checkSum() [GOSTR3411Size]byte {
	if g.nx > 0 {
		for i := g.nx; i < GOSTR3411BlockSize; i++ {
			g.buffer[i] = 0
		}
		g.blockTransform(&g.buffer)
		g.nx = 0
	}

	var l [GOSTR3411BlockSize]byte
	binary.LittleEndian.PutUint32(l[0:], uint32(g.bitLen))
	binary.LittleEndian.PutUint32(l[4:], uint32(g.bitLen>>32))
	g.stepTransform(&l)
	g.stepTransform(&g.z)

	return g.h
}

// blockTransform folds one message block: Z accumulates the block modulo
// 2^256 and H advances through the step transformation.
func (g *gostHash) blockTransform(m *[GOSTR3411BlockSize]byte) {
	var carry uint64
	for i := 0; i < GOSTR3411BlockSize; i += 4 {
		sum := uint64(binary.LittleEndian.Uint32(g.z[i:])) + uint64(binary.LittleEndian.Uint32(m[i:])) + carry
		binary.LittleEndian.PutUint32(g.z[i:], uint32(sum))
		carry = sum >> 32
	}
	g.stepTransform(m)
}

// stepTransform computes H ← StepTransform(H, m): round-key generation,
// four parallel block encryptions, and the ψ mixing stage.
func (g *gostHash) stepTransform(m *[GOSTR3411BlockSize]byte) {
	var u, v, w, k, s [GOSTR3411BlockSize]byte

	// Key generation. C1 and C3 are zero, only C2 contributes.
	u = g.h
	v = *m
	xorBlocks(&w, &u, &v)

	for j := 0; j < 4; j++ {
		if j > 0 {
			transformA(&u)
			if j == 2 {
				xorBlocks(&u, &u, &c2)
			}
			transformA(&v)
			transformA(&v)
			xorBlocks(&w, &u, &v)
		}
		transformP(&k, &w)

		g.cipher.setKey(k[:])
		g.cipher.encryptBlock(s[8*j:8*j+8], g.h[8*j:8*j+8])
	}

	// Mixing: H ← φ^61(φ(m ⊕ φ^12(S)) ⊕ H).
	for i := 0; i < 12; i++ {
		transformFi(&s)
	}
	xorBlocks(&s, &s, m)
	transformFi(&s)
	xorBlocks(&s, &s, &g.h)
	for i := 0; i < 61; i++ {
		transformFi(&s)
	}
	g.h = s
}

// transformA shifts the four 8-byte slots down one position and places the
// XOR of the lowest two slots on top.
func transformA(x *[GOSTR3411BlockSize]byte) {
	var low [8]byte
	for i := 0; i < 8; i++ {
		low[i] = x[i] ^ x[i+8]
	}
	copy(x[0:24], x[8:32])
	copy(x[24:32], low[:])
}

// transformP is the byte permutation dst[4·i+k-1] = src[8·(k-1)+i].
func transformP(dst, src *[GOSTR3411BlockSize]byte) {
	for i := 0; i < 8; i++ {
		for j := 0; j < 4; j++ {
			dst[4*i+j] = src[8*j+i]
		}
	}
}

// transformFi is one round of the ψ LFSR over 16-bit little-endian words:
// w0⊕w1⊕w2⊕w3⊕w12⊕w15 enters at slot 15, everything shifts down.
func transformFi(x *[GOSTR3411BlockSize]byte) {
	w0 := binary.LittleEndian.Uint16(x[0:])
	w1 := binary.LittleEndian.Uint16(x[2:])
	w2 := binary.LittleEndian.Uint16(x[4:])
	w3 := binary.LittleEndian.Uint16(x[6:])
	w12 := binary.LittleEndian.Uint16(x[24:])
	w15 := binary.LittleEndian.Uint16(x[30:])
	t := w0 ^ w1 ^ w2 ^ w3 ^ w12 ^ w15

	copy(x[0:30], x[2:32])
	binary.LittleEndian.PutUint16(x[30:], t)
}

func xorBlocks(dst, a, b *[GOSTR3411BlockSize]byte) {
	for i := 0; i < GOSTR3411BlockSize; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// GOSTR3411Digest returns the GOST R 34.11-94 digest of msg.
func GOSTR3411Digest(msg []byte) [GOSTR3411Size]byte {
	g := &gostHash{}
	g.cipher.kboxInit(&SboxGostR341194TestParamSet, true)
	g.Write(msg)
	return g.checkSum()
}

// GOSTR3411HexDigest returns the digest of msg as uppercase hex, the form
// the signature scheme consumes.
func GOSTR3411HexDigest(msg []byte) string {
	d := GOSTR3411Digest(msg)
	return fmt.Sprintf("%X", d[:])
}

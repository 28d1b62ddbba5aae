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
	"crypto/cipher"
	"crypto/des"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

const (
	desBlockSize       = 8
	tripleDESKeysetLen = 64 // three keys and the IV, two hex characters per byte
)

// TripleDESKeyset holds the three DES keys and the IV parsed from the
// 64-hex-character keyset string. Immutable after parsing.
type TripleDESKeyset struct {
	k1, k2, k3 [desBlockSize]byte
	iv         [desBlockSize]byte
}

// ParseTripleDESKeyset parses a keyset string of four 16-hex-digit groups:
// k1‖k2‖k3‖iv.
func ParseTripleDESKeyset(keyset string) (*TripleDESKeyset, error) {
	if len(keyset) != tripleDESKeysetLen {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "keyset must be [%d] hex characters, got [%d]", tripleDESKeysetLen, len(keyset))
	}
	raw, err := hex.DecodeString(keyset)
	if err != nil {
		return nil, errors.Wrap(gostcsp.ErrInvalidParameter, "keyset is not valid hex")
	}

	ks := &TripleDESKeyset{}
	copy(ks.k1[:], raw[0:8])
	copy(ks.k2[:], raw[8:16])
	copy(ks.k3[:], raw[16:24])
	copy(ks.iv[:], raw[24:32])
	return ks, nil
}

func (ks *TripleDESKeyset) newCBC(encrypt bool) (cipher.BlockMode, error) {
	key := make([]byte, 0, 3*desBlockSize)
	key = append(key, ks.k1[:]...)
	key = append(key, ks.k2[:]...)
	key = append(key, ks.k3[:]...)

	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed instantiating DES-EDE3")
	}

	iv := make([]byte, desBlockSize)
	copy(iv, ks.iv[:])
	if encrypt {
		return cipher.NewCBCEncrypter(block, iv), nil
	}
	return cipher.NewCBCDecrypter(block, iv), nil
}

// EncryptFrame frames the plaintext with a little-endian 64-bit length
// prefix, pads it to the DES block size, and encrypts with DES-EDE3-CBC.
// The result is decrypted again and compared against the frame; a mismatch
// reports an internal inconsistency rather than bad input.
func (ks *TripleDESKeyset) EncryptFrame(plaintext []byte) ([]byte, error) {
	frame := make([]byte, desBlockSize+len(plaintext))
	binary.LittleEndian.PutUint64(frame, uint64(len(plaintext)))
	copy(frame[desBlockSize:], plaintext)

	pad := desBlockSize - len(frame)%desBlockSize
	for i := 0; i < pad; i++ {
		frame = append(frame, byte(pad))
	}

	enc, err := ks.newCBC(true)
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, len(frame))
	enc.CryptBlocks(ciphertext, frame)

	// Self round-trip, mirroring the issuing authority: a mismatch means a
	// broken cipher state, not an attacker.
	dec, err := ks.newCBC(false)
	if err != nil {
		return nil, err
	}
	check := make([]byte, len(ciphertext))
	dec.CryptBlocks(check, ciphertext)
	if !bytes.Equal(check, frame) {
		return nil, errors.Wrap(gostcsp.ErrIntegrityFailure, "decrypted data differ from original data")
	}

	return ciphertext, nil
}

// DecryptFrame inverts EncryptFrame: CBC-decrypt, strip the padding, strip
// the length prefix, and verify the declared length.
func (ks *TripleDESKeyset) DecryptFrame(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%desBlockSize != 0 {
		return nil, errors.Wrapf(gostcsp.ErrBufferShape, "ciphertext size is [%d] bytes, but must be a non-zero multiple of [%d]", len(ciphertext), desBlockSize)
	}

	dec, err := ks.newCBC(false)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, len(ciphertext))
	dec.CryptBlocks(frame, ciphertext)

	pad := int(frame[len(frame)-1])
	if pad < 1 || pad > desBlockSize || pad >= len(frame) {
		return nil, errors.Wrapf(gostcsp.ErrIntegrityFailure, "invalid padding value [%d]", pad)
	}
	frame = frame[:len(frame)-pad]

	if len(frame) < desBlockSize {
		return nil, errors.Wrap(gostcsp.ErrIntegrityFailure, "frame too short for length prefix")
	}
	declared := binary.LittleEndian.Uint64(frame)
	payload := frame[desBlockSize:]
	if declared != uint64(len(payload)) {
		return nil, errors.Wrapf(gostcsp.ErrIntegrityFailure, "declared length [%d] does not match payload length [%d]", declared, len(payload))
	}
	return payload, nil
}

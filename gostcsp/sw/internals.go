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
	"hash"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

// KeyGenerator is a CSP-like interface that provides key generation algorithms
type KeyGenerator interface {

	// KeyGen generates a key using opts.
	KeyGen(opts gostcsp.KeyGenOpts) (k gostcsp.Key, err error)
}

// KeyImporter is a CSP-like interface that provides key import algorithms
type KeyImporter interface {

	// KeyImport imports a key from its raw representation using opts.
	// The opts argument should be appropriate for the primitive used.
	KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (k gostcsp.Key, err error)
}

// Encryptor is a CSP-like interface that provides encryption algorithms
type Encryptor interface {

	// Encrypt encrypts plaintext using key k.
	// The opts argument should be appropriate for the algorithm used.
	Encrypt(k gostcsp.Key, plaintext []byte, opts gostcsp.EncrypterOpts) (ciphertext []byte, err error)
}

// Decryptor is a CSP-like interface that provides decryption algorithms
type Decryptor interface {

	// Decrypt decrypts ciphertext using key k.
	// The opts argument should be appropriate for the algorithm used.
	Decrypt(k gostcsp.Key, ciphertext []byte, opts gostcsp.DecrypterOpts) (plaintext []byte, err error)
}

// Signer is a CSP-like interface that provides signing algorithms
type Signer interface {

	// Sign signs message using key k.
	// The opts argument should be appropriate for the algorithm used.
	Sign(k gostcsp.Key, message []byte, opts gostcsp.SignerOpts) (signature []byte, err error)
}

// Verifier is a CSP-like interface that provides verifying algorithms
type Verifier interface {

	// Verify verifies signature against key k and message
	// The opts argument should be appropriate for the algorithm used.
	Verify(k gostcsp.Key, signature, message []byte, opts gostcsp.SignerOpts) (valid bool, err error)
}

// Hasher is a CSP-like interface that provides hash algorithms
type Hasher interface {

	// Hash hashes messages msg using options opts.
	// If opts is nil, the default hash function will be used.
	Hash(msg []byte, opts gostcsp.HashOpts) (hash []byte, err error)

	// GetHash returns and instance of hash.Hash using options opts.
	// If opts is nil, the default hash function will be returned.
	GetHash(opts gostcsp.HashOpts) (h hash.Hash, err error)
}

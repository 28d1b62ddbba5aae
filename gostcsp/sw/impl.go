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
	"reflect"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

// New returns a software crypto service provider for the GOST licensing
// algorithm family. Nonces come from the compatibility source; use NewWith
// to inject a different one.
func New() (gostcsp.CSP, error) {
	return NewWith(NewCompatNonceSource)
}

// NewWith instantiates the provider with an explicit nonce-source factory.
// The factory is invoked once per signing or key-generation operation so
// that no generator state is shared across callers.
func NewWith(nonces func() NonceSource) (gostcsp.CSP, error) {
	if nonces == nil {
		return nil, errors.Errorf("Invalid nonce source factory. It must be different from nil.")
	}

	// Set the key generators
	keyGenerators := make(map[reflect.Type]KeyGenerator)
	keyGenerators[reflect.TypeOf(&gostcsp.GOST3410KeyGenOpts{})] = &gost3410KeyGenerator{nonces: nonces}

	// Set the key importers
	keyImporters := make(map[reflect.Type]KeyImporter)
	keyImporters[reflect.TypeOf(&gostcsp.GOST3410PrivateKeyImportOpts{})] = &gost3410PrivateKeyImporter{}
	keyImporters[reflect.TypeOf(&gostcsp.GOST3410PublicKeyImportOpts{})] = &gost3410PublicKeyImporter{}
	keyImporters[reflect.TypeOf(&gostcsp.TripleDESKeyImportOpts{})] = &tripleDESKeyImporter{}
	keyImporters[reflect.TypeOf(&gostcsp.GOST28147KeyImportOpts{})] = &gost28147KeyImporter{}

	// Set the signers
	signers := make(map[reflect.Type]Signer)
	signers[reflect.TypeOf(&gost3410PrivateKey{})] = &gost3410Signer{nonces: nonces}

	// Set the verifiers
	verifiers := make(map[reflect.Type]Verifier)
	verifiers[reflect.TypeOf(&gost3410PrivateKey{})] = &gost3410PrivateKeyVerifier{}
	verifiers[reflect.TypeOf(&gost3410PublicKey{})] = &gost3410PublicKeyVerifier{}

	// Set the encryptors
	encryptors := make(map[reflect.Type]Encryptor)
	encryptors[reflect.TypeOf(&tripleDESKey{})] = &tripleDESEncryptor{}
	encryptors[reflect.TypeOf(&gost28147Key{})] = &gost28147GammaCryptor{}

	// Set the decryptors
	decryptors := make(map[reflect.Type]Decryptor)
	decryptors[reflect.TypeOf(&tripleDESKey{})] = &tripleDESDecryptor{}
	decryptors[reflect.TypeOf(&gost28147Key{})] = &gost28147GammaCryptor{}

	// Set the hashers
	hashers := make(map[reflect.Type]Hasher)
	hashers[reflect.TypeOf(&gostcsp.GOSTR3411Opts{})] = &gostr3411Hasher{}

	return &impl{
		keyGenerators: keyGenerators,
		keyImporters:  keyImporters,
		signers:       signers,
		verifiers:     verifiers,
		encryptors:    encryptors,
		decryptors:    decryptors,
		hashers:       hashers,
	}, nil
}

type impl struct {
	keyGenerators map[reflect.Type]KeyGenerator
	keyImporters  map[reflect.Type]KeyImporter
	signers       map[reflect.Type]Signer
	verifiers     map[reflect.Type]Verifier
	encryptors    map[reflect.Type]Encryptor
	decryptors    map[reflect.Type]Decryptor
	hashers       map[reflect.Type]Hasher
}

// KeyGen generates a key using opts.
func (csp *impl) KeyGen(opts gostcsp.KeyGenOpts) (gostcsp.Key, error) {
	if opts == nil {
		return nil, errors.New("Invalid Opts parameter. It must not be nil.")
	}

	keyGenerator, found := csp.keyGenerators[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'KeyGenOpts' provided [%v]", opts)
	}

	k, err := keyGenerator.KeyGen(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed generating key with opts [%v]", opts)
	}
	return k, nil
}

// KeyImport imports a key from its raw representation using opts.
func (csp *impl) KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (gostcsp.Key, error) {
	if raw == nil {
		return nil, errors.New("Invalid raw. It must not be nil.")
	}
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}

	keyImporter, found := csp.keyImporters[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'KeyImportOpts' provided [%v]", opts)
	}

	k, err := keyImporter.KeyImport(raw, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed importing key with opts [%v]", opts)
	}
	return k, nil
}

// Hash hashes messages msg using options opts.
func (csp *impl) Hash(msg []byte, opts gostcsp.HashOpts) ([]byte, error) {
	if opts == nil {
		opts = &gostcsp.GOSTR3411Opts{}
	}

	hasher, found := csp.hashers[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'HashOpt' provided [%v]", opts)
	}

	digest, err := hasher.Hash(msg, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed hashing with opts [%v]", opts)
	}
	return digest, nil
}

// GetHash returns an instance of hash.Hash using options opts.
func (csp *impl) GetHash(opts gostcsp.HashOpts) (hash.Hash, error) {
	if opts == nil {
		opts = &gostcsp.GOSTR3411Opts{}
	}

	hasher, found := csp.hashers[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'HashOpt' provided [%v]", opts)
	}

	h, err := hasher.GetHash(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed getting hash function with opts [%v]", opts)
	}
	return h, nil
}

// Sign signs message using key k.
func (csp *impl) Sign(k gostcsp.Key, message []byte, opts gostcsp.SignerOpts) ([]byte, error) {
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	if len(message) == 0 {
		return nil, errors.New("Invalid message. Cannot be empty.")
	}

	signer, found := csp.signers[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'SignKey' provided [%v]", k)
	}

	signature, err := signer.Sign(k, message, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed signing with opts [%v]", opts)
	}
	return signature, nil
}

// Verify verifies signature against key k and message.
func (csp *impl) Verify(k gostcsp.Key, signature, message []byte, opts gostcsp.SignerOpts) (bool, error) {
	if k == nil {
		return false, errors.New("Invalid Key. It must not be nil.")
	}
	if len(signature) == 0 {
		return false, errors.New("Invalid signature. Cannot be empty.")
	}
	if len(message) == 0 {
		return false, errors.New("Invalid message. Cannot be empty.")
	}

	verifier, found := csp.verifiers[reflect.TypeOf(k)]
	if !found {
		return false, errors.Errorf("Unsupported 'VerifyKey' provided [%v]", k)
	}

	valid, err := verifier.Verify(k, signature, message, opts)
	if err != nil {
		return false, errors.Wrapf(err, "Failed verifying with opts [%v]", opts)
	}
	return valid, nil
}

// Encrypt encrypts plaintext using key k.
func (csp *impl) Encrypt(k gostcsp.Key, plaintext []byte, opts gostcsp.EncrypterOpts) ([]byte, error) {
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}

	encryptor, found := csp.encryptors[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'EncryptKey' provided [%v]", k)
	}

	return encryptor.Encrypt(k, plaintext, opts)
}

// Decrypt decrypts ciphertext using key k.
func (csp *impl) Decrypt(k gostcsp.Key, ciphertext []byte, opts gostcsp.DecrypterOpts) ([]byte, error) {
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}

	decryptor, found := csp.decryptors[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'DecryptKey' provided [%v]", k)
	}

	plaintext, err := decryptor.Decrypt(k, ciphertext, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed decrypting with opts [%v]", opts)
	}
	return plaintext, nil
}

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
	"strings"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/gostcsp"
)

type gost3410KeyGenerator struct {
	nonces func() NonceSource
}

func (kg *gost3410KeyGenerator) KeyGen(opts gostcsp.KeyGenOpts) (gostcsp.Key, error) {
	kp, err := GenerateKeyPairWith(kg.nonces())
	if err != nil {
		return nil, errors.WithMessage(err, "Failed generating GOST R 34.10-2012 key pair")
	}
	return &gost3410PrivateKey{d: kp.PrivateKey}, nil
}

type gost3410PrivateKeyImporter struct{}

func (*gost3410PrivateKeyImporter) KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (gostcsp.Key, error) {
	hexKey, ok := raw.(string)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected a hex string.")
	}
	hexKey = strings.TrimSpace(hexKey)
	if _, err := parseHexScalar(hexKey, privateKeyHexLen, "private key"); err != nil {
		return nil, err
	}
	return &gost3410PrivateKey{d: strings.ToLower(hexKey)}, nil
}

type gost3410PublicKeyImporter struct{}

func (*gost3410PublicKeyImporter) KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (gostcsp.Key, error) {
	hexKey, ok := raw.(string)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected a hex string.")
	}
	qx, qy, err := parsePublicKey(hexKey)
	if err != nil {
		return nil, err
	}
	if !newCurvePoint(qx, qy, curveA, curveP).onCurve(curveB) {
		return nil, errors.Wrap(gostcsp.ErrInvalidParameter, "public point is not on the curve")
	}
	return &gost3410PublicKey{pub: strings.ToLower(strings.TrimSpace(hexKey))}, nil
}

type tripleDESKeyImporter struct{}

func (*tripleDESKeyImporter) KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (gostcsp.Key, error) {
	keyset, ok := raw.(string)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected a hex string.")
	}
	ks, err := ParseTripleDESKeyset(keyset)
	if err != nil {
		return nil, err
	}
	return &tripleDESKey{ks: ks, raw: keyset}, nil
}

type gost28147KeyImporter struct{}

func (*gost28147KeyImporter) KeyImport(raw interface{}, opts gostcsp.KeyImportOpts) (gostcsp.Key, error) {
	material, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected a byte slice.")
	}
	if len(material) != gost28147KeySize {
		return nil, errors.Wrapf(gostcsp.ErrInvalidParameter, "GOST 28147-89 key must be [%d] bytes, got [%d]", gost28147KeySize, len(material))
	}
	k := &gost28147Key{}
	copy(k.key[:], material)
	return k, nil
}

// gost3410Signer signs the message bytes. The scheme hashes internally, so
// unlike digest-oriented providers the caller passes the message itself.
type gost3410Signer struct {
	nonces func() NonceSource
}

func (s *gost3410Signer) Sign(k gostcsp.Key, message []byte, opts gostcsp.SignerOpts) ([]byte, error) {
	sig, err := SignMessageWith(string(message), k.(*gost3410PrivateKey).d, s.nonces())
	if err != nil {
		return nil, err
	}
	return []byte(sig), nil
}

type gost3410PrivateKeyVerifier struct{}

func (*gost3410PrivateKeyVerifier) Verify(k gostcsp.Key, signature, message []byte, opts gostcsp.SignerOpts) (bool, error) {
	pub, err := k.(*gost3410PrivateKey).PublicKey()
	if err != nil {
		return false, err
	}
	return CheckSign(string(message), string(signature), pub.(*gost3410PublicKey).pub)
}

type gost3410PublicKeyVerifier struct{}

func (*gost3410PublicKeyVerifier) Verify(k gostcsp.Key, signature, message []byte, opts gostcsp.SignerOpts) (bool, error) {
	return CheckSign(string(message), string(signature), k.(*gost3410PublicKey).pub)
}

type tripleDESEncryptor struct{}

func (*tripleDESEncryptor) Encrypt(k gostcsp.Key, plaintext []byte, opts gostcsp.EncrypterOpts) ([]byte, error) {
	return k.(*tripleDESKey).ks.EncryptFrame(plaintext)
}

type tripleDESDecryptor struct{}

func (*tripleDESDecryptor) Decrypt(k gostcsp.Key, ciphertext []byte, opts gostcsp.DecrypterOpts) ([]byte, error) {
	return k.(*tripleDESKey).ks.DecryptFrame(ciphertext)
}

// gost28147GammaCryptor serves both directions: the CBC-gamma stream is its
// own inverse.
type gost28147GammaCryptor struct{}

func (*gost28147GammaCryptor) crypt(k gostcsp.Key, data []byte, iv []byte) ([]byte, error) {
	key := k.(*gost28147Key)
	return EncryptGOST28147Gamma(key.key[:], iv, data, nil)
}

func (c *gost28147GammaCryptor) Encrypt(k gostcsp.Key, plaintext []byte, opts gostcsp.EncrypterOpts) ([]byte, error) {
	gammaOpts, ok := opts.(*gostcsp.GOST28147GammaOpts)
	if !ok {
		return nil, errors.New("Invalid options. Expected *GOST28147GammaOpts.")
	}
	return c.crypt(k, plaintext, gammaOpts.IV)
}

func (c *gost28147GammaCryptor) Decrypt(k gostcsp.Key, ciphertext []byte, opts gostcsp.DecrypterOpts) ([]byte, error) {
	gammaOpts, ok := opts.(*gostcsp.GOST28147GammaOpts)
	if !ok {
		return nil, errors.New("Invalid options. Expected *GOST28147GammaOpts.")
	}
	return c.crypt(k, ciphertext, gammaOpts.IV)
}

type gostr3411Hasher struct{}

func (*gostr3411Hasher) Hash(msg []byte, opts gostcsp.HashOpts) ([]byte, error) {
	d := GOSTR3411Digest(msg)
	return d[:], nil
}

func (*gostr3411Hasher) GetHash(opts gostcsp.HashOpts) (hash.Hash, error) {
	return NewGOSTR3411(), nil
}

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
	"math/big"
	"time"

	"github.com/seehuhn/mt19937"
)

// NonceSource yields 256-bit scalars for signature nonces and key
// generation. Implementations are not safe for concurrent use; a source is
// owned by one operation at a time.
type NonceSource interface {
	Scalar() *big.Int
}

// mtNonceSource is the compatibility source: a Mersenne-Twister generator
// seeded from the wall clock, matching the behavior the deployed
// certificate authority was built with. It is NOT cryptographically strong;
// callers that can break compatibility should inject their own source.
type mtNonceSource struct {
	mt *mt19937.MT19937
}

// NewCompatNonceSource returns a fresh wall-clock-seeded compatibility
// source. Seeded runs stay deterministic, which the test vectors rely on;
// do not silently substitute a stronger generator here.
func NewCompatNonceSource() NonceSource {
	mt := mt19937.New()
	mt.Seed(time.Now().UnixNano())
	return &mtNonceSource{mt: mt}
}

// NewSeededNonceSource returns a deterministic source for tests and
// reproducible runs.
func NewSeededNonceSource(seed int64) NonceSource {
	mt := mt19937.New()
	mt.Seed(seed)
	return &mtNonceSource{mt: mt}
}

// Scalar assembles 256 bits from four generator words, big-endian.
func (s *mtNonceSource) Scalar() *big.Int {
	var buf [32]byte
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint64(buf[8*i:], s.mt.Uint64())
	}
	return new(big.Int).SetBytes(buf[:])
}

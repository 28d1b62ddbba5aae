/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gostcsp

import "errors"

// Error kinds surfaced by the provider. Callers match them with errors.Is;
// implementations attach context by wrapping.
var (
	// ErrInvalidParameter covers wrong-length or non-hex keys and
	// signatures, scalars outside [1, q), points off the curve, and
	// undefined modular inverses.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBufferShape covers ciphertext whose length is not a non-zero
	// multiple of the block size. The hash has no finalized state (Sum
	// works on a copy), so no hash operation reports it.
	ErrBufferShape = errors.New("invalid buffer shape")

	// ErrIntegrityFailure signals an internal inconsistency, such as the
	// 3DES self-roundtrip mismatch or a malformed base64 payload.
	ErrIntegrityFailure = errors.New("integrity failure")

	// ErrVerifyFailed reports a signature that does not check out.
	ErrVerifyFailed = errors.New("verification failed")
)

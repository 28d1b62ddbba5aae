/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/3divi/nuitrack-licensing/common/flogging"
	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
)

var logger = flogging.MustGetLogger("query")

// Request is the sparse query envelope: an opaque salt echoed back to the
// caller and the call payload. The salt is kept as raw JSON so that numeric
// and string salts round-trip verbatim.
type Request struct {
	Salt    json.RawMessage `json:"salt"`
	Payload Payload         `json:"payload"`
}

// Payload selects the call and its arguments.
type Payload struct {
	Call    string `json:"call"`
	Feature string `json:"feature"`
	Version string `json:"version"`
	Field   string `json:"field"`
	Server  string `json:"server"`
}

// Response carries the encrypted reply: base64 over the 3DES frame of the
// rendered JSON.
type Response struct {
	Payload string `json:"payload"`
}

// FeatureSource answers feature queries. The production implementation
// fronts the vendor licensing SDK; tests supply their own.
type FeatureSource interface {

	// FeatureInfo returns the attribute map of the named feature as served
	// by contact server. Failures carrying a vendor status code should be
	// reported as *FeatureError.
	FeatureInfo(feature, version, server string) (map[string]string, error)
}

// FeatureError is a feature-source failure with the vendor status code that
// is surfaced to the caller inside the encrypted reply.
type FeatureError struct {
	Code int
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature query failed with code [%d]", e.Code)
}

// Responder processes query requests and produces encrypted responses.
type Responder struct {
	keyset   *sw.TripleDESKeyset
	features FeatureSource
}

// NewResponder wires a responder to its keyset and feature source.
func NewResponder(keyset *sw.TripleDESKeyset, features FeatureSource) *Responder {
	return &Responder{keyset: keyset, features: features}
}

// Process serves one request. Unknown calls are rejected; feature-source
// failures are still answered, encrypted, with an error status.
func (r *Responder) Process(req Request) (Response, error) {
	if req.Payload.Call != "FeatureInfo" {
		return Response{}, errors.Errorf("unknown call [%s]", req.Payload.Call)
	}

	salt := req.Salt
	if len(salt) == 0 {
		salt = json.RawMessage(`""`)
	}

	var reply string
	fields, err := r.features.FeatureInfo(req.Payload.Feature, req.Payload.Version, req.Payload.Server)
	if err != nil {
		code := 1
		var fe *FeatureError
		if errors.As(err, &fe) {
			code = fe.Code
		}
		logger.Warnf("feature query for [%s] failed: %s", req.Payload.Feature, err)
		reply = fmt.Sprintf(`{"status":"error", "code":"%d", "salt":%s}`, code, salt)
	} else {
		value, ok := fields[req.Payload.Field]
		if !ok {
			return Response{}, errors.Errorf("feature [%s] has no field [%s]", req.Payload.Feature, req.Payload.Field)
		}
		reply = fmt.Sprintf(`{"status":"ok", "salt":%s, "%s":%s}`, salt, req.Payload.Field, value)
	}

	payload, err := EncodePayload(r.keyset, []byte(reply))
	if err != nil {
		return Response{}, err
	}
	return Response{Payload: payload}, nil
}

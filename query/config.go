/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/3divi/nuitrack-licensing/gostcsp/sw"
)

// LoadKeyset resolves the query-service 3DES keyset from configuration: a
// querysvc.yaml in configPath (or the working directory), overridable with
// QUERYSVC_KEYSET in the environment. The keyset value is the
// 64-hex-character k1‖k2‖k3‖iv string.
func LoadKeyset(configPath string) (*sw.TripleDESKeyset, error) {
	v := viper.New()
	v.SetEnvPrefix("querysvc")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigName("querysvc")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// The environment may still carry the keyset.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed reading query-service config")
		}
	}

	keyset := v.GetString("keyset")
	if keyset == "" {
		return nil, errors.New("query-service keyset is not configured")
	}
	return sw.ParseTripleDESKeyset(keyset)
}

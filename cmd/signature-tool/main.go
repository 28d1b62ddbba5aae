/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/3divi/nuitrack-licensing/internal/signaturetool"
)

func main() {
	// For environment variables.
	viper.SetEnvPrefix("nuitrack")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cmd := signaturetool.Cmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

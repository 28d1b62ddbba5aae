/*
Copyright 3DiVi Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signaturetool implements the device-signature signing CLI: it
// binds a device signature to a certificate issued with the private
// authority key and stores it into the license descriptor, or verifies an
// existing certificate.
package signaturetool

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/3divi/nuitrack-licensing/internal/devicesig"
	"github.com/3divi/nuitrack-licensing/licensing"
)

type options struct {
	signatureGenerator string
	signature          string
	privateKeyFile     string
	licenseFile        string
	publicKeyFile      string
	verify             bool
	certificate        string
}

// Cmd returns the signature-tool root command.
func Cmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "signature-tool [-p path_to_signature_generator] [-s device_signature] -k key -n license_file",
		Short:         "Sign device signatures into license certificates",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Key file locations may come from the environment
			// (NUITRACK_PUBLIC_KEY, NUITRACK_PRIVATE_KEY) when the flags
			// are not given.
			if opts.publicKeyFile == "" {
				opts.publicKeyFile = viper.GetString("public_key")
			}
			if opts.privateKeyFile == "" {
				opts.privateKeyFile = viper.GetString("private_key")
			}
			if opts.verify {
				return runVerify(cmd, opts)
			}
			return runSign(cmd, opts)
		},
	}

	opts.addFlags(cmd.Flags())
	return cmd
}

func (opts *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&opts.signatureGenerator, "signature-generator", "p", "", "set path to android device signature generator (likely build_android/bin/nuitrack_signature_generator)")
	flags.StringVarP(&opts.signature, "signature", "s", "", "device signature")
	flags.StringVarP(&opts.privateKeyFile, "private-key", "k", "", "set path to private key file (likely nuitrack_private.key)")
	flags.StringVarP(&opts.licenseFile, "license-file", "n", "", "set path to license file")
	flags.BoolVarP(&opts.verify, "verify", "v", false, "verify certificate")
	flags.StringVarP(&opts.certificate, "certificate", "c", "", "verifying certificate")
	flags.StringVar(&opts.publicKeyFile, "public-key", "", "set path to public key file")
}

func runVerify(cmd *cobra.Command, opts *options) error {
	if opts.signature == "" {
		cmd.Usage()
		return errors.New("Specify signature")
	}
	if opts.certificate == "" {
		cmd.Usage()
		return errors.New("Specify certificate")
	}
	if opts.publicKeyFile == "" {
		cmd.Usage()
		return errors.New("Specify public key file")
	}

	publicKey, err := readKeyToken(opts.publicKeyFile)
	if err != nil {
		return errors.New("Can't read public key file")
	}

	issuer, err := licensing.NewIssuer()
	if err != nil {
		return err
	}

	matched, err := issuer.Check(opts.signature, opts.certificate, publicKey)
	if err != nil {
		return err
	}
	if !matched {
		fmt.Fprintln(cmd.ErrOrStderr(), "Verify certificate: failed")
		return errors.New("certificate verification failed")
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Verify certificate: OK")
	return nil
}

func runSign(cmd *cobra.Command, opts *options) error {
	stderr := cmd.ErrOrStderr()

	deviceSignature := opts.signature
	var err error
	switch {
	case deviceSignature != "":
	case opts.signatureGenerator != "":
		fmt.Fprintln(stderr, "Getting android device signature...")
		deviceSignature, err = devicesig.FromGenerator(opts.signatureGenerator)
		if err != nil {
			return err
		}
	default:
		fmt.Fprintln(stderr, "Signature generator not specified, getting linux device signature...")
		deviceSignature, err = devicesig.Linux()
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(stderr, "Device signature: %s\n", deviceSignature)

	if opts.privateKeyFile == "" || opts.licenseFile == "" {
		cmd.Usage()
		return errors.New("Specify private key and license file")
	}

	privateKey, err := readKeyToken(opts.privateKeyFile)
	if err != nil {
		return errors.New("Can't read private key file")
	}

	publicKey := ""
	if opts.publicKeyFile != "" {
		publicKey, err = readKeyToken(opts.publicKeyFile)
		if err != nil {
			return errors.New("Can't read public key file")
		}
	}

	issuer, err := licensing.NewIssuer()
	if err != nil {
		return err
	}

	certificate, err := issuer.Issue(opts.licenseFile, deviceSignature, privateKey, publicKey)
	if err != nil {
		fmt.Fprintln(stderr, "Certificate saving status: Failed")
		return err
	}
	fmt.Fprintf(stderr, "Certificate = %s\n", certificate)
	fmt.Fprintln(stderr, "Certificate saving status: OK")
	return nil
}

// readKeyToken reads the first whitespace-delimited token of a key file.
func readKeyToken(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return "", errors.Errorf("key file %s is empty", path)
	}
	return fields[0], nil
}

// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/assetcert-foundation/assetcert/cmd/assetcert/cli"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

func witnessCommand() *cli.Command {
	var assetDir, configPath, requestPath, acceptEncoding string

	return &cli.Command{
		Name:    "witness",
		Summary: "Route a request and print its witness and expression path",
		Usage:   "assetcert witness --dir <assets> --config <file> --path <request path>",
		Description: `
Certifies the asset directory, routes a GET request for the given
path, and prints the selected response metadata, the expression path,
and the hex CBOR witness a verifier would check against the root.
`,
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("witness", pflag.ContinueOnError)
			flags.StringVar(&assetDir, "dir", ".", "asset directory")
			flags.StringVar(&configPath, "config", "", "configuration file (yaml, json, or jsonc)")
			flags.StringVar(&requestPath, "path", "", "request path to route")
			flags.StringVar(&acceptEncoding, "accept-encoding", "", "Accept-Encoding header to send")
			return flags
		},
		Run: func(args []string) error {
			if configPath == "" || requestPath == "" {
				return fmt.Errorf("--config and --path are required")
			}
			r, err := buildRouter(assetDir, configPath, false)
			if err != nil {
				return err
			}

			request := httpcert.Get(requestPath)
			if acceptEncoding != "" {
				request.WithHeader("Accept-Encoding", acceptEncoding)
			}
			result, err := r.ServeAsset(request)
			if err != nil {
				return err
			}

			fmt.Printf("root      %s\n", reprhash.FormatHash(r.RootHash()))
			fmt.Printf("status    %d\n", result.Response.StatusCode)
			for _, header := range result.Response.Headers {
				fmt.Printf("header    %s: %s\n", header.Name, header.Value)
			}
			fmt.Printf("body      %d bytes\n", len(result.Response.Body))
			fmt.Printf("expr_path %s\n", strings.Join(result.ExprPath, " / "))
			fmt.Printf("witness   %s\n", hex.EncodeToString(result.WitnessCBOR))
			return nil
		},
	}
}

// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/assetcert-foundation/assetcert/cmd/assetcert/cli"
	"github.com/assetcert-foundation/assetcert/lib/codec"
)

func cborCommand() *cli.Command {
	return &cli.Command{
		Name:    "cbor",
		Summary: "Inspect CBOR payloads",
		Subcommands: []*cli.Command{
			{
				Name:    "diag",
				Summary: "Print CBOR diagnostic notation for a hex payload",
				Usage:   "assetcert cbor diag <hex>",
				Run: func(args []string) error {
					if len(args) != 1 {
						return fmt.Errorf("expected exactly one hex argument")
					}
					data, err := hex.DecodeString(strings.TrimSpace(args[0]))
					if err != nil {
						return fmt.Errorf("decoding hex: %w", err)
					}
					diagnostic, err := codec.Diagnose(data)
					if err != nil {
						return fmt.Errorf("diagnosing CBOR: %w", err)
					}
					fmt.Println(diagnostic)
					return nil
				},
			},
		},
	}
}

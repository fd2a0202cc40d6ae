// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/assetcert-foundation/assetcert/cmd/assetcert/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root := &cli.Command{
		Name:    "assetcert",
		Summary: "Certify static web assets and inspect certification state",
		Description: `
assetcert builds the certified response set for a directory of static
assets against a declarative configuration file, and prints the root
hash, witnesses, and CBOR payloads that the serving host publishes.
`,
		Subcommands: []*cli.Command{
			certifyCommand(),
			witnessCommand(),
			cborCommand(),
		},
	}
	return root.Execute(os.Args[1:])
}

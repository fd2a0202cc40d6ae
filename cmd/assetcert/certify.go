// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/assetcert-foundation/assetcert/cmd/assetcert/cli"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
	"github.com/assetcert-foundation/assetcert/lib/router"
)

// buildRouter loads assets and configs and certifies them into a
// fresh router. Shared by the certify and witness commands.
func buildRouter(assetDir, configPath string, verbose bool) (*router.Router, error) {
	configs, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	assets, err := loadAssetDir(assetDir)
	if err != nil {
		return nil, err
	}

	var logger *slog.Logger
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	r := router.New(logger)
	if err := r.CertifyAssets(assets, configs); err != nil {
		return nil, err
	}
	return r, nil
}

// loadAssetDir reads every regular file under dir as an asset whose
// path is the slash-separated path relative to dir.
func loadAssetDir(dir string) ([]router.Asset, error) {
	var assets []router.Asset
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading asset %s: %w", path, err)
		}
		relative, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		assets = append(assets, router.NewAsset(filepath.ToSlash(relative), content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking asset directory %s: %w", dir, err)
	}
	return assets, nil
}

func certifyCommand() *cli.Command {
	var assetDir, configPath string
	var verbose bool

	return &cli.Command{
		Name:    "certify",
		Summary: "Certify an asset directory and print the root hash",
		Usage:   "assetcert certify --dir <assets> --config <file>",
		Description: `
Reads every file under the asset directory, certifies it against the
configuration file, and prints the root hash followed by one line per
certified asset or fallback variant. Redirects are not listed.
`,
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("certify", pflag.ContinueOnError)
			flags.StringVar(&assetDir, "dir", ".", "asset directory")
			flags.StringVar(&configPath, "config", "", "configuration file (yaml, json, or jsonc)")
			flags.BoolVar(&verbose, "verbose", false, "log resolution decisions to stderr")
			return flags
		},
		Run: func(args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			r, err := buildRouter(assetDir, configPath, verbose)
			if err != nil {
				return err
			}

			fmt.Printf("root %s\n", reprhash.FormatHash(r.RootHash()))
			for _, info := range r.GetAssets() {
				kind := "asset"
				if info.Fallback {
					kind = "fallback"
				}
				fmt.Printf("%-8s %s encoding=%s chunk=%d size=%d %s\n",
					kind, info.Path, info.Encoding, info.ChunkIndex, info.Size, info.BodyRef)
			}
			return nil
		},
	}
}

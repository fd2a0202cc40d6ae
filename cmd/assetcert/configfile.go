// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

// configFile is the on-disk certification configuration. YAML and
// JSON-with-comments are both accepted; JSONC is stripped to JSON,
// which the YAML parser handles natively.
type configFile struct {
	Configs []configEntry `yaml:"configs"`
}

// configEntry is one declarative entry. Exactly one of File, Pattern,
// or Redirect must be set.
type configEntry struct {
	File        string              `yaml:"file"`
	Pattern     string              `yaml:"pattern"`
	ContentType string              `yaml:"content_type"`
	Headers     map[string]string   `yaml:"headers"`
	FallbackFor []fallbackEntry     `yaml:"fallback_for"`
	AliasedBy   []string            `yaml:"aliased_by"`
	Encodings   []string            `yaml:"encodings"`
	Redirect    *redirectEntry      `yaml:"redirect"`
}

type fallbackEntry struct {
	Scope  string `yaml:"scope"`
	Status int    `yaml:"status"`
}

type redirectEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Kind string `yaml:"kind"`
}

// loadConfigFile reads and converts a configuration file into router
// configs.
func loadConfigFile(path string) ([]assetcfg.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" || ext == ".jsonc" {
		data = jsonc.ToJSON(data)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	configs := make([]assetcfg.Config, 0, len(file.Configs))
	for i, entry := range file.Configs {
		config, err := entry.toConfig()
		if err != nil {
			return nil, fmt.Errorf("config entry %d: %w", i, err)
		}
		configs = append(configs, config)
	}
	return configs, nil
}

func (e configEntry) toConfig() (assetcfg.Config, error) {
	set := 0
	if e.File != "" {
		set++
	}
	if e.Pattern != "" {
		set++
	}
	if e.Redirect != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of file, pattern, redirect must be set")
	}

	headers := headerList(e.Headers)
	encodings, err := encodingList(e.Encodings)
	if err != nil {
		return nil, err
	}

	switch {
	case e.Redirect != nil:
		var kind assetcfg.RedirectKind
		switch e.Redirect.Kind {
		case "permanent":
			kind = assetcfg.RedirectPermanent
		case "temporary":
			kind = assetcfg.RedirectTemporary
		default:
			return nil, fmt.Errorf("redirect kind %q (want permanent or temporary)", e.Redirect.Kind)
		}
		return assetcfg.RedirectConfig{
			From:    e.Redirect.From,
			To:      e.Redirect.To,
			Kind:    kind,
			Headers: headers,
		}, nil

	case e.Pattern != "":
		return assetcfg.PatternConfig{
			Pattern:     e.Pattern,
			ContentType: e.ContentType,
			Headers:     headers,
			Encodings:   encodings,
		}, nil

	default:
		fallbacks := make([]assetcfg.FallbackConfig, 0, len(e.FallbackFor))
		for _, f := range e.FallbackFor {
			fallbacks = append(fallbacks, assetcfg.FallbackConfig{
				Scope:      f.Scope,
				StatusCode: f.Status,
			})
		}
		return assetcfg.FileConfig{
			Path:        e.File,
			ContentType: e.ContentType,
			Headers:     headers,
			FallbackFor: fallbacks,
			AliasedBy:   e.AliasedBy,
			Encodings:   encodings,
		}, nil
	}
}

// headerList converts the header map into a deterministic ordered
// list. YAML maps are unordered, so keys sort alphabetically.
func headerList(headers map[string]string) []httpcert.Header {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]httpcert.Header, 0, len(names))
	for _, name := range names {
		list = append(list, httpcert.Header{Name: name, Value: headers[name]})
	}
	return list
}

func encodingList(names []string) ([]assetcfg.EncodingPair, error) {
	pairs := make([]assetcfg.EncodingPair, 0, len(names))
	for _, name := range names {
		encoding, ok := assetcfg.ParseAcceptEncoding(name)
		if !ok || encoding == assetcfg.EncodingIdentity {
			return nil, fmt.Errorf("unknown encoding %q", name)
		}
		pairs = append(pairs, encoding.DefaultPair())
	}
	return pairs, nil
}

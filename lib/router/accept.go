// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"strconv"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

// acceptableEncodings computes the encodings to try for a request, in
// server priority order. Client preference decides membership; the
// server's priority order decides ranking. Identity is acceptable
// unless the client explicitly refuses it (identity;q=0, or *;q=0
// without identity listed). Without an Accept-Encoding header only
// identity is acceptable.
func acceptableEncodings(request *httpcert.Request) []assetcfg.Encoding {
	header, _ := request.Header("Accept-Encoding")

	explicit := make(map[assetcfg.Encoding]float64)
	wildcard := -1.0

	for _, token := range strings.Split(header, ",") {
		name, quality := parseEncodingToken(token)
		if name == "" {
			continue
		}
		if name == "*" {
			wildcard = quality
			continue
		}
		if encoding, known := assetcfg.ParseAcceptEncoding(name); known {
			explicit[encoding] = quality
		}
	}

	acceptable := func(encoding assetcfg.Encoding) bool {
		if quality, listed := explicit[encoding]; listed {
			return quality > 0
		}
		if wildcard >= 0 {
			return wildcard > 0
		}
		return encoding == assetcfg.EncodingIdentity
	}

	var result []assetcfg.Encoding
	for _, encoding := range assetcfg.PriorityOrder {
		if acceptable(encoding) {
			result = append(result, encoding)
		}
	}
	return result
}

// parseEncodingToken splits one Accept-Encoding list member into its
// lowercase coding name and quality value (1 when absent, 0 when
// unparseable).
func parseEncodingToken(token string) (string, float64) {
	parts := strings.Split(token, ";")
	name := strings.ToLower(strings.TrimSpace(parts[0]))

	quality := 1.0
	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		value, found := strings.CutPrefix(param, "q=")
		if !found {
			value, found = strings.CutPrefix(param, "Q=")
		}
		if !found {
			continue
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return name, 0
		}
		quality = parsed
	}
	return name, quality
}

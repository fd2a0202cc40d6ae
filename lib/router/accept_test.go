// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"slices"
	"testing"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

func acceptRequest(header string) *httpcert.Request {
	request := httpcert.Get("/")
	if header != "" {
		request.WithHeader("Accept-Encoding", header)
	}
	return request
}

func TestAcceptableEncodings(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   []assetcfg.Encoding
	}{
		{
			"no header means identity only",
			"",
			[]assetcfg.Encoding{assetcfg.EncodingIdentity},
		},
		{
			"client order does not override server priority",
			"gzip, br",
			[]assetcfg.Encoding{assetcfg.EncodingBrotli, assetcfg.EncodingGzip, assetcfg.EncodingIdentity},
		},
		{
			"full set",
			"br, zstd, gzip, deflate, identity",
			[]assetcfg.Encoding{assetcfg.EncodingBrotli, assetcfg.EncodingZstd, assetcfg.EncodingGzip, assetcfg.EncodingDeflate, assetcfg.EncodingIdentity},
		},
		{
			"wildcard accepts everything",
			"*",
			[]assetcfg.Encoding{assetcfg.EncodingBrotli, assetcfg.EncodingZstd, assetcfg.EncodingGzip, assetcfg.EncodingDeflate, assetcfg.EncodingIdentity},
		},
		{
			"q=0 refuses a coding",
			"gzip;q=0, br",
			[]assetcfg.Encoding{assetcfg.EncodingBrotli, assetcfg.EncodingIdentity},
		},
		{
			"identity explicitly refused",
			"gzip, identity;q=0",
			[]assetcfg.Encoding{assetcfg.EncodingGzip},
		},
		{
			"wildcard zero refuses identity too",
			"gzip, *;q=0",
			[]assetcfg.Encoding{assetcfg.EncodingGzip},
		},
		{
			"identity survives wildcard zero when listed",
			"identity, *;q=0",
			[]assetcfg.Encoding{assetcfg.EncodingIdentity},
		},
		{
			"unknown codings ignored",
			"compress, gzip",
			[]assetcfg.Encoding{assetcfg.EncodingGzip, assetcfg.EncodingIdentity},
		},
		{
			"whitespace and case tolerated",
			" GZIP ; q=0.5 , BR ",
			[]assetcfg.Encoding{assetcfg.EncodingBrotli, assetcfg.EncodingGzip, assetcfg.EncodingIdentity},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := acceptableEncodings(acceptRequest(tc.header))
			if !slices.Equal(got, tc.want) {
				t.Errorf("acceptableEncodings(%q) = %v, want %v", tc.header, got, tc.want)
			}
		})
	}
}

func TestParseRangeStart(t *testing.T) {
	cases := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{"bytes=0-", 0, false},
		{"bytes=2097152-", 2097152, false},
		{"bytes=2097152-3145727", 2097152, false},
		{" bytes=42-", 42, false},
		{"chars=0-", 0, true},
		{"bytes=abc-", 0, true},
		{"bytes=-500", 0, true},
		{"bytes=12", 0, true},
	}
	for _, tc := range cases {
		got, err := parseRangeStart(tc.header)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseRangeStart(%q) error = %v, wantErr %v", tc.header, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("parseRangeStart(%q) = %d, want %d", tc.header, got, tc.want)
		}
	}
}

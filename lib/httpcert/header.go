// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package httpcert

import (
	"encoding/base64"
	"fmt"
)

// CertificateVersion is the certification protocol version carried in
// the IC-Certificate header.
const CertificateVersion = 2

// CertificateHeader assembles the IC-Certificate header value from
// the host-supplied data certificate, the CBOR-encoded witness, and
// the CBOR-encoded expression path:
//
//	certificate=:<b64>:, tree=:<b64>:, version=2, expr_path=:<b64>:
//
// Each field is standard base64 wrapped in colons (RFC 8941 byte
// sequences). The router returns the raw parts; the caller invokes
// this after fetching the data certificate from the host.
func CertificateHeader(certificate, witnessCBOR, exprPathCBOR []byte) string {
	encode := base64.StdEncoding.EncodeToString
	return fmt.Sprintf("certificate=:%s:, tree=:%s:, version=%d, expr_path=:%s:",
		encode(certificate), encode(witnessCBOR), CertificateVersion, encode(exprPathCBOR))
}

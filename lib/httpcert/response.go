// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package httpcert

import (
	"slices"
	"strings"
)

// Header is one response or request header. Order is preserved
// wherever headers travel in this module; name comparison is always
// case-insensitive.
type Header struct {
	Name  string
	Value string
}

// Response is an HTTP response with an ordered header list.
type Response struct {
	StatusCode int
	Headers    []Header
	Body       []byte
}

// OK returns a 200 response.
func OK(body []byte, headers ...Header) *Response {
	return &Response{StatusCode: 200, Headers: headers, Body: body}
}

// NotFound returns a 404 response.
func NotFound(body []byte, headers ...Header) *Response {
	return &Response{StatusCode: 404, Headers: headers, Body: body}
}

// MethodNotAllowed returns a 405 response.
func MethodNotAllowed(body []byte, headers ...Header) *Response {
	return &Response{StatusCode: 405, Headers: headers, Body: body}
}

// RangeNotSatisfiable returns a 416 response.
func RangeNotSatisfiable(body []byte, headers ...Header) *Response {
	return &Response{StatusCode: 416, Headers: headers, Body: body}
}

// MovedPermanently returns a 301 response with a Location header.
func MovedPermanently(location string, headers ...Header) *Response {
	return &Response{
		StatusCode: 301,
		Headers:    append(headers, Header{Name: "Location", Value: location}),
	}
}

// TemporaryRedirect returns a 307 response with a Location header.
func TemporaryRedirect(location string, headers ...Header) *Response {
	return &Response{
		StatusCode: 307,
		Headers:    append(headers, Header{Name: "Location", Value: location}),
	}
}

// AddHeader appends a header, preserving order.
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// Header returns the first header with the given name,
// case-insensitively, and whether one exists.
func (r *Response) Header(name string) (string, bool) {
	return lookupHeader(r.Headers, name)
}

// HasHeader reports whether a header with the given name exists.
func (r *Response) HasHeader(name string) bool {
	_, present := r.Header(name)
	return present
}

// Clone returns a deep copy. The router stores responses by value so
// later mutations of caller-supplied data cannot change what was
// certified.
func (r *Response) Clone() *Response {
	return &Response{
		StatusCode: r.StatusCode,
		Headers:    slices.Clone(r.Headers),
		Body:       slices.Clone(r.Body),
	}
}

func lookupHeader(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pemfile converts between DER data and its PEM representation. A PEM
// block consists of a "-----BEGIN <label>-----" line, a Base64 body, and a
// matching "-----END <label>-----" line.
package pemfile

import (
	"bytes"
	"encoding/pem"
	"errors"
	"io"
)

// ErrMalformedPEM indicates that the input does not contain a complete PEM
// block.
var ErrMalformedPEM = errors.New("pemfile: malformed PEM data")

var beginMarker = []byte("-----BEGIN ")

// IsPEM reports whether b looks like PEM data, i.e. it contains a BEGIN
// marker.
func IsPEM(b []byte) bool {
	return bytes.Contains(b, beginMarker)
}

// Decode finds the first PEM block in b and returns its label, the decoded DER
// data, and the remainder of b following the block. Data preceding the block
// is ignored. If b does not contain a complete block with valid Base64 body,
// the error is ErrMalformedPEM.
func Decode(b []byte) (label string, der []byte, rest []byte, err error) {
	block, rest := pem.Decode(b)
	if block == nil {
		return "", nil, b, ErrMalformedPEM
	}
	return block.Type, block.Bytes, rest, nil
}

// Encode writes der as a PEM block with the specified label to w.
func Encode(w io.Writer, label string, der []byte) error {
	return pem.Encode(w, &pem.Block{Type: label, Bytes: der})
}

// EncodeToMemory returns der as a PEM block with the specified label.
func EncodeToMemory(label string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: label, Bytes: der})
}

// Copyright 2025 Interview Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package extract turns uploaded profile documents into plain text.
// Text and markdown files are decoded leniently as UTF-8; PDF uploads are
// rejected with a hint since no PDF text extraction is bundled.
package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat signals a file type the extractor cannot read.
	ErrUnsupportedFormat = errors.New("PDF support not available, upload a UTF-8 text or markdown file instead")
	// ErrDecodeFailure signals bytes that are not usable UTF-8 text.
	ErrDecodeFailure = errors.New("unable to decode file as UTF-8 text")
	// ErrEmptyDocument signals a file with no extractable content.
	ErrEmptyDocument = errors.New("uploaded file appears empty")
)

// Text extracts plain text from uploaded bytes. filename and contentType
// guide format detection; unknown formats fall back to a UTF-8 decode.
func Text(data []byte, filename, contentType string) (string, error) {
	name := strings.ToLower(filename)
	ctype := strings.ToLower(contentType)

	if strings.HasSuffix(name, ".pdf") || ctype == "application/pdf" {
		return "", ErrUnsupportedFormat
	}

	text, ok := decodeLenient(data)
	if !ok {
		return "", ErrDecodeFailure
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// decodeLenient drops invalid UTF-8 bytes, mirroring a best-effort decode.
// It reports failure when less than half of the input survives, which means
// the upload was binary rather than text with stray bytes.
func decodeLenient(data []byte) (string, bool) {
	if utf8.Valid(data) {
		return string(data), true
	}

	var b strings.Builder
	b.Grow(len(data))
	kept := 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		b.WriteRune(r)
		kept += size
		i += size
	}
	if len(data) > 0 && kept*2 < len(data) {
		return "", false
	}
	return b.String(), true
}

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

// Package mermaid repairs model-generated mermaid source so it renders
// cleanly. The pipeline is an ordered list of pure text transforms; each
// transform leaves its input unchanged when it finds nothing to fix, and
// running the whole pipeline twice yields the same output as running it
// once.
package mermaid

import (
	"errors"
	"strings"
)

// MaxSourceSize is the hard limit on diagram source length. Callers apply
// it before repair.
const MaxSourceSize = 40000

// ErrTooLarge signals diagram source above MaxSourceSize.
var ErrTooLarge = errors.New("diagram too large")

// Options controls the final styling step of the repair pipeline.
type Options struct {
	// Theme is a mermaid theme name. Empty and "default" inject nothing.
	Theme string
	// StylePreset selects the full styled directive block. Empty and
	// "default" fall back to plain theme injection.
	StylePreset string
}

// CheckSize validates the source against MaxSourceSize.
func CheckSize(source string) error {
	if len(source) > MaxSourceSize {
		return ErrTooLarge
	}
	return nil
}

// StripFence removes one surrounding markdown code fence, if present. The
// language tag on the opening fence is discarded with it.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	body := strings.Join(lines[1:], "\n")
	if strings.HasSuffix(strings.TrimRight(body, " \t\n"), "```") {
		body = body[:strings.LastIndex(body, "```")]
		body = strings.TrimRight(body, " \t\n")
	}
	return body
}

// Repair runs the full pipeline over one diagram source. The caller is
// responsible for the size guard (CheckSize).
func Repair(source string, opts Options) string {
	text := StripFence(source)
	text = normalizeText(text)
	text = groupLayers(text)
	text = repairParentheticalEdges(text)
	text = prettifyEdgeLabels(text)
	text = wrapLongLabels(text)
	text = redirectSubgraphEdges(text)
	text = injectStyle(text, opts)
	return text
}

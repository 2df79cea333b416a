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

package mermaid

import (
	"regexp"
	"strings"
)

// labelWrapThreshold is the longest node label left on a single line.
const labelWrapThreshold = 40

const lineBreakMarker = "<br/>"

var bracketLabelRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// wrapLongLabels inserts manual line breaks into node labels longer than
// the threshold. Breaks land on word boundaries only; labels that already
// contain a break marker, or fit on one line, pass through unchanged.
func wrapLongLabels(src string) string {
	return bracketLabelRe.ReplaceAllStringFunc(src, func(match string) string {
		label := match[1 : len(match)-1]
		if len(label) <= labelWrapThreshold || strings.Contains(label, lineBreakMarker) {
			return match
		}
		return "[" + wrapWords(label, labelWrapThreshold) + "]"
	})
}

func wrapWords(label string, width int) string {
	words := strings.Fields(label)
	if len(words) < 2 {
		return label
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return strings.Join(lines, lineBreakMarker)
}

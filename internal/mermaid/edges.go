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

// parentheticalEdgeRe matches the invalid form "A --> B (Label)".
var parentheticalEdgeRe = regexp.MustCompile(`(?m)^(\s*)([A-Za-z][\w-]*(?:\[[^\]]*\])?)\s*-->\s*([A-Za-z][\w-]*(?:\[[^\]]*\])?)\s*\(([^)]+)\)\s*$`)

// repairParentheticalEdges rewrites "A --> B (Label)" into the valid
// "A -- Label --> B".
func repairParentheticalEdges(src string) string {
	return parentheticalEdgeRe.ReplaceAllString(src, "$1$2 -- $4 --> $3")
}

var (
	numberedInlineLabelRe = regexp.MustCompile(`--\s*(\d+)\.\s*[^>]*?\s*-->`)
	numberedPipeLabelRe   = regexp.MustCompile(`\|\s*(\d+)\.\s*[^|]*\|`)
)

// prettifyEdgeLabels shortens numbered step labels to the bare step number:
// "-- 1. Send Request -->" becomes "-- 1 -->" and "|1. Send Request|"
// becomes "|1|". Labels without the "N." form are untouched.
func prettifyEdgeLabels(src string) string {
	src = numberedInlineLabelRe.ReplaceAllString(src, "-- $1 -->")
	return numberedPipeLabelRe.ReplaceAllString(src, "|$1|")
}

var subgraphIDRe = regexp.MustCompile(`(?m)^\s*subgraph\s+([A-Za-z][\w-]*)`)

// redirectSubgraphEdges fixes edges that point directly at a subgraph id,
// which the flowchart grammar disallows. Each offending endpoint is rewritten
// to a synthetic anchor node injected as the first line of that subgraph;
// the edge's label and arrow style are untouched.
func redirectSubgraphEdges(src string) string {
	ids := subgraphIDRe.FindAllStringSubmatch(src, -1)
	if len(ids) == 0 {
		return src
	}

	for _, m := range ids {
		id := m[1]
		anchor := id + "_anchor"
		quoted := regexp.QuoteMeta(id)

		srcRe := regexp.MustCompile(`(?m)^(\s*)` + quoted + `(\s*(?:--|==|-\.))`)
		dstRe := regexp.MustCompile(`(?m)((?:>|\|)\s*)` + quoted + `(\s*)$`)

		rewritten := srcRe.ReplaceAllString(src, "${1}"+anchor+"${2}")
		rewritten = dstRe.ReplaceAllString(rewritten, "${1}"+anchor+"${2}")
		if rewritten == src {
			continue
		}
		src = injectAnchor(rewritten, id, anchor)
	}
	return src
}

// injectAnchor places an invisible anchor node as the first line inside the
// named subgraph, once.
func injectAnchor(src, subgraphID, anchor string) string {
	anchorLine := "    " + anchor + "(( ))"
	if strings.Contains(src, anchorLine) {
		return src
	}
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines)+2)
	injected := false
	for _, line := range lines {
		out = append(out, line)
		if injected {
			continue
		}
		m := subgraphIDRe.FindStringSubmatch(line)
		if m != nil && m[1] == subgraphID {
			out = append(out, anchorLine)
			out = append(out, "    style "+anchor+" fill:none,stroke:none")
			injected = true
		}
	}
	return strings.Join(out, "\n")
}

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

// nodeDefRe matches a line that is exactly one node definition:
// id[Label], id(Label), or id{Label}.
var nodeDefRe = regexp.MustCompile(`^\s*([A-Za-z][\w-]*)\s*(?:\[([^\]]+)\]|\(([^)]+)\)|\{([^}]+)\})\s*$`)

// edgeSourceRe and edgeTargetRe extract the node ids an edge line touches.
var (
	edgeSourceRe = regexp.MustCompile(`(?m)^\s*([A-Za-z][\w-]*)\s*(?:\[[^\]]*\]|\([^)]*\)|\{[^}]*\})?\s*(?:--|==|-\.)`)
	edgeTargetRe = regexp.MustCompile(`(?m)(?:>|\|)\s*([A-Za-z][\w-]*)\s*(?:\[[^\]]*\]|\([^)]*\)|\{[^}]*\})?\s*$`)
)

// layerPhrases are exact label matches (case-insensitive) that mark a node
// as a grouping header even without the word "layer" in it.
var layerPhrases = map[string]struct{}{
	"frontend":          {},
	"backend":           {},
	"client side":       {},
	"server side":       {},
	"infrastructure":    {},
	"data stores":       {},
	"external services": {},
}

func isLayerLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.Contains(l, "layer") || strings.Contains(l, "plane") {
		return true
	}
	_, ok := layerPhrases[l]
	return ok
}

// nodeDef returns the id and label when the line is a standalone node
// definition.
func nodeDef(line string) (id, label string, ok bool) {
	m := nodeDefRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	for _, g := range m[2:] {
		if g != "" {
			return m[1], g, true
		}
	}
	return "", "", false
}

func collectEdgeEndpoints(src string) map[string]bool {
	endpoints := make(map[string]bool)
	for _, m := range edgeSourceRe.FindAllStringSubmatch(src, -1) {
		endpoints[m[1]] = true
	}
	for _, m := range edgeTargetRe.FindAllStringSubmatch(src, -1) {
		endpoints[m[1]] = true
	}
	return endpoints
}

// groupLayers rewrites layer-header nodes into subgraph blocks. A node
// qualifies only when its label reads like a layer name AND no edge ever
// references its id; referenced nodes stay plain nodes so existing edges
// keep working. Sources that already contain subgraphs are left alone.
func groupLayers(src string) string {
	if strings.Contains(src, "subgraph") {
		return src
	}
	lines := strings.Split(src, "\n")
	endpoints := collectEdgeEndpoints(src)

	isHeader := make(map[int]bool)
	for i, line := range lines {
		id, label, ok := nodeDef(line)
		if ok && isLayerLabel(label) && !endpoints[id] {
			isHeader[i] = true
		}
	}
	if len(isHeader) == 0 {
		return src
	}

	var out []string
	open := false
	for i, line := range lines {
		if isHeader[i] {
			if open {
				out = append(out, "end")
			}
			id, label, _ := nodeDef(line)
			out = append(out, "subgraph "+id+"["+label+"]")
			open = true
			continue
		}
		if open {
			if s := strings.TrimSpace(line); s != "" {
				out = append(out, "    "+s)
			} else {
				out = append(out, line)
			}
			continue
		}
		out = append(out, line)
	}
	if open {
		out = append(out, "end")
	}
	return strings.Join(out, "\n")
}

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

package normalizer

import (
	"regexp"
	"strings"

	"github.com/your-org/interview-assistant/internal/mermaid"
)

var diagramHeaderRe = regexp.MustCompile(`(?m)^(flowchart|sequenceDiagram|classDiagram|erDiagram|stateDiagram|gantt|journey|pie|mindmap|timeline)\b`)

// containsMermaid reports whether the text carries a mermaid block, fenced
// or bare.
func containsMermaid(text string) bool {
	if strings.Contains(text, "```mermaid") {
		return true
	}
	return diagramHeaderRe.MatchString(text)
}

var (
	flowchartHeaderRe = regexp.MustCompile(`^flowchart\s+[A-Z]{2}`)
	labelParensRe     = regexp.MustCompile(`\[([^\]\(]*)\(([^\)]*)\)([^\]]*)\]`)
)

// normalizeMermaidBlocks runs every fenced mermaid block through the repair
// pipeline (without theme injection, which belongs to the render endpoint)
// and rewrites it into one statement per line with uniform indentation. Bare
// diagrams without a fence get wrapped in one.
func normalizeMermaidBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	var buffer []string
	inMermaid := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "```mermaid") {
			inMermaid = true
			buffer = buffer[:0]
			out = append(out, line)
			continue
		}
		if inMermaid && strings.HasPrefix(stripped, "```") {
			out = append(out, normalizeDiagram(repairDiagram(strings.Join(buffer, "\n"))))
			out = append(out, line)
			inMermaid = false
			continue
		}
		if inMermaid {
			buffer = append(buffer, line)
			continue
		}
		out = append(out, line)
	}

	joined := strings.Join(out, "\n")
	if diagramHeaderRe.MatchString(joined) && !strings.Contains(joined, "```mermaid") {
		return "```mermaid\n" + normalizeDiagram(repairDiagram(joined)) + "\n```"
	}
	return joined
}

// repairDiagram applies the shared repair pipeline to one embedded diagram
// body. Theme and style stay empty so nothing is injected; styling is chosen
// per render request, not per chat answer.
func repairDiagram(code string) string {
	if len(code) > mermaid.MaxSourceSize {
		return code
	}
	return mermaid.Repair(code, mermaid.Options{})
}

// normalizeDiagram cleans one diagram body: stray backticks go, parentheses
// inside node labels go (mermaid chokes on them), the header line stays
// first, statements get two-space indentation, and classDef/class styling
// moves to the end.
func normalizeDiagram(code string) string {
	c := strings.TrimSpace(code)
	c = strings.ReplaceAll(c, "`mermaid", "")
	c = strings.ReplaceAll(c, "```", "")
	c = strings.ReplaceAll(c, "`", "")
	c = strings.TrimSpace(c)

	for labelParensRe.MatchString(c) {
		c = labelParensRe.ReplaceAllString(c, "[$1$2$3]")
	}

	header := ""
	var body, styling []string
	for _, line := range strings.Split(c, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if diagramHeaderRe.MatchString(line) {
			if header == "" {
				header = line
			}
			continue
		}
		if strings.HasPrefix(line, "classDef ") || strings.HasPrefix(line, "class ") {
			styling = append(styling, strings.TrimSuffix(line, ";"))
			continue
		}
		body = append(body, line)
	}
	if header == "" {
		header = "flowchart LR"
	} else if strings.HasPrefix(header, "flowchart") && !flowchartHeaderRe.MatchString(header) {
		header = "flowchart LR"
	}

	out := make([]string, 0, 1+len(body)+len(styling))
	out = append(out, header)
	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "subgraph ") || line == "end":
			out = append(out, line)
		default:
			out = append(out, "  "+line)
		}
	}
	out = append(out, styling...)
	return strings.Join(out, "\n")
}

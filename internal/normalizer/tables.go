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
)

var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)def\s+\w+\s*\(`),
	regexp.MustCompile(`(?m)class\s+\w+`),
	regexp.MustCompile(`(?m)import\s+\w+`),
	regexp.MustCompile(`(?m)from\s+\w+\s+import`),
	regexp.MustCompile(`(?m)if\s+__name__\s*==\s*["']__main__["']`),
	regexp.MustCompile(`(?m)return\s+`),
	regexp.MustCompile(`(?m)while\s+`),
	regexp.MustCompile(`(?m)for\s+\w+\s+in\s+`),
	regexp.MustCompile(`(?m)#\s*[A-Z]`),
}

// isCodeContent reports whether the text is code-bearing: fenced blocks,
// recognizable source patterns, or a high share of deeply indented lines.
func isCodeContent(text string) bool {
	if strings.Contains(text, "```") {
		return true
	}
	for _, re := range codePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	lines := strings.Split(text, "\n")
	indented, nonEmpty := 0, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(line, "    ") {
			indented++
		}
	}
	return nonEmpty > 0 && float64(indented)/float64(nonEmpty) > 0.3
}

var explanationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)Time\s*Complexity`),
	regexp.MustCompile(`(?im)Space\s*Complexity`),
	regexp.MustCompile(`(?im)How\s+it\s+works`),
	regexp.MustCompile(`(?im)Key\s+Features`),
	regexp.MustCompile(`(?im)Time:\s*O\(`),
	regexp.MustCompile(`(?im)Space:\s*O\(`),
	regexp.MustCompile(`(?im)Input\s+type:`),
	regexp.MustCompile(`(?im)Output:`),
	regexp.MustCompile(`(?im)Error\s+handling:`),
}

var explanationRowKeywords = []string{"time", "space", "complexity", "feature", "input", "output"}

// isExplanationContent reports whether the text is complexity/feature
// discussion that must never be rendered as a table.
func isExplanationContent(text string) bool {
	for _, re := range explanationPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range explanationRowKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

var tableSeparatorRe = regexp.MustCompile(`^\s*\|[\s\-:]+\|`)

func isTableLine(line string) bool {
	if strings.Count(line, "|") >= 2 {
		return true
	}
	return tableSeparatorRe.MatchString(line)
}

var (
	boldSpanRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicSpanRe = regexp.MustCompile(`\*([^*]+)\*`)
	pipeSpacesRe = regexp.MustCompile(`\s*\|\s*`)
)

// cleanTableLine strips emphasis markers from table rows and normalizes
// pipe spacing. Heading lines keep their formatting.
func cleanTableLine(line string) string {
	stripped := strings.TrimSpace(line)
	if strings.HasPrefix(stripped, "##") {
		return line
	}
	line = boldSpanRe.ReplaceAllString(line, "$1")
	line = italicSpanRe.ReplaceAllString(line, "$1")
	line = strings.ReplaceAll(line, "*", "")
	line = pipeSpacesRe.ReplaceAllString(line, "|")
	line = strings.ReplaceAll(line, "|", " | ")
	return strings.TrimSpace(line)
}

// cleanTableArtifacts runs cleanTableLine over every table-looking line.
func cleanTableArtifacts(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isTableLine(line) {
			out = append(out, cleanTableLine(line))
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

var tableRowShapeRe = regexp.MustCompile(`^\|?\s*[^|]+\s*(\|[^|]+)+\|?$`)

// looksLikePipeTable reports whether the text contains a well-formed pipe
// table: a header row immediately followed by a separator or another row.
func looksLikePipeTable(text string) bool {
	lines := strings.Split(text, "\n")
	for i := 0; i+1 < len(lines); i++ {
		a := strings.TrimSpace(lines[i])
		b := strings.TrimSpace(lines[i+1])
		if !strings.Contains(a, "|") || !strings.Contains(b, "|") {
			continue
		}
		if tableRowShapeRe.MatchString(a) && (strings.Contains(b, "---") || strings.Contains(b, "|")) {
			return true
		}
	}
	return false
}

// canonicalizeTables rewrites each run of consecutive pipe rows as a
// markdown table with outer pipes, a fresh separator after the header, and
// single-space padding. Existing separator rows are dropped and replaced.
func canonicalizeTables(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	i := 0
	for i < len(lines) {
		if !isTableRow(strings.TrimSpace(lines[i])) {
			out = append(out, lines[i])
			i++
			continue
		}
		var rows []string
		for i < len(lines) && isTableRow(strings.TrimSpace(lines[i])) {
			row := strings.TrimSpace(lines[i])
			i++
			if tableSeparatorRe.MatchString(row) {
				continue
			}
			row = cleanTableLine(row)
			row = pipeSpacesRe.ReplaceAllString(row, "|")
			row = strings.Trim(row, "|")
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}
		columns := strings.Count(rows[0], "|") + 1
		out = append(out, "| "+strings.ReplaceAll(rows[0], "|", " | ")+" |")
		sep := "|" + strings.Repeat(" --- |", columns)
		out = append(out, sep)
		for _, row := range rows[1:] {
			out = append(out, "| "+strings.ReplaceAll(row, "|", " | ")+" |")
		}
	}
	return strings.Join(out, "\n")
}

func isTableRow(line string) bool {
	return strings.Count(line, "|") >= 2
}

var codeKeywords = []string{"def ", "class ", "if ", "while ", "for ", "else:", "elif "}

// cleanCodeFormatting undoes pipe-table damage inside code content: rows
// like "|x = 1|# comment|" become plain code lines, with a best-effort
// indent restored for statements that cannot sit at the top level.
func cleanCodeFormatting(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, "|") && strings.Contains(line, "=") {
			line = stripRowPipes(line)
			if s := strings.TrimSpace(line); s != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
				switch {
				case containsAnyKeyword(line, codeKeywords):
					// top-level statement
				case hasIndentHint(s):
					line = "    " + s
				case strings.Contains(line, "=") && !strings.HasPrefix(s, "#"):
					line = "    " + s
				}
			}
		}
		if strings.Contains(line, "|") && strings.Contains(line, "#") {
			line = stripRowPipes(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var (
	leadingPipeRe  = regexp.MustCompile(`^\s*\|\s*`)
	trailingPipeRe = regexp.MustCompile(`\s*\|\s*$`)
)

func stripRowPipes(line string) string {
	line = leadingPipeRe.ReplaceAllString(line, "")
	line = trailingPipeRe.ReplaceAllString(line, "")
	return pipeSpacesRe.ReplaceAllString(line, " ")
}

func hasIndentHint(s string) bool {
	for _, kw := range []string{"return", "yield", "break", "continue", "pass"} {
		if strings.HasPrefix(s, kw) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

var explanationLineKeywords = []string{"time", "space", "complexity", "feature", "input", "output", "error"}

// cleanExplanationFormatting converts table-formatted metrics back to bold
// labeled text: "|Time|O(n²)|" becomes "**Time Complexity:** O(n²)".
// Separator rows are dropped.
func cleanExplanationFormatting(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(line, "|") && containsAnyKeyword(lower, explanationLineKeywords) {
			parts := splitRowCells(line)
			if len(parts) >= 2 {
				out = append(out, formatMetricLine(parts[0], parts[1]))
				continue
			}
			out = append(out, line)
			continue
		}
		if tableSeparatorRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func splitRowCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	var parts []string
	for _, p := range strings.Split(line, "|") {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func formatMetricLine(metric, value string) string {
	lower := strings.ToLower(metric)
	switch {
	case strings.Contains(lower, "time"):
		return "**Time Complexity:** " + value
	case strings.Contains(lower, "space"):
		return "**Space Complexity:** " + value
	case strings.Contains(lower, "feature"):
		return "**Key Features:** " + value
	case strings.Contains(lower, "input"):
		return "**Input:** " + value
	case strings.Contains(lower, "output"):
		return "**Output:** " + value
	case strings.Contains(lower, "error"):
		return "**Error Handling:** " + value
	default:
		return "**" + metric + ":** " + value
	}
}

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

// Package normalizer cleans raw model output into render-ready markdown.
// The pipeline branches on content kind: mermaid-bearing text is returned
// after block normalization only, code content gets conservative pipe repair,
// explanation content gets its table artifacts converted back to labeled
// text, and everything else flows through table canonicalization,
// placeholder removal, heading bolding, and math-marker stripping.
package normalizer

import (
	"regexp"
	"strings"
)

// Normalize runs the full cleanup pipeline over one model response.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	text = formatSummarySections(text)
	text = stripLabeledBullets(text)

	if containsMermaid(text) {
		return normalizeMermaidBlocks(text)
	}

	if isCodeContent(text) {
		text = cleanCodeFormatting(text)
		text = boldHeadings(text)
		text = stripMathMarkers(text)
		return normalizeMermaidBlocks(text)
	}

	if isExplanationContent(text) {
		text = cleanExplanationFormatting(text)
		text = boldHeadings(text)
		return stripMathMarkers(text)
	}

	text = cleanTableArtifacts(text)
	if looksLikePipeTable(text) {
		text = canonicalizeTables(text)
	}
	text = stripLabeledBullets(text)
	text = Deplaceholderize(text)
	text = boldHeadings(text)
	text = stripMathMarkers(text)
	return normalizeMermaidBlocks(text)
}

var summaryHeaderRe = regexp.MustCompile(`(?i)^#{1,3}\s*(Complete\s+Answer|Summary|Overview|Comprehensive\s+Answer|Quick\s+Answer|Quick\s+Summary)\b`)

// formatSummarySections promotes summary-style headings to level two and
// compacts the section body: blank lines drop out, content lines are
// trimmed, and one blank line closes the section.
func formatSummarySections(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !summaryHeaderRe.MatchString(strings.TrimSpace(line)) {
			out = append(out, line)
			i++
			continue
		}
		header := strings.TrimSpace(line)
		if !strings.HasPrefix(header, "##") {
			header = "## " + strings.TrimLeft(header, "# ")
		}
		out = append(out, header)
		j := i + 1
		var body []string
		for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j]), "#") {
			if s := strings.TrimSpace(lines[j]); s != "" {
				body = append(body, s)
			}
			j++
		}
		if len(body) > 0 {
			out = append(out, body...)
			out = append(out, "")
		}
		i = j
	}
	return strings.Join(out, "\n")
}

var (
	boldLabelBulletRe  = regexp.MustCompile(`^([\-\*]\s+)(\*\*[^*:]{1,40}\*\*:\s*)`)
	plainLabelBulletRe = regexp.MustCompile(`^([\-\*]\s+)([^*:]{1,40}:\s*)`)
)

// stripLabeledBullets removes leading "Label:" prefixes from bullets inside
// the "## Complete Answer" section so the bullets read as direct statements.
// Bullets outside that section keep their labels.
func stripLabeledBullets(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inComplete := false
	for _, line := range lines {
		header := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(header, "## ") {
			inComplete = strings.Contains(header, "complete answer")
			out = append(out, line)
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		if inComplete && (strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*")) {
			bullet := boldLabelBulletRe.ReplaceAllString(line, "$1")
			bullet = plainLabelBulletRe.ReplaceAllString(bullet, "$1")
			out = append(out, bullet)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var headingRe = regexp.MustCompile(`^(#{2,4})\s*(.+)$`)

// boldHeadings wraps heading text in ** so rendered headings stand out.
// Fenced code blocks pass through untouched.
func boldHeadings(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inCode := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "```") {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if inCode {
			out = append(out, line)
			continue
		}
		m := headingRe.FindStringSubmatch(stripped)
		if m == nil {
			out = append(out, line)
			continue
		}
		headingText := strings.TrimSpace(m[2])
		if strings.HasPrefix(headingText, "**") && strings.HasSuffix(headingText, "**") {
			out = append(out, line)
			continue
		}
		out = append(out, m[1]+" **"+headingText+"**")
	}
	return strings.Join(out, "\n")
}

var (
	inlineDollarRe = regexp.MustCompile(`\$(.*?)\$`)
	inlineParenRe  = regexp.MustCompile(`\\\((.*?)\\\)`)
	inlineBrackRe  = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
)

// stripMathMarkers drops LaTeX math delimiters outside code fences while
// keeping the inner expression text.
func stripMathMarkers(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inCode := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "```") {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if inCode {
			out = append(out, line)
			continue
		}
		line = inlineDollarRe.ReplaceAllString(line, "$1")
		line = inlineParenRe.ReplaceAllString(line, "$1")
		line = inlineBrackRe.ReplaceAllString(line, "$1")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var placeholderRe = regexp.MustCompile(`\[([^\]]{1,80})\]`)

var placeholderMappings = map[string]string{
	"SPECIFIC FEATURE":           "the feature",
	"SPECIFIC PRODUCT":           "the product",
	"PROJECT GOAL":               "the project goal",
	"SPECIFIC COMPROMISE DETAIL": "a balanced compromise",
	"FEATURE/PROJECT TASK":       "the task",
	"SITUATION":                  "the situation",
	"TASK":                       "the task",
	"ACTION":                     "the action",
	"RESULT":                     "the result",
}

var placeholderSplitRe = regexp.MustCompile(`[\s/_-]+`)

// Deplaceholderize converts bracketed template placeholders like
// [SPECIFIC FEATURE] into neutral phrasing. Known tokens map to fixed
// phrases; multi-part tokens fall back to their first mapped part; anything
// else becomes the lower-cased phrase without brackets. The output never
// contains square brackets for matched spans.
func Deplaceholderize(text string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		inside := strings.TrimSpace(match[1 : len(match)-1])
		if phrase, ok := placeholderMappings[strings.ToUpper(inside)]; ok {
			return phrase
		}
		for _, part := range placeholderSplitRe.Split(inside, -1) {
			if phrase, ok := placeholderMappings[strings.ToUpper(part)]; ok {
				return phrase
			}
		}
		return strings.ToLower(inside)
	})
}

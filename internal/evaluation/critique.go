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

package evaluation

import (
	"encoding/json"
	"strings"
)

const critiqueSystemPrompt = "You are a senior coding interview evaluator. Given a coding problem (if provided), a candidate's source code, and the language, you must produce a concise, world-class critique.\n\n" +
	"Output strictly in this format (exact headings):\n" +
	"Summary:\n<3-6 sentence overview of approach and correctness>\n\n" +
	"Strengths:\n- <bullet 1>\n- <bullet 2>\n\n" +
	"Weaknesses:\n- <bullet 1>\n- <bullet 2>\n\n" +
	"Scores: {\"correctness\":<0..1>,\"optimization\":<0..1>,\"approach_explanation\":<0..1>,\"complexity_discussion\":<0..1>,\"edge_cases_testing\":<0..1>,\"total\":<0..1>}\n\n" +
	"Recommendations:\n- <actionable bullet 1>\n- <actionable bullet 2>\n\n" +
	"Guidance: Be concrete. Do not use placeholders. If problem is missing, infer likely intent from code."

// offlineCritique stands in for the model when no provider is configured,
// keeping the response shape identical.
const offlineCritique = "Summary: Offline mode. Cannot evaluate without LLM.\n\n" +
	"Strengths:\n- Runs locally\n\nWeaknesses:\n- No LLM available\n\n" +
	"Scores: {\"correctness\":0.0,\"optimization\":0.0,\"approach_explanation\":0.0,\"complexity_discussion\":0.0,\"edge_cases_testing\":0.0,\"total\":0.0}\n\n" +
	"Recommendations:\n- Configure LLM provider"

var sectionBreaks = []string{"\n\nStrengths:", "\n\nWeaknesses:", "\n\nScores:", "\n\nRecommendations:"}

// parseCritique splits the model's markdown critique into its sections.
// Parsing is lenient: a missing section yields an empty value, malformed
// scores yield zeros, and the raw text is preserved on the entry.
func parseCritique(text string) Entry {
	summary := section(text, "Summary")
	return Entry{
		ApproachExplanation: summary,
		Summary:             summary,
		Strengths:           bullets(section(text, "Strengths")),
		Weaknesses:          bullets(section(text, "Weaknesses")),
		Recommendations:     bullets(section(text, "Recommendations")),
		Scores:              parseScores(text),
		Critique:            text,
	}
}

func section(text, title string) string {
	key := title + ":"
	idx := strings.Index(text, key)
	if idx < 0 {
		return ""
	}
	rem := text[idx+len(key):]
	for _, h := range sectionBreaks {
		if j := strings.Index(rem, h); j >= 0 {
			rem = rem[:j]
			break
		}
	}
	return strings.TrimSpace(rem)
}

func bullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "- ") {
			items = append(items, strings.TrimSpace(l[2:]))
		}
	}
	return items
}

// parseScores grabs the first JSON object after the "Scores:" marker.
func parseScores(text string) Scores {
	var scores Scores
	idx := strings.Index(text, "Scores:")
	if idx < 0 {
		return scores
	}
	rest := text[idx+len("Scores:"):]
	start := strings.Index(rest, "{")
	end := strings.Index(rest, "}")
	if start < 0 || end <= start {
		return scores
	}
	// Unknown keys are ignored, missing ones stay zero.
	_ = json.Unmarshal([]byte(rest[start:end+1]), &scores)
	return scores
}

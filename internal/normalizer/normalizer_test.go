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
	"strings"
	"testing"
)

func TestNormalizeCodeNeverTabled(t *testing.T) {
	in := strings.Join([]string{
		"Here is the fix:",
		"| x = compute_total(items) | # running sum |",
		"| return x | # done |",
	}, "\n")

	got := Normalize(in)

	if strings.Contains(got, "---") {
		t.Error("code content must not gain a table separator")
	}
	if !strings.Contains(got, "x = compute_total(items) # running sum") {
		t.Errorf("assignment row not repaired:\n%s", got)
	}
	if !strings.Contains(got, "return x # done") {
		t.Errorf("return row not repaired:\n%s", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "=") && strings.Contains(line, "|") {
			t.Errorf("pipe survived in code line %q", line)
		}
	}
}

func TestNormalizeExplanationMetrics(t *testing.T) {
	in := strings.Join([]string{
		"How it works:",
		"|Time|O(n log n)|",
		"|---|---|",
		"|Space|O(n)|",
		"|Complexity|linear|",
	}, "\n")

	got := Normalize(in)

	for _, want := range []string{
		"**Time Complexity:** O(n log n)",
		"**Space Complexity:** O(n)",
		"**Complexity:** linear",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "---") {
		t.Error("separator row should be dropped")
	}
}

func TestDeplaceholderize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Deliver [SPECIFIC FEATURE] on time", "Deliver the feature on time"},
		{"First [SITUATION], then [TASK], then [ACTION], then [RESULT]",
			"First the situation, then the task, then the action, then the result"},
		{"Work on [FEATURE/PROJECT TASK] next", "Work on the task next"},
		// Multi-part tokens fall back to a mapped part when one exists.
		{"Resolve [SPECIFIC COMPROMISE DETAIL/ACTION]", "Resolve a balanced compromise"},
		// Unknown tokens lose their brackets and casing.
		{"Check [UNKNOWN THING] soon", "Check unknown thing soon"},
	}
	for _, tt := range tests {
		if got := Deplaceholderize(tt.in); got != tt.want {
			t.Errorf("Deplaceholderize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRemovesPlaceholders(t *testing.T) {
	got := Normalize("When asked about [SPECIFIC PRODUCT], explain [PROJECT GOAL] plainly.")
	if strings.ContainsAny(got, "[]") {
		t.Errorf("brackets survived normalization: %q", got)
	}
	if !strings.Contains(got, "the product") || !strings.Contains(got, "the project goal") {
		t.Errorf("mapped phrases missing: %q", got)
	}
}

func TestNormalizeBoldsHeadingsAndStripsMath(t *testing.T) {
	in := strings.Join([]string{
		"## Summary",
		"The cost is $O(n^2)$ overall and \\(n\\) is the input size.",
	}, "\n")

	got := Normalize(in)

	if !strings.Contains(got, "## **Summary**") {
		t.Errorf("heading not bolded:\n%s", got)
	}
	if !strings.Contains(got, "The cost is O(n^2) overall and n is the input size.") {
		t.Errorf("math markers not stripped:\n%s", got)
	}
}

func TestNormalizeMermaidShortCircuit(t *testing.T) {
	in := strings.Join([]string{
		"## Architecture",
		"```mermaid",
		"flowchart TD",
		"A[Start (init)] --> B[End]",
		"```",
		"Done.",
	}, "\n")

	got := Normalize(in)

	if strings.Contains(got, "## **Architecture**") {
		t.Error("mermaid responses skip heading bolding")
	}
	if !strings.Contains(got, "A[Start init] --> B[End]") {
		t.Errorf("label parentheses not removed:\n%s", got)
	}
	if !strings.Contains(got, "flowchart TD\n  A[Start init]") {
		t.Errorf("diagram body not indented under header:\n%s", got)
	}
}

func TestNormalizeRepairsEmbeddedDiagram(t *testing.T) {
	in := strings.Join([]string{
		"The request flow:",
		"```mermaid",
		"flowchart TD",
		"A --> B (Send)",
		"A -- 1. Send Request --> B",
		"```",
	}, "\n")

	got := Normalize(in)

	if strings.Contains(got, "B (Send)") {
		t.Errorf("parenthetical edge label not repaired:\n%s", got)
	}
	if !strings.Contains(got, "A -- Send --> B") {
		t.Errorf("repaired edge missing:\n%s", got)
	}
	if !strings.Contains(got, "A -- 1 --> B") {
		t.Errorf("numbered edge label not shortened:\n%s", got)
	}
	// Chat answers never pick up a theme directive; that belongs to the
	// render endpoint.
	if strings.Contains(got, "%%{init") {
		t.Errorf("style directive injected into chat answer:\n%s", got)
	}
}

func TestNormalizeWrapsBareDiagram(t *testing.T) {
	got := Normalize("flowchart LR\nA --> B")
	if !strings.HasPrefix(got, "```mermaid\n") || !strings.HasSuffix(got, "\n```") {
		t.Errorf("bare diagram not fenced:\n%s", got)
	}
	if !strings.Contains(got, "flowchart LR\n  A --> B") {
		t.Errorf("diagram body malformed:\n%s", got)
	}
}

func TestNormalizeDiagramMovesStylingToEnd(t *testing.T) {
	got := normalizeDiagram(strings.Join([]string{
		"flowchart TD",
		"classDef hot fill:#f96;",
		"A --> B",
		"class A hot;",
		"B --> C",
	}, "\n"))

	want := strings.Join([]string{
		"flowchart TD",
		"  A --> B",
		"  B --> C",
		"classDef hot fill:#f96",
		"class A hot",
	}, "\n")
	if got != want {
		t.Errorf("normalizeDiagram:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestNormalizeCanonicalizesTables(t *testing.T) {
	in := strings.Join([]string{
		"Tool | Runtime | Startup",
		"|---|---|",
		"Go | compiled | fast",
		"Node | interpreted | medium",
	}, "\n")

	got := Normalize(in)

	want := strings.Join([]string{
		"| Tool | Runtime | Startup |",
		"| --- | --- | --- |",
		"| Go | compiled | fast |",
		"| Node | interpreted | medium |",
	}, "\n")
	if got != want {
		t.Errorf("table not canonicalized:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestNormalizeCompleteAnswerBullets(t *testing.T) {
	in := strings.Join([]string{
		"## Complete Answer",
		"- **Definition**: a goroutine is a lightweight thread",
		"- Key point: channels synchronize goroutines",
		"## Details",
		"- **Tip:** keep critical sections small",
	}, "\n")

	got := Normalize(in)

	if !strings.Contains(got, "- a goroutine is a lightweight thread") {
		t.Errorf("bold label not stripped inside Complete Answer:\n%s", got)
	}
	if !strings.Contains(got, "- channels synchronize goroutines") {
		t.Errorf("plain label not stripped inside Complete Answer:\n%s", got)
	}
	if !strings.Contains(got, "**Tip:**") {
		t.Errorf("labels outside Complete Answer must survive:\n%s", got)
	}
}

func TestFormatSummarySections(t *testing.T) {
	in := strings.Join([]string{
		"# Summary",
		"  Line one.  ",
		"",
		"Line two.",
		"## Next",
		"Body",
	}, "\n")

	got := formatSummarySections(in)

	if !strings.HasPrefix(got, "## Summary\nLine one.\nLine two.\n") {
		t.Errorf("summary section not compacted:\n%s", got)
	}
	if !strings.Contains(got, "## Next\nBody") {
		t.Errorf("following section disturbed:\n%s", got)
	}
}

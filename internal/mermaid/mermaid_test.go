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
	"strings"
	"testing"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mermaid fence", "```mermaid\nflowchart LR\nA --> B\n```", "flowchart LR\nA --> B"},
		{"bare fence", "```\nflowchart LR\n```", "flowchart LR"},
		{"no fence", "flowchart LR\nA --> B", "flowchart LR\nA --> B"},
		{"fence without close", "```mermaid\nflowchart LR", "flowchart LR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.in); got != tt.want {
				t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	if err := CheckSize(strings.Repeat("a", MaxSourceSize)); err != nil {
		t.Errorf("source at limit should pass, got %v", err)
	}
	if err := CheckSize(strings.Repeat("a", MaxSourceSize+1)); err != ErrTooLarge {
		t.Errorf("oversized source should return ErrTooLarge, got %v", err)
	}
}

func TestNormalizeTextASCII(t *testing.T) {
	in := "\ufeffflowchart LR\r\nA[\u201cQuote\u201d] --> B[\u2018tick\u2019]\u00a0 \r\nC \u2013 D \u2014 E\u200b"
	got := normalizeText(in)
	if strings.ContainsAny(got, "\r\u201c\u201d\u2018\u2019\u2013\u2014\u00a0\u200b\ufeff") {
		t.Errorf("typography not normalized: %q", got)
	}
	if !strings.HasPrefix(got, "flowchart LR") {
		t.Errorf("byte-order mark survived: %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line != strings.TrimRight(line, " \t") {
			t.Errorf("trailing whitespace survived: %q", line)
		}
	}
}

func TestGroupLayersConservative(t *testing.T) {
	// A layer-looking node that any edge references must stay a plain node.
	src := "CL[Client Layer]\nCL --> X[Service]"
	if got := groupLayers(src); got != src {
		t.Errorf("referenced node was grouped:\ngot:\n%s", got)
	}
	if got := Repair(src, Options{}); got != src {
		t.Errorf("full pipeline changed a conservative source:\ngot:\n%s", got)
	}
}

func TestGroupLayersRewrite(t *testing.T) {
	src := strings.Join([]string{
		"flowchart TD",
		"APP[Application Layer]",
		"A[API] --> B[DB]",
	}, "\n")

	want := strings.Join([]string{
		"flowchart TD",
		"subgraph APP[Application Layer]",
		"    A[API] --> B[DB]",
		"end",
	}, "\n")
	if got := groupLayers(src); got != want {
		t.Errorf("groupLayers:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupLayersSkipsExistingSubgraphs(t *testing.T) {
	src := "flowchart TD\nsubgraph S[Stack]\n  APP[Application Layer]\nend"
	if got := groupLayers(src); got != src {
		t.Errorf("sources with subgraphs must pass through:\ngot:\n%s", got)
	}
}

func TestRepairParentheticalEdges(t *testing.T) {
	got := repairParentheticalEdges("A --> B (Sends data)")
	if got != "A -- Sends data --> B" {
		t.Errorf("got %q", got)
	}
	// Already valid edges are untouched.
	valid := "A -- Sends data --> B"
	if got := repairParentheticalEdges(valid); got != valid {
		t.Errorf("valid edge changed: %q", got)
	}
}

func TestPrettifyEdgeLabels(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A -- 1. Send Request --> B", "A -- 1 --> B"},
		{"A -->|2. Validate token| B", "A -->|2| B"},
		{"A -- Send Request --> B", "A -- Send Request --> B"},
		{"A -- 3 --> B", "A -- 3 --> B"},
	}
	for _, tt := range tests {
		if got := prettifyEdgeLabels(tt.in); got != tt.want {
			t.Errorf("prettifyEdgeLabels(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapLongLabels(t *testing.T) {
	long := "A[Asynchronous background processing worker pool with retries]"
	got := wrapLongLabels(long)
	if !strings.Contains(got, lineBreakMarker) {
		t.Fatalf("long label not wrapped: %q", got)
	}
	for _, segment := range strings.Split(got[2:len(got)-1], lineBreakMarker) {
		if len(segment) > labelWrapThreshold {
			t.Errorf("segment %q exceeds threshold", segment)
		}
		if strings.HasPrefix(segment, " ") || strings.HasSuffix(segment, " ") {
			t.Errorf("segment %q has boundary whitespace", segment)
		}
	}

	short := "A[Worker pool]"
	if got := wrapLongLabels(short); got != short {
		t.Errorf("short label changed: %q", got)
	}
	if again := wrapLongLabels(got); again != got {
		t.Errorf("wrap must be stable:\nfirst:\n%s\nsecond:\n%s", got, again)
	}
}

func TestRedirectSubgraphEdges(t *testing.T) {
	src := strings.Join([]string{
		"flowchart TD",
		"subgraph SVC[Services]",
		"    A[API]",
		"end",
		"U[User] --> SVC",
	}, "\n")

	got := redirectSubgraphEdges(src)

	if !strings.Contains(got, "U[User] --> SVC_anchor") {
		t.Errorf("edge endpoint not redirected:\n%s", got)
	}
	if !strings.Contains(got, "subgraph SVC[Services]\n    SVC_anchor(( ))") {
		t.Errorf("anchor not injected as first block line:\n%s", got)
	}
	if !strings.Contains(got, "style SVC_anchor fill:none,stroke:none") {
		t.Errorf("anchor not invisible:\n%s", got)
	}
	if got2 := redirectSubgraphEdges(got); got2 != got {
		t.Errorf("redirect not idempotent:\nfirst:\n%s\nsecond:\n%s", got, got2)
	}
}

func TestInjectStyle(t *testing.T) {
	src := "flowchart LR\nA --> B"

	themed := injectStyle(src, Options{Theme: "dark"})
	if !strings.HasPrefix(themed, "%%{init: { 'theme': 'dark' } }%%\n") {
		t.Errorf("theme directive missing:\n%s", themed)
	}

	styled := injectStyle(src, Options{StylePreset: "vivid"})
	if !strings.HasPrefix(styled, styledInitDirective+"\n") {
		t.Errorf("styled directive missing:\n%s", styled)
	}
	if !strings.HasSuffix(styled, styledClassDefs) {
		t.Errorf("class definitions missing:\n%s", styled)
	}

	// Existing directives win.
	pre := "%%{init: { 'theme': 'forest' } }%%\nflowchart LR"
	if got := injectStyle(pre, Options{Theme: "dark"}); !strings.HasPrefix(got, "%%{init: { 'theme': 'forest' }") {
		t.Errorf("existing directive replaced:\n%s", got)
	}

	if got := injectStyle(src, Options{Theme: "default"}); got != src {
		t.Errorf("default theme must inject nothing:\n%s", got)
	}
}

func TestRepairIdempotent(t *testing.T) {
	sources := []string{
		"```mermaid\nflowchart TD\nAPP[Application Layer]\nA[API] --> B[DB]\nA -- 1. Send Request --> B\n```",
		"flowchart LR\nU[User] --> G[Gateway] (Routes traffic)",
		"flowchart TD\nN[A very long descriptive node label that keeps going and going]\nN --> M[Out]",
		"CL[Client Layer]\nCL --> X[Service]",
		"flowchart TD\nsubgraph SVC[Services]\n    A[API]\nend\nU[User] --> SVC",
	}
	optset := []Options{{}, {Theme: "dark"}, {StylePreset: "vivid"}}

	for _, src := range sources {
		for _, opts := range optset {
			once := Repair(src, opts)
			twice := Repair(once, opts)
			if once != twice {
				t.Errorf("Repair not idempotent for %q with %+v:\nonce:\n%s\ntwice:\n%s", src, opts, once, twice)
			}
		}
	}
}

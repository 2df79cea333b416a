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
	"context"
	"reflect"
	"testing"

	"github.com/your-org/interview-assistant/internal/evalcache"
	"github.com/your-org/interview-assistant/internal/llm"
	"github.com/your-org/interview-assistant/internal/prompt"
)

func newOfflineService() (*Service, *evalcache.Cache[Entry]) {
	cache := evalcache.New[Entry](8, 0)
	client := llm.NewClient(llm.Config{}, nil)
	return NewService(client, cache, 0, nil), cache
}

func TestOfflineEvaluate(t *testing.T) {
	svc, _ := newOfflineService()

	entry, hit, err := svc.Evaluate(context.Background(), Request{
		SessionID: "s1",
		Code:      "def f():\n    return 1",
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if hit {
		t.Error("first evaluation must not be a cache hit")
	}
	if entry.SessionID != "s1" || entry.Language != "python" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Summary != "Offline mode. Cannot evaluate without LLM." {
		t.Errorf("summary = %q", entry.Summary)
	}
	if !reflect.DeepEqual(entry.Strengths, []string{"Runs locally"}) {
		t.Errorf("strengths = %v", entry.Strengths)
	}
	if !reflect.DeepEqual(entry.Recommendations, []string{"Configure LLM provider"}) {
		t.Errorf("recommendations = %v", entry.Recommendations)
	}
	if entry.Scores.Total != 0 {
		t.Errorf("total = %v", entry.Scores.Total)
	}

	again, hit, err := svc.Evaluate(context.Background(), Request{
		SessionID: "s1",
		Code:      "def f():\n    return 1",
	})
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if !hit {
		t.Error("identical request must hit the cache")
	}
	if again.Summary != entry.Summary {
		t.Error("cached payload must be returned verbatim")
	}
}

func TestCacheHitRewritesSessionID(t *testing.T) {
	svc, cache := newOfflineService()

	key := evalcache.Key("s1", "", "code", "", "python")
	cache.Put(key, Entry{SessionID: "stale", Summary: "stored summary"})

	entry, hit, err := svc.Evaluate(context.Background(), Request{SessionID: "s1", Code: "code"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if entry.SessionID != "s1" {
		t.Errorf("session id = %q, want the requesting session", entry.SessionID)
	}
	if entry.Summary != "stored summary" {
		t.Errorf("summary = %q, cached payload must be untouched otherwise", entry.Summary)
	}
}

func TestParseCritique(t *testing.T) {
	text := "Summary:\nSolid two-pointer approach. Correct on the main path.\n\n" +
		"Strengths:\n- Clear naming\n- Linear time\n\n" +
		"Weaknesses:\n- No input validation\n\n" +
		"Scores: {\"correctness\":0.9,\"optimization\":0.8,\"approach_explanation\":0.7,\"complexity_discussion\":0.6,\"edge_cases_testing\":0.5,\"total\":0.7}\n\n" +
		"Recommendations:\n- Validate empty input"

	entry := parseCritique(text)
	if entry.Summary != "Solid two-pointer approach. Correct on the main path." {
		t.Errorf("summary = %q", entry.Summary)
	}
	if !reflect.DeepEqual(entry.Strengths, []string{"Clear naming", "Linear time"}) {
		t.Errorf("strengths = %v", entry.Strengths)
	}
	if !reflect.DeepEqual(entry.Weaknesses, []string{"No input validation"}) {
		t.Errorf("weaknesses = %v", entry.Weaknesses)
	}
	if !reflect.DeepEqual(entry.Recommendations, []string{"Validate empty input"}) {
		t.Errorf("recommendations = %v", entry.Recommendations)
	}
	if entry.Scores.Correctness != 0.9 || entry.Scores.Total != 0.7 {
		t.Errorf("scores = %+v", entry.Scores)
	}
}

func TestParseCritiqueMalformed(t *testing.T) {
	entry := parseCritique("free-form text with no headings")
	if entry.Summary != "" || len(entry.Strengths) != 0 {
		t.Errorf("entry = %+v", entry)
	}

	entry = parseCritique("Summary: ok\n\nScores: {not valid json}")
	if entry.Scores != (Scores{}) {
		t.Errorf("malformed scores must parse to zeros, got %+v", entry.Scores)
	}
	if entry.Summary != "ok" {
		t.Errorf("summary = %q", entry.Summary)
	}
}

func TestAnalyzeCodeRecursion(t *testing.T) {
	code := "def fib(n):\n    if n < 2:\n        return n\n    return fib(n-1) + fib(n-2)"
	signals := AnalyzeCode(code)
	if !signals.UsesRecursion {
		t.Error("self-call not detected")
	}
	if signals.UsesMemoization {
		t.Error("no memoization present")
	}
	if signals.TimeComplexityHint != "Recursive without memoization; may be exponential" {
		t.Errorf("hint = %q", signals.TimeComplexityHint)
	}
	if signals.FunctionCount != 1 {
		t.Errorf("function count = %d", signals.FunctionCount)
	}
}

func TestAnalyzeCodeMemoizedRecursion(t *testing.T) {
	code := "import functools\n\n@functools.lru_cache(maxsize=None)\ndef fib(n):\n    return n if n < 2 else fib(n-1) + fib(n-2)"
	signals := AnalyzeCode(code)
	if !signals.UsesRecursion || !signals.UsesMemoization {
		t.Errorf("signals = %+v", signals)
	}
	if signals.TimeComplexityHint != "Recursive with memoization; likely polynomial" {
		t.Errorf("hint = %q", signals.TimeComplexityHint)
	}
}

func TestAnalyzeCodeNestedLoops(t *testing.T) {
	code := "func pairs(n int) int {\n\ttotal := 0\n\tfor i := 0; i < n; i++ {\n\t\tfor j := 0; j < n; j++ {\n\t\t\ttotal++\n\t\t}\n\t}\n\treturn total\n}"
	signals := AnalyzeCode(code)
	if signals.LoopNestingDepth != 2 {
		t.Errorf("loop count = %d", signals.LoopNestingDepth)
	}
	if signals.TimeComplexityHint != "Likely O(n^2) due to nested loops" {
		t.Errorf("hint = %q", signals.TimeComplexityHint)
	}
}

func TestCommentDensity(t *testing.T) {
	signals := AnalyzeCode("# adds two numbers\ndef add(a, b):\n    return a + b")
	if signals.CommentDensity != 0.5 {
		t.Errorf("density = %v", signals.CommentDensity)
	}
}

func TestRecentContext(t *testing.T) {
	turns := []prompt.Turn{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	got := RecentContext(turns)
	want := "Q: q2\nA: a2\nQ: q3\nA: a3\n"
	if got != want {
		t.Errorf("RecentContext = %q, want %q", got, want)
	}
}

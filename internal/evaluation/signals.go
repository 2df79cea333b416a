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
	"math"
	"regexp"
	"strings"
)

// StaticSignals are cheap, language-agnostic heuristics computed from the
// source text without parsing it. They supplement the model critique with
// facts the model sometimes misses.
type StaticSignals struct {
	UsesRecursion          bool    `json:"uses_recursion"`
	UsesMemoization        bool    `json:"uses_memoization"`
	UsesDynamicProgramming bool    `json:"uses_dynamic_programming"`
	LoopNestingDepth       int     `json:"loop_nesting_depth"`
	UsesSlicingHeavily     bool    `json:"uses_slicing_heavily"`
	UsesComprehension      bool    `json:"uses_list_or_set_comprehension"`
	FunctionCount          int     `json:"function_count"`
	CommentDensity         float64 `json:"comment_density"`
	TimeComplexityHint     string  `json:"estimated_time_complexity_hint,omitempty"`
}

var (
	functionDefRe   = regexp.MustCompile(`(?m)(?:^|[^\w])(?:function|func|def|fn)\s+([A-Za-z_]\w*)`)
	dpWordRe        = regexp.MustCompile(`\bdp\b`)
	comprehensionRe = regexp.MustCompile(`\[[^\[\]]* for [^\[\]]*\]`)
)

// AnalyzeCode derives static signals from raw source text.
func AnalyzeCode(code string) StaticSignals {
	lower := strings.ToLower(code)

	defs := functionDefRe.FindAllStringSubmatch(code, -1)
	recursion := false
	for _, m := range defs {
		// The definition itself contributes one "name(" occurrence; any
		// further occurrence is a call.
		if strings.Count(code, m[1]+"(") > 1 {
			recursion = true
			break
		}
	}

	memo := strings.Contains(lower, "memo") || strings.Contains(lower, "cache")
	loops := strings.Count(code, "for ") + strings.Count(code, "while ")

	signals := StaticSignals{
		UsesRecursion:          recursion,
		UsesMemoization:        memo,
		UsesDynamicProgramming: dpWordRe.MatchString(lower) || strings.Contains(lower, "table"),
		LoopNestingDepth:       loops,
		UsesSlicingHeavily:     strings.Count(code, ":") > 10,
		UsesComprehension:      comprehensionRe.MatchString(code) || (strings.Contains(code, "=>") && strings.Contains(lower, "map")),
		FunctionCount:          len(defs),
		CommentDensity:         commentDensity(code),
	}

	switch {
	case loops >= 2 && !recursion:
		signals.TimeComplexityHint = "Likely O(n^2) due to nested loops"
	case recursion && !memo:
		signals.TimeComplexityHint = "Recursive without memoization; may be exponential"
	case recursion && memo:
		signals.TimeComplexityHint = "Recursive with memoization; likely polynomial"
	}
	return signals
}

func commentDensity(code string) float64 {
	var comments, codeLines int
	for _, line := range strings.Split(code, "\n") {
		t := strings.TrimSpace(line)
		switch {
		case t == "":
		case strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//"):
			comments++
		default:
			codeLines++
		}
	}
	if codeLines == 0 {
		return 0
	}
	density := float64(comments) / float64(codeLines)
	if density > 1 {
		density = 1
	}
	return math.Round(density*1000) / 1000
}

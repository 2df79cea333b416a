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

// Package evaluation produces structured critiques of candidate code. Each
// evaluation combines lightweight static signals computed locally with an
// LLM critique parsed into sections and scores. Results are cached so
// re-submitting the same code in the same conversation is free.
package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/your-org/interview-assistant/internal/evalcache"
	"github.com/your-org/interview-assistant/internal/llm"
	"github.com/your-org/interview-assistant/internal/prompt"
)

const (
	critiqueTemperature = 0.2
	critiqueTokenCap    = 2048
)

// Scores holds the rubric dimensions the critique model fills in, each in
// the 0..1 range.
type Scores struct {
	Correctness          float64 `json:"correctness"`
	Optimization         float64 `json:"optimization"`
	ApproachExplanation  float64 `json:"approach_explanation"`
	ComplexityDiscussion float64 `json:"complexity_discussion"`
	EdgeCasesTesting     float64 `json:"edge_cases_testing"`
	Total                float64 `json:"total"`
}

// Entry is one full evaluation result, also the value stored in the cache.
type Entry struct {
	SessionID           string        `json:"session_id"`
	Problem             string        `json:"problem"`
	Language            string        `json:"language"`
	ApproachExplanation string        `json:"approach_auto_explanation"`
	Summary             string        `json:"feedback_summary"`
	Strengths           []string      `json:"strengths"`
	Weaknesses          []string      `json:"weaknesses"`
	Scores              Scores        `json:"scores"`
	StaticSignals       StaticSignals `json:"static_signals"`
	Recommendations     []string      `json:"recommendations"`
	Critique            string        `json:"-"`
	CreatedAt           time.Time     `json:"created_at"`
}

// Request describes one evaluation.
type Request struct {
	SessionID     string
	Problem       string
	Code          string
	Language      string
	RecentContext string
}

// Service runs evaluations against the configured LLM client.
type Service struct {
	client    *llm.Client
	cache     *evalcache.Cache[Entry]
	maxTokens int
	logger    *zap.Logger
}

// NewService builds an evaluation service. maxTokens bounds the critique
// response and is capped at 2048 regardless of configuration.
func NewService(client *llm.Client, cache *evalcache.Cache[Entry], maxTokens int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTokens <= 0 || maxTokens > critiqueTokenCap {
		maxTokens = critiqueTokenCap
	}
	return &Service{client: client, cache: cache, maxTokens: maxTokens, logger: logger}
}

// Evaluate returns the structured critique for the request, serving from
// cache when an identical request was evaluated before. The returned bool
// reports a cache hit. On a hit the cached entry is returned verbatim except
// its session id, which is rewritten to the requesting session.
func (s *Service) Evaluate(ctx context.Context, req Request) (Entry, bool, error) {
	lang := normalizeLanguage(req.Language)
	key := evalcache.Key(req.SessionID, req.RecentContext, req.Code, req.Problem, lang)

	if entry, ok := s.cache.Get(key); ok {
		entry.SessionID = req.SessionID
		s.logger.Debug("evaluation cache hit", zap.String("session_id", req.SessionID))
		return entry, true, nil
	}

	critique, err := s.critique(ctx, req.Problem, req.Code, lang)
	if err != nil {
		return Entry{}, false, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	entry := parseCritique(critique)
	entry.SessionID = req.SessionID
	entry.Problem = req.Problem
	entry.Language = lang
	entry.StaticSignals = AnalyzeCode(req.Code)
	entry.CreatedAt = time.Now().UTC()

	s.cache.Put(key, entry)
	return entry, false, nil
}

func (s *Service) critique(ctx context.Context, problem, code, language string) (string, error) {
	if !s.client.Enabled() {
		return offlineCritique, nil
	}

	if problem == "" {
		problem = "N/A"
	}
	messages := []prompt.Message{
		{Role: prompt.RoleSystem, Content: critiqueSystemPrompt},
		{Role: prompt.RoleUser, Content: fmt.Sprintf("Problem: %s\nLanguage: %s\n\nCode:\n```%s\n%s\n```", problem, language, language, code)},
	}
	return s.client.CompleteWithTemperature(ctx, messages, s.maxTokens, critiqueTemperature)
}

// RecentContext renders the last two conversation turns in the fixed form
// the cache key is derived from.
func RecentContext(turns []prompt.Turn) string {
	if len(turns) > 2 {
		turns = turns[len(turns)-2:]
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", t.Question, t.Answer)
	}
	return b.String()
}

func normalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" || lang == "py" {
		return "python"
	}
	return lang
}

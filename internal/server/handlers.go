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

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/your-org/interview-assistant/internal/evaluation"
	"github.com/your-org/interview-assistant/internal/extract"
	"github.com/your-org/interview-assistant/internal/mermaid"
	"github.com/your-org/interview-assistant/internal/normalizer"
	"github.com/your-org/interview-assistant/internal/prompt"
	"github.com/your-org/interview-assistant/internal/session"
)

const sessionNotFoundHint = "Session not found. Create one via POST /api/session and reuse its session_id."

// QuestionRequest is the payload for POST /api/question.
type QuestionRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	Question     string `json:"question" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
	Stream       bool   `json:"stream"`
	StyleMode    string `json:"style_mode"`
	Tone         string `json:"tone"`
	Layout       string `json:"layout"`
	// Variability defaults to 0.5 when omitted, matching the API contract
	// rather than the zero value.
	Variability *float64 `json:"variability"`
	Seed        *int64   `json:"seed"`
}

// EvaluateRequest is the payload for POST /api/evaluate.
type EvaluateRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Problem   string `json:"problem"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// TranscriptRequest is the payload for POST /api/session/:session_id/transcript.
type TranscriptRequest struct {
	Text string `json:"text" binding:"required"`
	// Replace discards the existing partial transcript instead of appending.
	Replace bool `json:"replace"`
}

// RenderRequest is the payload for POST /api/render_mermaid.
type RenderRequest struct {
	Code        string `json:"code"`
	Theme       string `json:"theme"`
	StylePreset string `json:"style_preset"`
}

func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	state := s.sessions.Create()
	c.JSON(http.StatusOK, gin.H{"session_id": state.SessionID})
}

func (s *Server) handleQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	state, err := s.sessions.Get(req.SessionID)
	if err != nil {
		detail(c, http.StatusNotFound, sessionNotFoundHint)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		detail(c, http.StatusBadRequest, "Empty question")
		return
	}

	promptReq := s.promptRequest(state, req)
	opts := prompt.Options{StrictPrecedence: s.cfg.Prompt.StrictPrecedence}
	messages, _ := prompt.BuildMessages(promptReq, opts)

	budget := prompt.Budget{
		Simple:  s.cfg.LLM.MaxTokensSimple,
		Code:    s.cfg.LLM.MaxTokensCode,
		Complex: s.cfg.LLM.MaxTokensComplex,
	}
	maxTokens := prompt.MaxTokensFor(req.Question, s.cfg.LLM.MaxTokens, budget)

	if req.Stream || s.cfg.LLM.Stream {
		s.streamAnswer(c, req, messages, maxTokens)
		return
	}

	text, err := s.llm.Complete(c.Request.Context(), messages, maxTokens)
	if err != nil {
		detail(c, http.StatusInternalServerError, fmt.Sprintf("Answer generation failed: %v", err))
		return
	}
	answer := normalizer.Normalize(text)
	s.persistAnswer(req.SessionID, req.Question, answer)

	c.JSON(http.StatusOK, gin.H{"answer": answer, "created_at": time.Now().UTC()})
}

// streamAnswer emits the answer as server-sent events. Whatever was
// collected before an abort or provider error is still persisted as the
// turn's answer.
func (s *Server) streamAnswer(c *gin.Context, req QuestionRequest, messages []prompt.Message, maxTokens int) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	full, err := s.llm.Stream(c.Request.Context(), messages, maxTokens, func(chunk string) error {
		if _, werr := fmt.Fprintf(c.Writer, "data: %s\n\n", chunk); werr != nil {
			return werr
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		s.logger.Warn("answer stream interrupted",
			zap.String("session_id", req.SessionID),
			zap.Int("collected_bytes", len(full)),
			zap.Error(err),
		)
	}
	if full != "" {
		s.persistAnswer(req.SessionID, req.Question, full)
	}

	_, _ = io.WriteString(c.Writer, "event: end\n\n")
	c.Writer.Flush()
}

// persistAnswer appends the turn, audits it, and kicks off background
// evaluation when the answer carries a code block.
func (s *Server) persistAnswer(sessionID, question, answer string) {
	if err := s.sessions.AppendTurn(sessionID, question, answer); err != nil {
		s.logger.Error("failed to persist answer", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	s.audit.Log("qna", sessionID, map[string]any{
		"question": question,
		"answer":   answer,
	})
	go s.autoEvaluate(sessionID, question, answer)
}

func (s *Server) promptRequest(state *session.State, req QuestionRequest) prompt.Request {
	history := make([]prompt.Turn, len(state.QnA))
	for i, t := range state.QnA {
		history[i] = prompt.Turn{Question: t.Question, Answer: t.Answer}
	}

	variability := 0.5
	if req.Variability != nil {
		variability = *req.Variability
	}
	seed := s.cfg.Prompt.StyleSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mode := req.StyleMode
	if mode == "" {
		mode = s.cfg.Prompt.StyleMode
	}

	return prompt.Request{
		Question:     req.Question,
		SystemPrompt: req.SystemPrompt,
		ProfileText:  state.ProfileText,
		History:      history,
		Style: prompt.StyleParams{
			Mode:        mode,
			Tone:        req.Tone,
			Layout:      req.Layout,
			Variability: variability,
			Seed:        seed,
		},
	}
}

var codeBlockRe = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)\\n```")

// longestCodeBlock returns the most substantial fenced code block in the
// text, with its declared language (defaulting to python).
func longestCodeBlock(text string) (lang, code string) {
	lang = "python"
	for _, m := range codeBlockRe.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[2])
		if len(candidate) > len(code) {
			code = candidate
			if m[1] != "" {
				lang = m[1]
			}
		}
	}
	return lang, code
}

// autoEvaluate runs an unprompted evaluation when an answer contains code,
// so the critique is already cached if the candidate asks for feedback.
func (s *Server) autoEvaluate(sessionID, question, answer string) {
	lang, code := longestCodeBlock(answer)
	if code == "" {
		return
	}

	turns, err := s.sessions.RecentTurns(sessionID, 2)
	if err != nil {
		return
	}
	recent := evaluation.RecentContext(toPromptTurns(turns))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, _, err = s.eval.Evaluate(ctx, evaluation.Request{
		SessionID:     sessionID,
		Problem:       question,
		Code:          code,
		Language:      lang,
		RecentContext: recent,
	})
	if err != nil {
		s.audit.Log("auto_evaluation_error", sessionID, map[string]any{"error": err.Error()})
		return
	}
	s.audit.Log("auto_evaluation", sessionID, map[string]any{
		"question":       question,
		"language":       lang,
		"auto_triggered": true,
	})
}

func toPromptTurns(turns []session.Turn) []prompt.Turn {
	out := make([]prompt.Turn, len(turns))
	for i, t := range turns {
		out[i] = prompt.Turn{Question: t.Question, Answer: t.Answer}
	}
	return out
}

func (s *Server) handleUploadProfile(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if !s.sessions.Exists(sessionID) {
		detail(c, http.StatusNotFound, sessionNotFoundHint)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusBadRequest, "Missing 'file' in form data")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		detail(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		detail(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}

	text, err := extract.Text(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat), errors.Is(err, extract.ErrDecodeFailure):
		detail(c, http.StatusUnsupportedMediaType, err.Error())
		return
	case errors.Is(err, extract.ErrEmptyDocument):
		detail(c, http.StatusBadRequest, "Uploaded file appears empty.")
		return
	case err != nil:
		detail(c, http.StatusInternalServerError, "Profile extraction failed")
		return
	}

	if err := s.sessions.SetProfile(sessionID, text); err != nil {
		detail(c, http.StatusNotFound, sessionNotFoundHint)
		return
	}
	s.audit.Log("profile_upload", sessionID, map[string]any{
		"filename": fileHeader.Filename,
		"bytes":    len(data),
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok", "characters": utf8.RuneCountInString(text)})
}

// handleAppendTranscript ingests externally transcribed speech chunks. The
// audio pipeline itself lives outside this service.
func (s *Server) handleAppendTranscript(c *gin.Context) {
	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Missing 'text' in payload")
		return
	}

	sessionID := c.Param("session_id")
	var err error
	if req.Replace {
		err = s.sessions.SetTranscript(sessionID, req.Text)
	} else {
		err = s.sessions.AppendTranscriptChunk(sessionID, req.Text)
	}
	if err != nil {
		detail(c, http.StatusNotFound, sessionNotFoundHint)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleHistory(c *gin.Context) {
	state, err := s.sessions.Get(c.Param("session_id"))
	if err != nil {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}
	items := state.QnA
	if items == nil {
		items = []session.Turn{}
	}
	c.JSON(http.StatusOK, gin.H{"session_id": state.SessionID, "items": items})
}

func (s *Server) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.sessions.List()})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.sessions.Delete(c.Param("session_id")) {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "deleted": true})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	if err := s.sessions.ClearHistory(c.Param("session_id")); err != nil {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRemoveTurn(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		detail(c, http.StatusBadRequest, "QnA index out of range")
		return
	}
	switch err := s.sessions.RemoveTurn(c.Param("session_id"), index); {
	case errors.Is(err, session.ErrNotFound):
		detail(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrIndexOutOfRange):
		detail(c, http.StatusBadRequest, "QnA index out of range")
	case err != nil:
		detail(c, http.StatusInternalServerError, "Failed to remove history item")
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	turns, err := s.sessions.RecentTurns(req.SessionID, 2)
	if err != nil {
		detail(c, http.StatusNotFound, sessionNotFoundHint)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		detail(c, http.StatusBadRequest, "Empty code")
		return
	}

	entry, _, err := s.eval.Evaluate(c.Request.Context(), evaluation.Request{
		SessionID:     req.SessionID,
		Problem:       req.Problem,
		Code:          req.Code,
		Language:      req.Language,
		RecentContext: evaluation.RecentContext(toPromptTurns(turns)),
	})
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.audit.Log("evaluation", req.SessionID, map[string]any{
		"problem":  req.Problem,
		"language": entry.Language,
		"scores":   entry.Scores,
	})
	c.JSON(http.StatusOK, entry)
}

func (s *Server) handleRenderMermaid(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	s.renderMermaid(c, req)
}

// handleRenderMermaidGet accepts query parameters for <img src> usage.
func (s *Server) handleRenderMermaidGet(c *gin.Context) {
	s.renderMermaid(c, RenderRequest{
		Code:        c.Query("code"),
		Theme:       c.Query("theme"),
		StylePreset: c.Query("style_preset"),
	})
}

func (s *Server) renderMermaid(c *gin.Context, req RenderRequest) {
	code := mermaid.StripFence(req.Code)
	if strings.TrimSpace(code) == "" {
		detail(c, http.StatusBadRequest, "Missing 'code' in payload")
		return
	}

	limit := s.cfg.Render.MaxDiagramSize
	if limit <= 0 {
		limit = mermaid.MaxSourceSize
	}
	if len(code) > limit {
		detail(c, http.StatusRequestEntityTooLarge, "Diagram too large")
		return
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = s.cfg.Render.Theme
	}
	preset := strings.TrimSpace(req.StylePreset)
	if preset == "" {
		preset = s.cfg.Render.StylePreset
	}

	source := mermaid.Repair(code, mermaid.Options{Theme: theme, StylePreset: preset})
	svg, err := s.renderer.RenderSVG(c.Request.Context(), source)
	if err != nil {
		detail(c, http.StatusBadGateway, fmt.Sprintf("Render failed: %v", err))
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

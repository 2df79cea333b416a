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

// Package server exposes the interview assistant over HTTP: session
// management, question answering (optionally streamed as server-sent
// events), profile upload, code evaluation, and diagram rendering.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/your-org/interview-assistant/internal/audit"
	"github.com/your-org/interview-assistant/internal/config"
	"github.com/your-org/interview-assistant/internal/evaluation"
	"github.com/your-org/interview-assistant/internal/llm"
	"github.com/your-org/interview-assistant/internal/render"
	"github.com/your-org/interview-assistant/internal/session"
)

// Server wires the HTTP layer to the application services.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	sessions *session.Store
	llm      *llm.Client
	eval     *evaluation.Service
	renderer *render.Client
	audit    *audit.Sink
}

// New builds a Server. All collaborators are required except logger, which
// defaults to a no-op logger.
func New(cfg *config.Config, logger *zap.Logger, sessions *session.Store, llmClient *llm.Client, eval *evaluation.Service, renderer *render.Client, sink *audit.Sink) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		llm:      llmClient,
		eval:     eval,
		renderer: renderer,
		audit:    sink,
	}
}

// Router builds the gin engine with all routes and middleware registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(s.cfg.Server.CORSAllowOrigins))

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.Use(authMiddleware(s.cfg.Server.APIKey))

	api.POST("/session", s.handleCreateSession)
	api.POST("/session/:session_id/transcript", s.handleAppendTranscript)
	api.POST("/question", s.handleQuestion)
	api.POST("/upload_profile", s.handleUploadProfile)
	api.GET("/history/:session_id", s.handleHistory)
	api.GET("/sessions", s.handleListSessions)
	api.DELETE("/session/:session_id", s.handleDeleteSession)
	api.DELETE("/history/:session_id", s.handleClearHistory)
	api.DELETE("/history/:session_id/:index", s.handleRemoveTurn)
	api.POST("/evaluate", s.handleEvaluate)
	api.POST("/render_mermaid", s.handleRenderMermaid)
	api.GET("/render_mermaid", s.handleRenderMermaidGet)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "interview-assistant"})
}

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

// Package main runs the interview assistant HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/your-org/interview-assistant/internal/audit"
	"github.com/your-org/interview-assistant/internal/config"
	"github.com/your-org/interview-assistant/internal/evalcache"
	"github.com/your-org/interview-assistant/internal/evaluation"
	"github.com/your-org/interview-assistant/internal/llm"
	"github.com/your-org/interview-assistant/internal/render"
	"github.com/your-org/interview-assistant/internal/server"
	"github.com/your-org/interview-assistant/internal/session"
)

// ShutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const ShutdownTimeout = 10 * time.Second

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "interview-assistant",
		Short: "LLM-backed interview preparation assistant",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// .env is optional; environment wins over file values either way.
	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadWithOptions(config.LoadOptions{ValidateRequired: true})
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if strings.ToLower(cfg.Logging.Level) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	storage, err := session.NewFileStorage(cfg.Session.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session storage: %w", err)
	}
	store, err := session.NewStore(storage, logger)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	llmClient := llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		Temperature: float32(cfg.LLM.Temperature),
		TopP:        float32(cfg.LLM.TopP),
	}, logger)

	cache := evalcache.New[evaluation.Entry](cfg.EvalCache.MaxEntries, cfg.EvalCache.TTL)
	eval := evaluation.NewService(llmClient, cache, cfg.LLM.MaxTokens, logger)

	renderer := render.NewClient(render.Config{
		PrimaryURL:  cfg.Render.PrimaryURL,
		FallbackURL: cfg.Render.FallbackURL,
		Timeout:     cfg.Render.Timeout,
	}, logger)

	sink, err := audit.NewSink(audit.Config{
		StorageType: cfg.Audit.StorageType,
		FilePath:    cfg.Audit.FilePath,
		DBPath:      cfg.Audit.DBPath,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize audit sink: %w", err)
	}
	defer func() { _ = sink.Close() }()

	srv := server.New(cfg, logger, store, llmClient, eval, renderer, sink)

	// Best effort: hot reload only logs, live rewiring is not supported.
	if err := config.WatchConfig(configPath, func(*config.Config) {
		logger.Info("configuration file changed, restart to apply")
	}); err != nil {
		logger.Debug("config watching disabled", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting interview assistant server",
			zap.String("addr", addr),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.Bool("llm_enabled", llmClient.Enabled()),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "text" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}
	return zapCfg.Build()
}

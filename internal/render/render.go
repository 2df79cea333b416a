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

// Package render converts diagram source text to SVG through a Kroki-style
// HTTP rendering service. A primary and a fallback endpoint are tried in
// order; only when both fail does the caller see an error.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultPrimaryURL is the public Kroki Mermaid-to-SVG endpoint.
	DefaultPrimaryURL = "https://kroki.io/mermaid/svg"
	// DefaultFallbackURL is tried when the primary service is unreachable.
	DefaultFallbackURL = "https://demo.kroki.io/mermaid/svg"
	// DefaultTimeout bounds each render request.
	DefaultTimeout = 15 * time.Second

	contentTypeText = "text/plain; charset=utf-8"
	maxErrorBody    = 512
)

// Config holds rendering service settings.
type Config struct {
	PrimaryURL  string
	FallbackURL string
	Timeout     time.Duration
}

// RenderError aggregates the failures of both rendering services. Unwrap
// yields the fallback's error when a fallback was attempted, since that is
// the most recent failure.
type RenderError struct {
	Primary  error
	Fallback error
}

func (e *RenderError) Error() string {
	if e.Fallback != nil {
		return fmt.Sprintf("all render services failed: primary: %v; fallback: %v", e.Primary, e.Fallback)
	}
	return fmt.Sprintf("render failed: %v", e.Primary)
}

func (e *RenderError) Unwrap() error {
	if e.Fallback != nil {
		return e.Fallback
	}
	return e.Primary
}

// Client renders diagram source via HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a render client, filling in defaults for unset fields.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.PrimaryURL == "" {
		cfg.PrimaryURL = DefaultPrimaryURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// RenderSVG posts the diagram source to the primary service and, on any
// failure, to the fallback. The returned text always starts with "<svg".
func (c *Client) RenderSVG(ctx context.Context, source string) (string, error) {
	svg, primaryErr := c.post(ctx, c.cfg.PrimaryURL, source)
	if primaryErr == nil {
		return svg, nil
	}
	if c.cfg.FallbackURL == "" {
		return "", &RenderError{Primary: primaryErr}
	}

	c.logger.Warn("primary render service failed, trying fallback",
		zap.String("primary_url", c.cfg.PrimaryURL),
		zap.Error(primaryErr),
	)
	svg, fallbackErr := c.post(ctx, c.cfg.FallbackURL, source)
	if fallbackErr == nil {
		return svg, nil
	}
	return "", &RenderError{Primary: primaryErr, Fallback: fallbackErr}
}

func (c *Client) post(ctx context.Context, url, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeText)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("render request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("render failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read render response: %w", err)
	}
	svg := string(body)
	if !strings.HasPrefix(strings.TrimSpace(svg), "<svg") {
		return "", fmt.Errorf("invalid SVG returned from renderer")
	}
	return svg, nil
}

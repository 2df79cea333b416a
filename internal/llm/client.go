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

// Package llm wraps an OpenAI-compatible chat completion API. Any provider
// exposing that wire format works through the Endpoint setting (Groq,
// OpenAI, local gateways). Without an API key the client runs in offline
// mode and echoes the question, which keeps the rest of the product usable
// in development.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/your-org/interview-assistant/internal/prompt"
)

const (
	// MaxRetries defines the maximum number of retry attempts
	MaxRetries = 3
	// BaseRetryDelay defines the base delay for exponential backoff
	BaseRetryDelay = time.Second
)

// Config holds provider settings for the chat client.
type Config struct {
	Provider    string
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float32
	TopP        float32
}

// RetryableError represents an error that can be retried
type RetryableError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the configured provider. The zero value is not usable;
// construct with NewClient.
type Client struct {
	api    *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient builds a chat client. An empty API key yields an offline client
// whose Enabled method reports false.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{cfg: cfg, logger: logger}
	if cfg.APIKey == "" {
		logger.Warn("no LLM API key configured, running in offline echo mode")
		return c
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		apiCfg.BaseURL = cfg.Endpoint
	}
	c.api = openai.NewClientWithConfig(apiCfg)

	logger.Info("LLM client initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("max_retries", MaxRetries),
	)
	return c
}

// Enabled reports whether a real provider is configured.
func (c *Client) Enabled() bool {
	return c.api != nil
}

// Complete runs one non-streamed chat completion and returns the raw text.
func (c *Client) Complete(ctx context.Context, messages []prompt.Message, maxTokens int) (string, error) {
	return c.CompleteWithTemperature(ctx, messages, maxTokens, c.cfg.Temperature)
}

// CompleteWithTemperature is Complete with the sampling temperature pinned
// for this one request instead of taken from the client config. Evaluation
// flows use a low temperature for reproducible critiques.
func (c *Client) CompleteWithTemperature(ctx context.Context, messages []prompt.Message, maxTokens int, temperature float32) (string, error) {
	if !c.Enabled() {
		return echo(messages), nil
	}

	req := c.buildRequest(messages, maxTokens, false)
	req.Temperature = temperature

	var lastErr error
	delay := BaseRetryDelay
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying chat completion request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = c.handleAPIError(err)
			if retryErr, ok := lastErr.(*RetryableError); ok {
				if retryErr.RetryAfter > 0 {
					delay = retryErr.RetryAfter
				} else {
					delay = BaseRetryDelay * time.Duration(1<<uint(attempt))
				}
				continue
			}
			return "", lastErr
		}

		if len(resp.Choices) == 0 {
			return "", errors.New("no choices returned from provider")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("exhausted all retry attempts: %w", lastErr)
}

// Stream runs a streamed chat completion, invoking emit for every content
// chunk, and returns the full collected text. When emit returns an error
// the stream stops early and the text collected so far is returned along
// with that error, so callers can persist partial output.
func (c *Client) Stream(ctx context.Context, messages []prompt.Message, maxTokens int, emit func(chunk string) error) (string, error) {
	if !c.Enabled() {
		text := echo(messages)
		if err := emit(text); err != nil {
			return "", err
		}
		return text, nil
	}

	req := c.buildRequest(messages, maxTokens, true)
	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", c.handleAPIError(err)
	}
	defer stream.Close()

	var collected strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Partial output is still valuable; hand it back with the error.
			return collected.String(), c.handleAPIError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		chunk := resp.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		collected.WriteString(chunk)
		if err := emit(chunk); err != nil {
			return collected.String(), err
		}
	}
	return collected.String(), nil
}

func (c *Client) buildRequest(messages []prompt.Message, maxTokens int, stream bool) openai.ChatCompletionRequest {
	apiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		apiMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    apiMessages,
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      stream,
	}
	if c.cfg.TopP > 0 {
		req.TopP = c.cfg.TopP
	}
	return req
}

// handleAPIError determines whether a provider error is retryable.
func (c *Client) handleAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("invalid API key or unauthorized access: %w", err)
		case http.StatusTooManyRequests:
			retryAfter := BaseRetryDelay
			return &RetryableError{
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
				RetryAfter: retryAfter,
			}
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return &RetryableError{
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		default:
			return fmt.Errorf("provider API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
	}
	return fmt.Errorf("provider client error: %w", err)
}

// echo returns the last user message, the offline stand-in for an answer.
func echo(messages []prompt.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == prompt.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

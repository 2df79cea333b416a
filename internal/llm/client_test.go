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

package llm

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/your-org/interview-assistant/internal/prompt"
)

func TestOfflineClientEchoes(t *testing.T) {
	client := NewClient(Config{}, nil)
	if client.Enabled() {
		t.Fatal("client without API key must be disabled")
	}

	messages := []prompt.Message{
		{Role: prompt.RoleSystem, Content: "system"},
		{Role: prompt.RoleUser, Content: "what is a goroutine"},
	}
	got, err := client.Complete(context.Background(), messages, 0)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "what is a goroutine" {
		t.Errorf("offline Complete = %q, want the question echoed", got)
	}
}

func TestOfflineStreamEmitsOnce(t *testing.T) {
	client := NewClient(Config{}, nil)

	var chunks []string
	messages := []prompt.Message{{Role: prompt.RoleUser, Content: "hello"}}
	full, err := client.Stream(context.Background(), messages, 0, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Errorf("chunks = %v", chunks)
	}
	if full != "hello" {
		t.Errorf("full = %q", full)
	}
}

func TestHandleAPIErrorClassification(t *testing.T) {
	client := NewClient(Config{APIKey: "key"}, nil)

	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}
	if _, ok := client.handleAPIError(rateLimited).(*RetryableError); !ok {
		t.Error("429 must be retryable")
	}

	serverErr := &openai.APIError{HTTPStatusCode: http.StatusBadGateway, Message: "bad gateway"}
	if _, ok := client.handleAPIError(serverErr).(*RetryableError); !ok {
		t.Error("502 must be retryable")
	}

	unauthorized := &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "nope"}
	err := client.handleAPIError(unauthorized)
	if _, ok := err.(*RetryableError); ok {
		t.Error("401 must not be retryable")
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("unexpected 401 message: %v", err)
	}

	badRequest := &openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "bad input"}
	if _, ok := client.handleAPIError(badRequest).(*RetryableError); ok {
		t.Error("400 must not be retryable")
	}
}

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

// Package audit appends structured event records to a JSONL file or a
// SQLite database. Logging is fire-and-forget: a failing sink must never
// fail the operation being audited, so errors are logged and swallowed.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	StorageTypeFile   = "file"
	StorageTypeSQLite = "sqlite"
)

// Config holds audit sink settings. An empty StorageType disables auditing.
type Config struct {
	StorageType string `json:"storage_type"`
	FilePath    string `json:"file_path"`
	DBPath      string `json:"db_path"`
}

// Sink writes audit records to the configured backend.
type Sink struct {
	config Config
	logger *zap.Logger
	db     *sql.DB
	mu     sync.Mutex
}

// NewSink creates an audit sink. With an empty storage type the sink is
// disabled and every Log call is a no-op.
func NewSink(config Config, logger *zap.Logger) (*Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sink{config: config, logger: logger}

	switch config.StorageType {
	case "":
		return s, nil
	case StorageTypeFile:
		if err := s.initFileStorage(); err != nil {
			return nil, fmt.Errorf("failed to initialize audit file storage: %w", err)
		}
	case StorageTypeSQLite:
		if err := s.initSQLiteStorage(); err != nil {
			return nil, fmt.Errorf("failed to initialize audit SQLite storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported audit storage type: %s", config.StorageType)
	}
	return s, nil
}

func (s *Sink) initFileStorage() error {
	dir := filepath.Dir(s.config.FilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	if _, err := os.Stat(s.config.FilePath); os.IsNotExist(err) {
		file, err := os.Create(s.config.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create audit file: %w", err)
		}
		_ = file.Close()
	}
	return nil
}

func (s *Sink) initSQLiteStorage() error {
	dir := filepath.Dir(s.config.DBPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create audit database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts DATETIME NOT NULL,
			type TEXT NOT NULL,
			session_id TEXT,
			detail TEXT
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create audit table: %w", err)
	}

	s.db = db
	return nil
}

// Log records one audit event. recordType tags the event kind (for example
// "qna" or "evaluation"); fields carry event-specific detail. Errors never
// propagate to the caller.
func (s *Sink) Log(recordType, sessionID string, fields map[string]any) {
	if s.config.StorageType == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().UTC()
	var err error
	switch s.config.StorageType {
	case StorageTypeFile:
		err = s.logToFile(ts, recordType, sessionID, fields)
	case StorageTypeSQLite:
		err = s.logToSQLite(ts, recordType, sessionID, fields)
	}
	if err != nil {
		s.logger.Warn("audit write failed",
			zap.String("type", recordType),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func (s *Sink) logToFile(ts time.Time, recordType, sessionID string, fields map[string]any) error {
	record := map[string]any{
		"ts":   ts.Format(time.RFC3339Nano),
		"type": recordType,
	}
	if sessionID != "" {
		record["session_id"] = sessionID
	}
	for k, v := range fields {
		if k == "ts" || k == "type" {
			continue
		}
		record[k] = v
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	file, err := os.OpenFile(s.config.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

func (s *Sink) logToSQLite(ts time.Time, recordType, sessionID string, fields map[string]any) error {
	if s.db == nil {
		return fmt.Errorf("SQLite database not initialized")
	}

	detail, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal audit detail: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO audit (ts, type, session_id, detail) VALUES (?, ?, ?, ?)",
		ts, recordType, sessionID, string(detail),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// Close releases the underlying database connection, if any.
func (s *Sink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

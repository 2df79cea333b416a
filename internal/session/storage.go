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

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Storage persists session records.
type Storage interface {
	// LoadAll returns every recoverable session, keyed by id.
	LoadAll() (map[string]*State, error)
	// Save writes one session record.
	Save(state *State) error
	// Delete removes one session record. Missing records are not an error.
	Delete(sessionID string) error
}

// FileStorage keeps one pretty-printed JSON file per session under a data
// directory.
type FileStorage struct {
	dir    string
	logger *zap.Logger
}

// NewFileStorage creates the data directory if needed.
func NewFileStorage(dir string, logger *zap.Logger) (*FileStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session data dir: %w", err)
	}
	return &FileStorage{dir: dir, logger: logger}, nil
}

func (f *FileStorage) path(sessionID string) string {
	return filepath.Join(f.dir, sessionID+".json")
}

// LoadAll reads every *.json record in the data directory. Files that fail
// to parse are skipped with a warning so one corrupt record cannot take the
// whole store down.
func (f *FileStorage) LoadAll() (map[string]*State, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session data dir: %w", err)
	}
	sessions := make(map[string]*State)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(f.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			f.logger.Warn("failed to read session file", zap.String("path", path), zap.Error(err))
			continue
		}
		var state State
		if err := json.Unmarshal(data, &state); err != nil {
			f.logger.Warn("skipping corrupt session file", zap.String("path", path), zap.Error(err))
			continue
		}
		if state.SessionID == "" {
			f.logger.Warn("skipping session file without id", zap.String("path", path))
			continue
		}
		if state.QnA == nil {
			state.QnA = []Turn{}
		}
		sessions[state.SessionID] = &state
	}
	return sessions, nil
}

// Save writes the record atomically: temp file, then rename.
func (f *FileStorage) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	tmp := f.path(state.SessionID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path(state.SessionID)); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Delete removes the record file if present.
func (f *FileStorage) Delete(sessionID string) error {
	err := os.Remove(f.path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

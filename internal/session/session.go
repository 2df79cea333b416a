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

// Package session manages interview sessions: QnA history, the live speech
// transcript, and the uploaded candidate profile. State lives in memory
// behind a store-wide lock and is persisted best-effort as one JSON file per
// session, so a restart recovers every session that was saved cleanly.
package session

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotFound reports an unknown session id.
	ErrNotFound = errors.New("session not found")
	// ErrIndexOutOfRange reports a turn index outside the session history.
	ErrIndexOutOfRange = errors.New("turn index out of range")
)

// Turn is one question/answer exchange.
type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the full record for one session.
type State struct {
	SessionID         string    `json:"session_id"`
	QnA               []Turn    `json:"qna"`
	PartialTranscript string    `json:"partial_transcript"`
	LastUpdate        time.Time `json:"last_update"`
	ProfileText       string    `json:"profile_text"`
}

func (s *State) clone() *State {
	c := *s
	c.QnA = make([]Turn, len(s.QnA))
	copy(c.QnA, s.QnA)
	return &c
}

// Summary is the lightweight listing shape for session overviews.
type Summary struct {
	SessionID  string    `json:"session_id"`
	LastUpdate time.Time `json:"last_update"`
	QnACount   int       `json:"qna_count"`
}

// Store holds every session in memory and persists mutations through its
// Storage backend. All mutations serialize on one lock; reads return copies
// so callers never observe a record mid-write.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
	storage  Storage
	logger   *zap.Logger
}

// NewStore loads all persisted sessions from storage. Corrupt records are
// skipped with a warning rather than failing startup.
func NewStore(storage Storage, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loaded, err := storage.LoadAll()
	if err != nil {
		return nil, err
	}
	s := &Store{
		sessions: loaded,
		storage:  storage,
		logger:   logger,
	}
	s.logger.Info("session store ready", zap.Int("sessions", len(loaded)))
	return s, nil
}

// Create registers a new empty session and returns its state.
func (s *Store) Create() *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &State{
		SessionID:  GenerateSessionID(),
		QnA:        []Turn{},
		LastUpdate: time.Now().UTC(),
	}
	s.sessions[state.SessionID] = state
	s.persist(state)
	return state.clone()
}

// Get returns a copy of the session state, or ErrNotFound.
func (s *Store) Get(sessionID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return state.clone(), nil
}

// Exists reports whether the session id is known.
func (s *Store) Exists(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// AppendTurn adds one QnA entry to the session history.
func (s *Store) AppendTurn(sessionID, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.QnA = append(state.QnA, Turn{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	})
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// SetProfile stores the candidate profile text, trimmed.
func (s *Store) SetProfile(sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.ProfileText = strings.TrimSpace(text)
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// Profile returns the session's profile text.
func (s *Store) Profile(sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	return state.ProfileText, nil
}

// SetTranscript replaces the partial speech transcript.
func (s *Store) SetTranscript(sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.PartialTranscript = text
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// AppendTranscriptChunk extends the partial transcript, inserting a space
// between chunks when needed.
func (s *Store) AppendTranscriptChunk(sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if state.PartialTranscript != "" && !strings.HasSuffix(state.PartialTranscript, " ") {
		state.PartialTranscript += " "
	}
	state.PartialTranscript += text
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// RecentTurns returns copies of the last n QnA turns, oldest first.
func (s *Store) RecentTurns(sessionID string, n int) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if n <= 0 || n > len(state.QnA) {
		n = len(state.QnA)
	}
	turns := make([]Turn, n)
	copy(turns, state.QnA[len(state.QnA)-n:])
	return turns, nil
}

// ClearHistory drops the QnA history but keeps the session and its profile.
func (s *Store) ClearHistory(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.QnA = state.QnA[:0]
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// RemoveTurn deletes one QnA entry by zero-based index. An unknown session
// is reported before the index is examined.
func (s *Store) RemoveTurn(sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(state.QnA) {
		return ErrIndexOutOfRange
	}
	state.QnA = append(state.QnA[:index], state.QnA[index+1:]...)
	state.LastUpdate = time.Now().UTC()
	s.persist(state)
	return nil
}

// Delete removes the session and its persisted record. It reports whether
// the session existed.
func (s *Store) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	if err := s.storage.Delete(sessionID); err != nil {
		s.logger.Warn("failed to delete session record",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	return ok
}

// List returns summaries for every session, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Summary, 0, len(s.sessions))
	for _, state := range s.sessions {
		items = append(items, Summary{
			SessionID:  state.SessionID,
			LastUpdate: state.LastUpdate,
			QnACount:   len(state.QnA),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].LastUpdate.After(items[j].LastUpdate)
	})
	return items
}

// persist writes the state through the storage backend. Callers hold the
// lock. IO failures are logged, never surfaced; losing a write is preferable
// to failing the request.
func (s *Store) persist(state *State) {
	if err := s.storage.Save(state.clone()); err != nil {
		s.logger.Warn("failed to persist session",
			zap.String("session_id", state.SessionID), zap.Error(err))
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the client-side session state.
//
// All mutation goes through named transition methods so every state change
// has one auditable site. Transitions that carry the result of an async
// call take the chat ID the call was dispatched for and become no-ops when
// that chat is no longer current; results for an abandoned chat can never
// leak into the visible timeline.
package store

import (
	"github.com/jeranaias/parley-tui/internal/model"
)

// Status describes the load state of the current session's history.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns the display label for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store is the single holder of session state. It is not safe for
// concurrent use; it belongs to the UI update loop, which is single
// threaded.
type Store struct {
	sessions  []model.Session
	currentID string

	// messages is the confirmed history of the current session only.
	messages []*model.Message

	status Status
	err    error
}

// New creates an empty store.
func New() *Store {
	return &Store{status: StatusIdle}
}

// =============================================================================
// READS
// =============================================================================

// Sessions returns the session list in backend order.
func (s *Store) Sessions() []model.Session {
	return s.sessions
}

// CurrentID returns the selected session's ID, or "" when none is selected.
func (s *Store) CurrentID() string {
	return s.currentID
}

// Current returns the selected session, if any.
func (s *Store) Current() (model.Session, bool) {
	for _, sess := range s.sessions {
		if sess.ID == s.currentID {
			return sess, true
		}
	}
	return model.Session{}, false
}

// HasCurrent reports whether a session is selected.
func (s *Store) HasCurrent() bool {
	_, ok := s.Current()
	return ok
}

// Messages returns the confirmed history of the current session.
func (s *Store) Messages() []*model.Message {
	return s.messages
}

// Status returns the load status of the current session's history.
func (s *Store) Status() Status {
	return s.status
}

// Err returns the last load error, if the status is failed.
func (s *Store) Err() error {
	return s.err
}

// IndexOf returns the position of a session in the list, or -1.
func (s *Store) IndexOf(chatID string) int {
	for i, sess := range s.sessions {
		if sess.ID == chatID {
			return i
		}
	}
	return -1
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SessionsLoaded replaces the session list. Selection is preserved when the
// selected session still exists, otherwise cleared.
func (s *Store) SessionsLoaded(sessions []model.Session) {
	s.sessions = sessions
	if s.currentID != "" && s.IndexOf(s.currentID) < 0 {
		s.clearSelection()
	}
}

// SessionCreated appends a new session and selects it.
func (s *Store) SessionCreated(sess model.Session) {
	s.sessions = append(s.sessions, sess)
	s.selectSession(sess.ID)
}

// SessionSelected switches the current session. The history is cleared and
// the status set to loading; the caller dispatches the fetch. Selecting the
// already-current session is a no-op so an in-progress load is not restarted.
func (s *Store) SessionSelected(chatID string) {
	if chatID == s.currentID {
		return
	}
	if s.IndexOf(chatID) < 0 {
		return
	}
	s.selectSession(chatID)
}

// SessionRenamed updates a session's display name. Unknown IDs are ignored.
func (s *Store) SessionRenamed(chatID, name string) {
	if i := s.IndexOf(chatID); i >= 0 {
		s.sessions[i].Name = name
	}
}

// SessionDeleted removes a session. When the deleted session was current,
// selection falls back to the first remaining session (its history must be
// refetched by the caller), or to none.
func (s *Store) SessionDeleted(chatID string) {
	i := s.IndexOf(chatID)
	if i < 0 {
		return
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)

	if chatID != s.currentID {
		return
	}
	if len(s.sessions) > 0 {
		s.selectSession(s.sessions[0].ID)
	} else {
		s.clearSelection()
	}
}

// MessagesLoaded installs the fetched history for a chat. Ignored when that
// chat is no longer current.
func (s *Store) MessagesLoaded(chatID string, messages []*model.Message) {
	if chatID != s.currentID {
		return
	}
	s.messages = messages
	s.status = StatusReady
	s.err = nil
}

// MessagesAppended appends confirmed messages to the current history.
// Ignored when the chat is no longer current.
func (s *Store) MessagesAppended(chatID string, messages ...*model.Message) {
	if chatID != s.currentID {
		return
	}
	s.messages = append(s.messages, messages...)
}

// LoadFailed records a history fetch failure. Ignored when the chat is no
// longer current.
func (s *Store) LoadFailed(chatID string, err error) {
	if chatID != s.currentID {
		return
	}
	s.status = StatusFailed
	s.err = err
}

func (s *Store) selectSession(chatID string) {
	s.currentID = chatID
	s.messages = nil
	s.status = StatusLoading
	s.err = nil
}

func (s *Store) clearSelection() {
	s.currentID = ""
	s.messages = nil
	s.status = StatusIdle
	s.err = nil
}

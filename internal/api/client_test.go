// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/model"
)

// staticTokens is a TokenSource returning a fixed token, or ErrNoToken
// when empty.
type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, error) {
	if s.token == "" {
		return "", auth.ErrNoToken
	}
	return s.token, nil
}

func newTestClient(url string) *Client {
	return NewClient(url, staticTokens{token: "test-token"}).WithMaxRetries(1)
}

func TestListChats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chats", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"chats": []map[string]string{
				{"chatId": "c1", "chatName": "First"},
				{"chatId": "c2", "chatName": ""},
			},
		})
	}))
	defer server.Close()

	sessions, err := newTestClient(server.URL).ListChats(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, model.Session{ID: "c1", Name: "First"}, sessions[0])
	assert.Equal(t, "New Chat", sessions[1].Title())
}

func TestCreateChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"chatId": "c9", "chatName": ""})
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).CreateChat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c9", session.ID)
}

func TestFetchMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/c1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"sender": "User", "message": "hi", "timestamp": "2025-03-01T10:00:00Z"},
				{"sender": "AI", "message": "hello", "timestamp": "2025-03-01T10:00:05Z"},
			},
		})
	}))
	defer server.Close()

	messages, err := newTestClient(server.URL).FetchMessages(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, model.SenderUser, messages[0].Sender)
	assert.Equal(t, model.SenderAgent, messages[1].Sender)
	assert.Equal(t, model.OriginConfirmed, messages[0].Origin)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), messages[0].Timestamp.UTC())
	assert.Equal(t, "hello", messages[1].Body)
}

func TestSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/c1/message", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "User", req["sender"])
		assert.Equal(t, "hi there", req["message"])

		json.NewEncoder(w).Encode(map[string]string{"message": "a reply"})
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).SendMessage(context.Background(), "c1", "hi there")
	require.NoError(t, err)
	assert.Equal(t, "a reply", reply)
}

func TestRenameChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/chat/c1/name", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Renamed", req["chatName"])

		w.Write([]byte("{}"))
	}))
	defer server.Close()

	err := newTestClient(server.URL).RenameChat(context.Background(), "c1", "Renamed")
	require.NoError(t, err)
}

func TestDeleteChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/chat/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeleteChat(context.Background(), "c1")
	require.NoError(t, err)
}

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens{}).WithMaxRetries(1)
	_, err := client.ListChats(context.Background())

	assert.ErrorIs(t, err, auth.ErrNoToken)
	assert.Zero(t, hits.Load(), "no request may be issued without a token")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"server error", http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).ListChats(context.Background())
			assert.ErrorIs(t, err, tt.want)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
		})
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"chats": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens{token: "t"}).WithMaxRetries(2)
	sessions, err := client.ListChats(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetDoesNotRetryNotFound(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens{token: "t"}).WithMaxRetries(3)
	_, err := client.FetchMessages(context.Background(), "gone")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSendMessageNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens{token: "t"}).WithMaxRetries(3)
	_, err := client.SendMessage(context.Background(), "c1", "hi")

	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, int32(1), hits.Load(), "POSTs are not idempotent and must not be retried")
}

func TestUnparseableTimestampFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"sender": "AI", "message": "x", "timestamp": "not-a-time"},
			},
		})
	}))
	defer server.Close()

	messages, err := newTestClient(server.URL).FetchMessages(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Timestamp.IsZero(), "bad timestamps keep the message, zero time")
}

func TestErrorsAreErrors(t *testing.T) {
	err := &StatusError{Status: 418, Method: "GET", Path: "/chats"}
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrServer))
	assert.Contains(t, err.Error(), "418")
}

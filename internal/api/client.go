// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the REST client for the Parley chat backend.
//
// Every request carries the bearer token from the auth token source; a
// missing token fails fast before any network I/O. Status codes map onto
// package sentinel errors so callers can match with errors.Is.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout bounds every request. SendMessage waits on agent
	// inference, so the bound is generous.
	DefaultTimeout = 60 * time.Second

	// defaultMaxRetries is the retry budget for idempotent GETs.
	defaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is the pooled HTTP client for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// TokenSource supplies the bearer token for requests.
type TokenSource interface {
	Token() (string, error)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Parley chat backend.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: sharedHTTPClient,
		maxRetries: defaultMaxRetries,
	}
}

// WithHTTPClient overrides the HTTP client. Used in tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithMaxRetries overrides the GET retry budget.
func (c *Client) WithMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListChats retrieves all chat sessions for the authenticated user.
func (c *Client) ListChats(ctx context.Context) ([]model.Session, error) {
	var out listChatsResponse
	if err := c.get(ctx, "/chats", &out); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	sessions := make([]model.Session, len(out.Chats))
	for i, chat := range out.Chats {
		sessions[i] = chat.toSession()
	}
	return sessions, nil
}

// CreateChat creates a new chat session and returns it.
func (c *Client) CreateChat(ctx context.Context) (model.Session, error) {
	var out chatJSON
	if err := c.do(ctx, http.MethodPost, "/chat", nil, &out); err != nil {
		return model.Session{}, fmt.Errorf("create chat: %w", err)
	}
	return out.toSession(), nil
}

// FetchMessages retrieves the confirmed message history for a chat.
func (c *Client) FetchMessages(ctx context.Context, chatID string) ([]*model.Message, error) {
	var out fetchMessagesResponse
	if err := c.get(ctx, "/chat/"+url.PathEscape(chatID), &out); err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	messages := make([]*model.Message, len(out.Messages))
	for i, msg := range out.Messages {
		messages[i] = msg.toMessage()
	}
	return messages, nil
}

// SendMessage posts a user message to a chat and returns the agent's reply
// text. The call blocks until the agent has responded; not idempotent, so
// it is never retried.
func (c *Client) SendMessage(ctx context.Context, chatID, body string) (string, error) {
	req := sendMessageRequest{
		Sender:  model.SenderUser.Wire(),
		Message: body,
	}
	var out sendMessageResponse
	if err := c.do(ctx, http.MethodPost, "/chat/"+url.PathEscape(chatID)+"/message", req, &out); err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return out.Message, nil
}

// RenameChat sets the display name of a chat session.
func (c *Client) RenameChat(ctx context.Context, chatID, name string) error {
	req := renameChatRequest{Name: name}
	if err := c.do(ctx, http.MethodPut, "/chat/"+url.PathEscape(chatID)+"/name", req, nil); err != nil {
		return fmt.Errorf("rename chat: %w", err)
	}
	return nil
}

// DeleteChat removes a chat session and its history.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	if err := c.do(ctx, http.MethodDelete, "/chat/"+url.PathEscape(chatID), nil, nil); err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	return nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// get performs a GET with retry on 5xx and transport errors. GETs are
// idempotent, so replay is safe.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		lastErr = c.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs a single request: marshal, authorize, execute, map status,
// decode. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logRequest(req)
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	logResponse(resp, time.Since(startTime))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return &StatusError{Status: resp.StatusCode, Method: method, Path: path}
	}

	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return nil
	}

	body, err := readResponse(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads the body with the size cap enforced.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}

// isRetryable reports whether a GET failure is worth replaying: server-side
// failures and transport errors, never auth or not-found.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, auth.ErrNoToken) {
		return false
	}
	// Transport-level failure.
	return true
}

// backoff returns the delay before the next retry: 500ms, 1s, 2s.
func (c *Client) backoff(attempt int) time.Duration {
	return retryBaseDelay * time.Duration(1<<uint(attempt))
}

// logRequest logs a request without headers or body; the header carries the
// token and the body may carry message text.
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs only the status and duration, never the body.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d (%v)", resp.StatusCode, duration)
}

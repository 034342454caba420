// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth sources the bearer token for backend requests.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/parley-tui/internal/util"
)

// EnvToken is the environment variable consulted before the token file.
const EnvToken = "PARLEY_TOKEN"

// ErrNoToken indicates no bearer token is configured. Every backend call
// requires one, so this is surfaced before any network I/O is attempted.
var ErrNoToken = errors.New("no auth token configured")

// =============================================================================
// TOKEN SOURCE
// =============================================================================

// TokenSource resolves the bearer token: environment first, then the
// token file. Token issuance itself is the auth service's job; parley
// only stores the result.
type TokenSource struct {
	// Path is the token file location. Default: ~/.parley/token
	Path string
}

// DefaultTokenPath returns the default token file location.
func DefaultTokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".parley", "token"), nil
}

// NewTokenSource creates a token source backed by the default token file.
func NewTokenSource() (*TokenSource, error) {
	path, err := DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	return &TokenSource{Path: path}, nil
}

// NewTokenSourceWithPath creates a token source backed by a custom file.
func NewTokenSourceWithPath(path string) *TokenSource {
	return &TokenSource{Path: path}
}

// Token returns the configured bearer token, or ErrNoToken.
func (s *TokenSource) Token() (string, error) {
	if tok := strings.TrimSpace(os.Getenv(EnvToken)); tok != "" {
		return tok, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Save stores the token atomically with owner-only permissions.
func (s *TokenSource) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to save an empty token")
	}
	return util.AtomicWriteFile(s.Path, []byte(token+"\n"), 0600)
}

// Clear removes the stored token file. A missing file is not an error.
func (s *TokenSource) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Fingerprint returns a short SHA-256 fingerprint of the configured token
// for display. The token itself is never shown or logged.
func (s *TokenSource) Fingerprint() string {
	tok, err := s.Token()
	if err != nil {
		return "none"
	}
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:4])
}

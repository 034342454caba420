// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testSource(t *testing.T) *TokenSource {
	t.Helper()
	t.Setenv(EnvToken, "")
	return NewTokenSourceWithPath(filepath.Join(t.TempDir(), "token"))
}

func TestToken_MissingFile(t *testing.T) {
	s := testSource(t)

	_, err := s.Token()
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestToken_EnvTakesPrecedence(t *testing.T) {
	s := testSource(t)
	if err := s.Save("file-token"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvToken, "env-token")

	tok, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok != "env-token" {
		t.Errorf("token = %q, want env value", tok)
	}
}

func TestToken_SaveAndLoad(t *testing.T) {
	s := testSource(t)

	if err := s.Save("  secret  "); err != nil {
		t.Fatal(err)
	}

	tok, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok != "secret" {
		t.Errorf("token = %q, want trimmed value", tok)
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestToken_EmptySaveRejected(t *testing.T) {
	s := testSource(t)
	if err := s.Save("   "); err == nil {
		t.Error("saving a blank token should fail")
	}
}

func TestToken_EmptyFileIsNoToken(t *testing.T) {
	s := testSource(t)
	if err := os.WriteFile(s.Path, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := s.Token()
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken for a blank file", err)
	}
}

func TestClear(t *testing.T) {
	s := testSource(t)
	if err := s.Save("secret"); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("clearing twice should be a no-op, got %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Error("token should be gone after Clear")
	}
}

func TestFingerprint(t *testing.T) {
	s := testSource(t)
	if got := s.Fingerprint(); got != "none" {
		t.Errorf("Fingerprint with no token = %q, want none", got)
	}

	if err := s.Save("secret"); err != nil {
		t.Fatal(err)
	}
	fp := s.Fingerprint()
	if fp == "none" || fp == "secret" || len(fp) != 8 {
		t.Errorf("Fingerprint = %q, want 8 hex chars that are not the token", fp)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrUnauthorized indicates the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized: check your token (parley auth)")

	// ErrNotFound indicates the requested chat does not exist.
	ErrNotFound = errors.New("chat not found")

	// ErrServer indicates a backend-side failure (5xx).
	ErrServer = errors.New("server error")

	// ErrResponseTooLarge indicates the response body exceeded the size cap.
	ErrResponseTooLarge = errors.New("response exceeds size limit")
)

// StatusError carries the HTTP status alongside the mapped sentinel, so
// callers can match with errors.Is while logs keep the raw code.
type StatusError struct {
	Status int
	Method string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// Unwrap maps the status code onto the package sentinels.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == 401 || e.Status == 403:
		return ErrUnauthorized
	case e.Status == 404:
		return ErrNotFound
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a gateway failure for logging. Handlers display the
// Detail message either way; the kind is not needed for presentation.
type ErrorKind string

const (
	// KindTransport means the request never reached the backend.
	KindTransport ErrorKind = "transport"
	// KindApplication means the backend answered with a non-2xx status.
	KindApplication ErrorKind = "application"
)

// backendError is the backend's structured error body.
type backendError struct {
	Detail string `json:"detail"`
}

// Error is the uniform failure type for all gateway operations.
type Error struct {
	Kind      ErrorKind
	Status    int    // HTTP status for application errors, 0 otherwise
	Operation string // "METHOD /endpoint"
	Detail    string // human-readable message, shown to the operator
	cause     error
}

func (e *Error) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("%s: backend unreachable: %s", e.Operation, e.Detail)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.Status, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// UserMessage returns the message suitable for a flash notification.
func (e *Error) UserMessage() string {
	if e.Kind == KindTransport {
		return "Network error: could not reach the announcement backend"
	}
	return e.Detail
}

func transportError(method, endpoint string, cause error) *Error {
	return &Error{
		Kind:      KindTransport,
		Operation: method + " " + endpoint,
		Detail:    cause.Error(),
		cause:     cause,
	}
}

func applicationError(method, endpoint string, status int, detail string) *Error {
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &Error{
		Kind:      KindApplication,
		Status:    status,
		Operation: method + " " + endpoint,
		Detail:    detail,
	}
}

// UserMessage extracts the operator-facing message from any error.
func UserMessage(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.UserMessage()
	}
	return err.Error()
}

// IsTransport reports whether err is a gateway transport failure.
func IsTransport(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindTransport
}

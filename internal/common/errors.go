// Package common defines shared constants and sentinel errors used across
// the storage, session, account and web layers of Edutor. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Config errors.
	ErrorUnsupported = errors.New("unsupported storage backend")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

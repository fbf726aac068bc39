package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateSlug indicates a write hit the unique index on slug.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrSlugExhausted indicates the allocator ran out of suffix attempts.
	ErrSlugExhausted = errors.New("slug suffix attempts exhausted")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

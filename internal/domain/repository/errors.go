package repository

import "errors"

// Storage-level sentinels shared by both backends. The application
// layer maps them onto its own taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

package application

import "errors"

// Sentinel errors shared by the services. Handlers translate them to
// HTTP statuses; anything not in this set is treated as an internal
// failure and never leaks its message to the client.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrForbidden          = errors.New("not authorized")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmptyComment       = errors.New("comment text is required")
	ErrMissingVideoURL    = errors.New("video url is required")
)

package domain

import "errors"

// Auth and account errors. The credential error message is deliberately
// generic: it never discloses whether the email or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
)

// Profile editing errors.
var (
	ErrNoEditSession     = errors.New("no active edit session")
	ErrUnknownDraftField = errors.New("unknown profile field")
	ErrPublishFailed     = errors.New("publish failed")
)

// Job and application errors.
var (
	ErrJobNotFound          = errors.New("job not found")
	ErrUnknownSkill         = errors.New("unknown skill")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("already applied to this job")
)

package hive

import "errors"

// Sentinel errors for draft and account operations
var (
	ErrDraftNotFound    = errors.New("draft not found")
	ErrRevisionNotFound = errors.New("revision not found")
	ErrEmptyDraft       = errors.New("draft body cannot be empty")
	ErrBadAccountName   = errors.New("account name must be 3-16 characters of lowercase letters, digits, dots, or dashes")
	ErrBadPermlink      = errors.New("permlink must only contain lowercase letters, digits, or dashes")
)

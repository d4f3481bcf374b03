package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrNoMatch signals that a tag search produced no candidates.
	ErrNoMatch = errors.New("no content matched the query")
	// ErrForbidden signals a permission tier below the command's minimum.
	ErrForbidden = errors.New("forbidden")
	// ErrPostNotFound signals a missing posting record.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotYourPost signals a posting owned by a different user.
	ErrNotYourPost = errors.New("post belongs to another user")
	// ErrUnsupportedFormat signals a format with no safe decode path.
	ErrUnsupportedFormat = errors.New("unsupported media format")
	// ErrMalformedSend signals that the chat transport rejected a send as malformed.
	ErrMalformedSend = errors.New("malformed send rejected by transport")
)

package onboarding

import "errors"

var (
	// ErrNotFound is returned by a Repository when no record matches the lookup.
	// A miss is expected for members who joined before tracking existed.
	ErrNotFound = errors.New("onboarding record not found")
	// ErrInvalidChapter rejects form input that is not a chapter index in range.
	ErrInvalidChapter    = errors.New("invalid chapter number")
	ErrInvalidTransition = errors.New("invalid onboarding transition")
)

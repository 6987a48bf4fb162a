// Package services defines the business logic for videos, clips, questions,
// accounts, and analytics. This file centralizes service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// Every concrete error wraps exactly one category sentinel, so callers can
// branch on the category with errors.Is and still show the specific message:
//
//	errors.Is(ErrClipNotFound, ErrNotFound) // true
//
// Translation into HTTP status codes happens in the handler layer.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// Categories.
var (
	// ErrValidation marks malformed or out-of-range input. Nothing was written.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to a video, clip, question, or user that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation the caller is not allowed to perform.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a duplicate of a unique value.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable marks a valid request that has no result to give.
	ErrUnavailable = errors.New("unavailable")

	// ErrUnauthorized marks bad credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStore marks a persistence failure. The transaction was rolled back.
	ErrStore = errors.New("store failure")
)

// Video errors.
var (
	ErrVideoNotFound     = fmt.Errorf("%w: video not found", ErrNotFound)
	ErrTitleRequired     = fmt.Errorf("%w: title is required", ErrValidation)
	ErrURLRequired       = fmt.Errorf("%w: url is required", ErrValidation)
	ErrDurationTooShort  = fmt.Errorf("%w: video must be at least 10 seconds long", ErrValidation)
	ErrDurationTooLong   = fmt.Errorf("%w: video exceeds the maximum duration", ErrValidation)
	ErrInvalidTimeRange  = fmt.Errorf("%w: start must be >= 0 and less than end", ErrValidation)
	ErrInvalidRangeParam = fmt.Errorf("%w: range must be one of 24h, 7d, 30d", ErrValidation)
)

// Clip errors.
var (
	ErrClipNotFound = fmt.Errorf("%w: clip not found", ErrNotFound)

	// ErrNoClipsAvailable is returned when every clip is dry or none exist.
	ErrNoClipsAvailable = fmt.Errorf("%w: no clips available", ErrUnavailable)
)

// Question errors.
var (
	ErrQuestionNotFound  = fmt.Errorf("%w: question not found", ErrNotFound)
	ErrQuestionLength    = fmt.Errorf("%w: question must be between 5 and 500 characters", ErrValidation)
	ErrAnswerLength      = fmt.Errorf("%w: answer must be between 2 and 1000 characters", ErrValidation)
	ErrNoUpdates         = fmt.Errorf("%w: no updates provided", ErrValidation)
	ErrNotQuestionAuthor = fmt.Errorf("%w: you can only edit your own questions", ErrForbidden)
)

// Account errors.
var (
	ErrUsernameLength     = fmt.Errorf("%w: username must be between 3 and 50 characters", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: role must be user or admin", ErrValidation)
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

	// ErrUnknownUser is returned when a still-valid token names an account
	// that has since been deleted.
	ErrUnknownUser = fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
)

// userRef maps a foreign-key failure on a row stamped with the caller's ID
// to ErrUnknownUser. Clip references are checked before such writes, so the
// user is the only reference left to break.
func userRef(err error) error {
	if repo.IsForeignKeyViolation(err) {
		return ErrUnknownUser
	}
	return err
}

// storeErr wraps a persistence error with the ErrStore category and the
// operation that failed. Errors that already carry a category pass through.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, cat := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrUnavailable, ErrUnauthorized, ErrStore} {
		if errors.Is(err, cat) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

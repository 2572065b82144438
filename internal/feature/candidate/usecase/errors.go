// Package usecase implements the business logic for the candidate feature.
package usecase

import "errors"

var (
	// ErrCandidateNotFound is returned when no candidate matches the given ID.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrCandidateExists is returned when a candidate with the same email or
	// phone already exists at intake.
	ErrCandidateExists = errors.New("candidate with this email or phone already exists")

	// ErrInvalidStatus is returned when a status update names a value outside
	// the pipeline enum.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrDuplicateCandidateEmail blocks the Selected transition when another
	// candidate record shares the email.
	ErrDuplicateCandidateEmail = errors.New("another candidate with this email already exists")

	// ErrNotSelected is returned when promotion is attempted on a candidate
	// whose status is not Selected.
	ErrNotSelected = errors.New(`only candidates with status "Selected" can be moved to employees`)

	// ErrEmployeeExists is returned when promotion would create a second
	// employee with the same email.
	ErrEmployeeExists = errors.New("employee with this email already exists")

	// ErrResumeNotFound is returned when no resume is recorded or the stored
	// file is missing.
	ErrResumeNotFound = errors.New("resume not found")
)

// Package usecase implements the business logic for the attendance feature.
package usecase

import "errors"

var (
	// ErrAttendanceNotFound is returned when no attendance record matches the given ID.
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrInvalidStatus is returned when a status is outside the attendance enum.
	ErrInvalidStatus = errors.New(`status must be one of: "present", "absent", "medical leave", "work from home"`)

	// ErrEmployeeNotPresent is returned when the referenced employee does not
	// exist or is not currently present.
	ErrEmployeeNotPresent = errors.New("only current employees can have attendance records")
)

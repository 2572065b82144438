// Package usecase implements the business logic for the leave feature.
package usecase

import "errors"

var (
	// ErrLeaveNotFound is returned when no leave matches the given ID.
	ErrLeaveNotFound = errors.New("leave not found")

	// ErrMissingFields is returned when a filing lacks a required field.
	ErrMissingFields = errors.New("employee (or employeeName), fromDate, reason, and designation are required")

	// ErrEmployeeNameNotFound is returned when name resolution finds no
	// present employee with that exact name.
	ErrEmployeeNameNotFound = errors.New("employee with this name not found or not present")

	// ErrForbidden is returned when a non-privileged caller files for
	// someone else.
	ErrForbidden = errors.New("you can only create leave for yourself")

	// ErrInvalidDate is returned when fromDate fails the strict MM/DD/YYYY check.
	ErrInvalidDate = errors.New("fromDate must be in mm/dd/yyyy format")

	// ErrEmployeeNotPresent is returned when the resolved employee is not
	// currently present.
	ErrEmployeeNotPresent = errors.New("only present employees can take leaves")

	// ErrInvalidStatus is returned when an update names a status outside the enum.
	ErrInvalidStatus = errors.New("status must be one of: approved, rejected, pending")

	// ErrDocsNotFound is returned when no document is recorded or the stored
	// file is missing.
	ErrDocsNotFound = errors.New("document not found")
)

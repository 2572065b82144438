// Package usecase implements the business logic for the employee feature.
package usecase

import "errors"

var (
	// ErrEmployeeNotFound is returned when no employee matches the given ID.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmailAlreadyExists is returned when an update would give two
	// employees the same email.
	ErrEmailAlreadyExists = errors.New("employee with this email already exists")
)

// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrPhoneAlreadyExists is returned when attempting to create a user with a phone that already exists.
	ErrPhoneAlreadyExists = errors.New("user with this phone already exists")

	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers unknown emails to prevent user enumeration.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrPasswordTooShort is returned when the password fails the minimum length check.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordMismatch is returned when password and confirmPassword differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidEmail is returned when the email fails the format check.
	ErrInvalidEmail = errors.New("please provide a valid email")

	// ErrInvalidRole is returned when the requested role is outside {HR, Admin}.
	ErrInvalidRole = errors.New("role must be one of: HR, Admin")
)

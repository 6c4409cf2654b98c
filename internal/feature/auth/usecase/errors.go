// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that already exists.
	// Stores return it both from the pre-check path and from a unique-index violation.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidUsername is returned when the username is empty or too long.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidPasswordInput is returned when the password is empty or exceeds the hasher's limit.
	ErrInvalidPasswordInput = errors.New("invalid password input")
)

// Package repository holds the user stores backing sign-in.  Its sentinel
// errors let handlers and the authenticator tell a missing account apart
// from a storage failure.
package repository

import "errors"

// ErrUserNotFound is returned when no account matches the lookup.  The
// authenticator reports it to clients as invalid credentials.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when creating an account whose username
// is already taken.
var ErrUsernameExists = errors.New("username already exists")

package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrUserAlreadyActive   = errors.New("user is already active")
	ErrUserIsNotActive     = errors.New("user is not active")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
	ErrPasswordIsEmpty     = errors.New("password must not be empty")
)

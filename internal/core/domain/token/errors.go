package token

import "errors"

var (
	ErrTokenDoesNotExist = errors.New("token does not exist")
	ErrTokenExpired      = errors.New("token is expired")
	ErrCodeAlreadyExists = errors.New("token code already exists")
)

package group

import "errors"

var (
	ErrGroupDoesNotExist    = errors.New("group does not exist")
	ErrGroupNameAlreadyExists = errors.New("group name already exists")
)

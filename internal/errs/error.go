package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpstream           = errors.New("catalog upstream error")
)

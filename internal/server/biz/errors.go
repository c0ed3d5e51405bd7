package biz

import "errors"

var (
	ErrInvalidJWT   = errors.New("invalid jwt token")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("server internal error, please try again later")
)

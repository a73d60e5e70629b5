package ir

import (
	"errors"
)

var (
	ErrParse     = errors.New("parse error")
	ErrMalformed = errors.New("malformed node")
)

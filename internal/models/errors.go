package models

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("no autorizado")
	ErrConflict   = errors.New("usuario o email ya existe")
	ErrSelfFollow = errors.New("no puedes seguirte a ti mismo")
	ErrInvalid    = errors.New("invalid input")
)

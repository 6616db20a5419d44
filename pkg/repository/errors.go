package repository

import "errors"

var (
	ErrNotFound      = errors.New("repository: entity not found")
	ErrNilEntity     = errors.New("repository: nil entity")
	ErrNoPrimaryKey  = errors.New("repository: entity has no primary key value")
	ErrKeyMismatch   = errors.New("repository: primary key value count mismatch")
	ErrInvalidEntity = errors.New("repository: entity type must be a struct")
)

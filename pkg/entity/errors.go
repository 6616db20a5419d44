package entity

import "errors"

var (
	ErrNotStructPointer = errors.New("entity: destination must be a non-nil pointer to a struct")
	ErrNotStruct        = errors.New("entity: source must be a struct or a pointer to a struct")
	ErrUnknownAttribute = errors.New("entity: unknown attribute")
	ErrConvert          = errors.New("entity: cannot convert value")
)

package form

import "errors"

// ErrUnknownField is returned when rendering a field the form does not declare.
var ErrUnknownField = errors.New("form: unknown field")

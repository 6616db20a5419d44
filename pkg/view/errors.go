package view

import "errors"

var (
	ErrNotFound = errors.New("view: template not found")
	ErrRender   = errors.New("view: render failed")
)

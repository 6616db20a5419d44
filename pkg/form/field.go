package form

import (
	"github.com/dmitrymomot/simplefw/pkg/entity"
	"github.com/dmitrymomot/simplefw/pkg/sanitizer"
)

// Control types.
const (
	Text     = "text"
	Email    = "email"
	Number   = "number"
	Password = "password"
	Date     = "date"
	Hidden   = "hidden"
	Checkbox = "checkbox"
	Textarea = "textarea"
	Select   = "select"
)

// Field describes one form input.
type Field struct {
	// Name is the input name and id. It is matched against entity
	// attributes case-insensitively, ignoring underscores.
	Name  string
	Label string

	// Filter cleans the submitted value. Defaults to sanitizer.StripTags, or
	// sanitizer.SanitizeHTML for textareas.
	Filter sanitizer.Filter

	Required     bool
	Default      string
	ErrorMessage string
	Control      string
	CSSClass     string

	// PrimeKey fields render read-only once the entity has a value.
	PrimeKey bool

	// Options feed select controls. Options sharing a Group are rendered
	// inside one optgroup.
	Options []entity.Option

	// Rows sizes textarea controls.
	Rows int
}

func (f *Field) applyDefaults() {
	if f.Label == "" {
		f.Label = f.Name
	}
	if f.ErrorMessage == "" {
		f.ErrorMessage = f.Label + " non saisi(e)"
	}
	if f.Control == "" {
		f.Control = Text
	}
	if f.CSSClass == "" {
		f.CSSClass = DefaultCSS(f.Control)
	}
	if f.Filter == nil {
		f.Filter = sanitizer.StripTags
		if f.Control == Textarea {
			f.Filter = sanitizer.SanitizeHTML
		}
	}
	if f.Control == Textarea && f.Rows <= 0 {
		f.Rows = 3
	}
}

// DefaultCSS returns the Bootstrap class for a control type.
func DefaultCSS(control string) string {
	switch control {
	case Hidden:
		return ""
	case Checkbox:
		return "form-check-input"
	default:
		return "form-control"
	}
}

package form

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/simplefw/pkg/entity"
)

// Default submit button names.
const (
	SubmitButton = "submitButton"
	CloseButton  = "closeButton"
)

// Manager holds an ordered set of fields.
type Manager struct {
	title       string
	fields      []*Field
	byName      map[string]*Field
	indexRoute  string
	deleteRoute string
}

// New creates an empty form.
func New(title string) *Manager {
	return &Manager{
		title:  title,
		byName: make(map[string]*Field),
	}
}

// Title returns the form title.
func (m *Manager) Title() string { return m.title }

// SetTitle replaces the form title.
func (m *Manager) SetTitle(title string) *Manager {
	m.title = title
	return m
}

// Add appends a field after applying its defaults. Adding a name twice
// replaces the previous definition in place.
func (m *Manager) Add(f Field) *Manager {
	f.applyDefaults()
	if prev, ok := m.byName[f.Name]; ok {
		*prev = f
		return m
	}
	field := &f
	m.fields = append(m.fields, field)
	m.byName[f.Name] = field
	return m
}

// Field returns the named field.
func (m *Manager) Field(name string) (*Field, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Fields returns the fields in declaration order.
func (m *Manager) Fields() []*Field {
	return m.fields
}

// IndexRoute sets the URL of the cancel button.
func (m *Manager) IndexRoute(url string) *Manager {
	m.indexRoute = url
	return m
}

// DeleteRoute sets the URL of the delete button.
func (m *Manager) DeleteRoute(url string) *Manager {
	m.deleteRoute = url
	return m
}

// IsSubmitted reports whether any of buttons was posted.
// With no buttons, SubmitButton and CloseButton are checked.
func IsSubmitted(r *http.Request, buttons ...string) bool {
	if r.Method != http.MethodPost {
		return false
	}
	if len(buttons) == 0 {
		buttons = []string{SubmitButton, CloseButton}
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	for _, b := range buttons {
		if _, ok := r.PostForm[b]; ok {
			return true
		}
	}
	return false
}

// Validate returns the error message of every required or prime-key field
// whose filtered value is empty.
func (m *Manager) Validate(r *http.Request) []string {
	data := m.Data(r)
	var errs []string
	for _, f := range m.fields {
		if !f.Required && !f.PrimeKey {
			continue
		}
		if strings.TrimSpace(data[f.Name]) == "" {
			errs = append(errs, f.ErrorMessage)
		}
	}
	return errs
}

// IsValid reports whether Validate finds nothing.
func (m *Manager) IsValid(r *http.Request) bool {
	return len(m.Validate(r)) == 0
}

// Data returns the filtered posted values keyed by field name.
// An absent checkbox yields "0".
func (m *Manager) Data(r *http.Request) map[string]string {
	data, _ := m.values(r)
	return data
}

// Bind copies the filtered posted values onto dst, a pointer to a struct.
// Fields that were not posted (checkboxes aside) and fields dst has no
// attribute for are left untouched.
func (m *Manager) Bind(r *http.Request, dst any) error {
	data, posted := m.values(r)
	for _, f := range m.fields {
		if !posted[f.Name] && f.Control != Checkbox {
			continue
		}
		if !entity.Has(dst, f.Name) {
			continue
		}
		if err := entity.Set(dst, f.Name, data[f.Name]); err != nil {
			return fmt.Errorf("form: field %s: %w", f.Name, err)
		}
	}
	return nil
}

func (m *Manager) values(r *http.Request) (map[string]string, map[string]bool) {
	_ = r.ParseForm()

	data := make(map[string]string, len(m.fields))
	posted := make(map[string]bool, len(m.fields))
	for _, f := range m.fields {
		raw, ok := r.PostForm[f.Name]
		if !ok {
			if f.Control == Checkbox {
				data[f.Name] = "0"
			} else {
				data[f.Name] = ""
			}
			continue
		}
		posted[f.Name] = true
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}
		data[f.Name] = f.Filter(value)
	}
	return data, posted
}

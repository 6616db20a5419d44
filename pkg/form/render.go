package form

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/simplefw/pkg/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var fragments = template.Must(template.New("form").ParseFS(templateFS, "templates/*.html"))

// Button labels.
const (
	LabelAdd      = "Ajouter"
	LabelAddClose = "Ajouter & fermer"
	LabelValidate = "Valider"
)

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Class    string
	Value    string
	Rows     int
	Required bool
	Readonly bool
	Checked  bool
	Groups   []optionGroup
}

type optionGroup struct {
	Label   string
	Options []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type buttonsView struct {
	Submit      string
	Close       string
	IndexRoute  string
	DeleteRoute string
}

// Render renders every field for ent, in declaration order.
func (m *Manager) Render(ent any) (template.HTML, error) {
	var b strings.Builder
	for _, f := range m.fields {
		html, err := m.renderField(f, ent)
		if err != nil {
			return "", err
		}
		b.WriteString(string(html))
		b.WriteByte('\n')
	}
	return template.HTML(b.String()), nil //nolint:gosec // built from escaped fragments
}

// RenderField renders a single field by name.
func (m *Manager) RenderField(name string, ent any) (template.HTML, error) {
	f, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return m.renderField(f, ent)
}

// RenderButtons renders the submit bar. A nil entity gets the "add" and
// "add & close" buttons; an existing one gets "validate" and, when a
// delete route is set, the delete link.
func (m *Manager) RenderButtons(ent any) (template.HTML, error) {
	v := buttonsView{IndexRoute: m.indexRoute}
	if isEmpty(ent) {
		v.Submit = LabelAdd
		v.Close = LabelAddClose
	} else {
		v.Close = LabelValidate
		v.DeleteRoute = m.deleteRoute
	}
	return execute("buttons", v)
}

func (m *Manager) renderField(f *Field, ent any) (template.HTML, error) {
	value, has := fieldValue(f, ent)
	if !has {
		value = f.Default
	}

	v := fieldView{
		Name:     f.Name,
		Label:    f.Label,
		Type:     f.Control,
		Class:    f.CSSClass,
		Value:    value,
		Rows:     f.Rows,
		Required: f.Required,
	}

	if f.PrimeKey && has && value != "" && value != "0" {
		v.Class = "form-control-plaintext"
		v.Readonly = true
	}

	name := "group"
	switch f.Control {
	case Hidden:
		name = "hidden"
	case Textarea:
		name = "textarea"
	case Checkbox:
		name = "checkbox"
		v.Checked = value == "1"
	case Select:
		name = "select"
		v.Groups = groupOptions(f.Options, value)
	}
	return execute(name, v)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("form: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // html/template output
}

// groupOptions keeps the order in which groups first appear.
func groupOptions(opts []entity.Option, selected string) []optionGroup {
	var groups []optionGroup
	index := make(map[string]int)
	for _, o := range opts {
		i, ok := index[o.Group]
		if !ok {
			i = len(groups)
			index[o.Group] = i
			groups = append(groups, optionGroup{Label: o.Group})
		}
		groups[i].Options = append(groups[i].Options, optionView{
			Value:    o.Value,
			Label:    o.Label,
			Selected: o.Value == selected,
		})
	}
	return groups
}

// fieldValue reads the field attribute from ent. It reports false when
// there is no entity, no such attribute or the attribute is nil.
func fieldValue(f *Field, ent any) (string, bool) {
	if isEmpty(ent) {
		return "", false
	}
	v, err := entity.Get(ent, f.Name)
	if err != nil || v == nil {
		return "", false
	}
	return format(v, f.Control), true
}

func format(v any, control string) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if control == Date {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func isEmpty(ent any) bool {
	if ent == nil {
		return true
	}
	rv := reflect.ValueOf(ent)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

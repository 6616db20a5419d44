package internal

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// ControllerFactory builds a controller for one request. repo is the
// repository named by the route, or nil when none is registered.
type ControllerFactory func(repo any) any

// RepositoryFactory returns the repository for a route.
type RepositoryFactory func() any

// APIController serves the JSON routes under /api/<entities>.
// id is the first route parameter, empty for the collection.
type APIController interface {
	Get(c Context, id string) error
	Post(c Context) error
	Put(c Context, id string) error
	Delete(c Context, id string) error
}

// DispatcherOption registers controllers and repositories.
type DispatcherOption func(*Dispatcher)

// WithController registers a controller factory under its conventional
// name, such as "CategoryController" or "CategoriesController".
func WithController(name string, f ControllerFactory) DispatcherOption {
	return func(d *Dispatcher) {
		if name != "" && f != nil {
			d.controllers[name] = f
		}
	}
}

// WithRepository registers a repository factory under its conventional
// name, such as "CategoryRepository".
func WithRepository(name string, f RepositoryFactory) DispatcherOption {
	return func(d *Dispatcher) {
		if name != "" && f != nil {
			d.repositories[name] = f
		}
	}
}

// ControllerFor adapts a typed factory to a ControllerFactory. A repository
// of another type reaches f as the zero value of R.
func ControllerFor[R any](f func(R) any) ControllerFactory {
	return func(repo any) any {
		r, _ := repo.(R)
		return f(r)
	}
}

// Dispatcher routes every request by naming convention. Web routes call the
// controller method matching the action, API routes call the APIController
// method matching the HTTP verb.
type Dispatcher struct {
	controllers  map[string]ControllerFactory
	repositories map[string]RepositoryFactory

	// methods caches action lookups per controller type and name.
	methods sync.Map // methodKey -> int (method index, -1 when absent)
}

type methodKey struct {
	typ  reflect.Type
	name string
}

var handlerFuncType = reflect.TypeFor[func(Context) error]()

// NewDispatcher creates a Dispatcher with the given registrations.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		controllers:  make(map[string]ControllerFactory),
		repositories: make(map[string]RepositoryFactory),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Routes mounts the dispatcher as a catch-all for every method.
func (d *Dispatcher) Routes(r Router) {
	r.Any("/", d.Dispatch)
	r.Any("/*", d.Dispatch)
}

// Dispatch resolves and invokes the controller for the request.
func (d *Dispatcher) Dispatch(c Context) error {
	rt := c.Route()

	var repo any
	if f, ok := d.repositories[rt.Repository]; ok {
		repo = f()
	}

	if rt.IsAPI {
		return d.dispatchAPI(c, rt.APIController, repo)
	}
	return d.dispatchWeb(c, rt.Controller, rt.Candidates(c.Request().Method), repo)
}

func (d *Dispatcher) dispatchWeb(c Context, name string, candidates []string, repo any) error {
	factory, ok := d.controllers[name]
	if !ok {
		return ErrNotFound("Page not found", WithDetail("unknown controller "+name))
	}
	ctrl := factory(repo)

	for _, candidate := range candidates {
		if h, ok := d.action(ctrl, candidate); ok {
			return h(c)
		}
	}
	return ErrNotFound("Page not found",
		WithDetail("no action "+strings.Join(candidates, " or ")+" on "+name))
}

func (d *Dispatcher) dispatchAPI(c Context, name string, repo any) error {
	factory, ok := d.controllers[name]
	if !ok || name == "" {
		return ErrNotFound("Resource not found")
	}
	ctrl, ok := factory(repo).(APIController)
	if !ok {
		return ErrInternal("Internal Server Error", WithError(ErrNotAPIController))
	}

	id := c.Arg(0)
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		return ctrl.Get(c, id)
	case http.MethodPost:
		return ctrl.Post(c)
	case http.MethodPut, http.MethodPatch:
		return ctrl.Put(c, id)
	case http.MethodDelete:
		return ctrl.Delete(c, id)
	default:
		return ErrMethodNotAllowed("Method not allowed")
	}
}

// action finds the exported method named after candidate with its first
// letter uppercased. Only methods of type func(Context) error qualify.
func (d *Dispatcher) action(ctrl any, candidate string) (HandlerFunc, bool) {
	if ctrl == nil || candidate == "" {
		return nil, false
	}
	v := reflect.ValueOf(ctrl)
	name := exported(candidate)
	key := methodKey{typ: v.Type(), name: name}

	idx, cached := d.methods.Load(key)
	if !cached {
		idx = -1
		if m, ok := v.Type().MethodByName(name); ok && v.Method(m.Index).Type() == handlerFuncType {
			idx = m.Index
		}
		d.methods.Store(key, idx)
	}

	i := idx.(int)
	if i < 0 {
		return nil, false
	}
	fn, ok := v.Method(i).Interface().(func(Context) error)
	return fn, ok
}

func exported(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

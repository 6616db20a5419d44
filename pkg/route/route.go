package route

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/simplefw/pkg/inflect"
)

const (
	// QueryKey is the query parameter that may carry the route path.
	QueryKey = "route"

	// APIPrefix marks API routes when it is the first path segment.
	APIPrefix = "api"

	DefaultEntity     = "Home"
	DefaultController = "HomeController"
	DefaultAction     = "indexAction"
	DefaultRepository = "HomeRepository"

	controllerSuffix = "Controller"
	repositorySuffix = "Repository"
	actionSuffix     = "Action"
)

// Route is the result of parsing a request path.
type Route struct {
	Path          string
	Entity        string
	Controller    string
	APIController string
	Action        string
	Repository    string
	Params        []string
	Query         url.Values
	IsAPI         bool
}

// Parse splits path into route parts. path is the escaped URL path, and each
// segment is unescaped once, so "a%2Fb" stays a single param. When query
// carries a "route" value it takes precedence over path; that value is
// already decoded and its segments are used as is.
func Parse(path string, query url.Values) Route {
	q := url.Values{}
	escaped := true
	for k, v := range query {
		if k == QueryKey {
			if p := strings.TrimSpace(firstOf(v)); p != "" {
				path = p
				escaped = false
			}
			continue
		}
		q[k] = v
	}

	r := Route{
		Path:       "/" + strings.Trim(path, "/"),
		Entity:     DefaultEntity,
		Controller: DefaultController,
		Action:     DefaultAction,
		Repository: DefaultRepository,
		Query:      q,
	}

	parts := segments(path, escaped)
	if len(parts) > 0 && strings.EqualFold(parts[0], APIPrefix) {
		r.IsAPI = true
		parts = parts[1:]
	}

	if len(parts) > 0 {
		r.Entity = inflect.Pascalize(parts[0])
		r.Controller = r.Entity + controllerSuffix
		r.APIController = inflect.Pluralize(r.Entity) + controllerSuffix
		r.Repository = r.Entity + repositorySuffix
		parts = parts[1:]
	}

	if !r.IsAPI && len(parts) > 0 {
		r.Action = inflect.Camelize(parts[0]) + actionSuffix
		parts = parts[1:]
	}

	r.Params = append(r.Params, parts...)

	return r
}

// FromRequest parses the route of an HTTP request.
func FromRequest(req *http.Request) Route {
	return Parse(req.URL.EscapedPath(), req.URL.Query())
}

// Param returns the i-th route parameter or an empty string.
func (r Route) Param(i int) string {
	if i < 0 || i >= len(r.Params) {
		return ""
	}
	return r.Params[i]
}

// Base returns the action name without its "Action" suffix.
func (r Route) Base() string {
	return strings.TrimSuffix(r.Action, actionSuffix)
}

// Candidates returns the controller method names to try for the given HTTP
// method, most specific first. A GET on "editAction" yields "getEdit" then
// "editAction"; verbs other than GET and POST only try the action itself.
func (r Route) Candidates(method string) []string {
	base := inflect.Pascalize(r.Base())
	switch method {
	case http.MethodGet, http.MethodHead:
		return []string{"get" + base, r.Action}
	case http.MethodPost:
		return []string{"post" + base, r.Action}
	default:
		return []string{r.Action}
	}
}

// segments splits path on "/" and drops empty parts. Escaped segments are
// unescaped once; a malformed escape is kept verbatim.
func segments(path string, escaped bool) []string {
	raw := strings.Split(strings.Trim(path, "/"), "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if escaped {
			if v, err := url.PathUnescape(p); err == nil {
				p = v
			}
		}
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func firstOf(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

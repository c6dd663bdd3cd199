// Package nav holds the site's fixed route table and the navigation menus
// built from it.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned for paths outside the route table.
var ErrUnknownRoute = errors.New("unknown route")

// Route is one of the site's page paths.
type Route string

const (
	Home       Route = "/"
	About      Route = "/about"
	Services   Route = "/services"
	Industries Route = "/industries"
	Tools      Route = "/tools"
	Contact    Route = "/contact"
)

var routes = []Route{Home, About, Services, Industries, Tools, Contact}

// All returns every route in menu order.
func All() []Route {
	return append([]Route(nil), routes...)
}

// Parse maps a request path to its route. A trailing slash is ignored and the
// empty path is the home page.
func Parse(path string) (Route, error) {
	p := strings.TrimSuffix(path, "/")
	if p == "" {
		return Home, nil
	}
	for _, r := range routes {
		if string(r) == p {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// Slug is the route's single-word name: "home" for the root.
func (r Route) Slug() string {
	if r == Home {
		return "home"
	}
	return strings.TrimPrefix(string(r), "/")
}

// Template is the page template file rendered for the route.
func (r Route) Template() string { return r.Slug() + ".html" }

// OutputPath is the file the route is exported to, relative to the export root.
func (r Route) OutputPath() string {
	if r == Home {
		return "index.html"
	}
	return r.Slug() + "/index.html"
}

// Label is the menu text for the route.
func (r Route) Label() string {
	switch r {
	case Home:
		return "Home"
	case About:
		return "About"
	case Services:
		return "Services"
	case Industries:
		return "Industries"
	case Tools:
		return "Tools & Methodology"
	case Contact:
		return "Contact"
	}
	return string(r)
}

// Link is a menu entry rendered for a particular current route.
type Link struct {
	Route  Route
	Label  string
	Active bool
}

// Header returns the desktop and mobile menu links with the current route
// marked active. Contact is reached through the call-to-action instead.
func Header(current Route) []Link {
	return links([]Route{Home, About, Services, Industries, Tools}, current)
}

// Footer returns the footer's quick links.
func Footer(current Route) []Link {
	return links([]Route{Services, Industries, Tools, Contact}, current)
}

func links(rs []Route, current Route) []Link {
	out := make([]Link, len(rs))
	for i, r := range rs {
		out[i] = Link{Route: r, Label: r.Label(), Active: r == current}
	}
	return out
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Route Route
	Label string
}

// Breadcrumbs returns the trail from the home page to r.
func Breadcrumbs(r Route) []Crumb {
	trail := []Crumb{{Route: Home, Label: Home.Label()}}
	if r != Home {
		trail = append(trail, Crumb{Route: r, Label: r.Label()})
	}
	return trail
}

package nav

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path    string
		want    Route
		wantErr bool
	}{
		{"/", Home, false},
		{"", Home, false},
		{"/about", About, false},
		{"/about/", About, false},
		{"/services", Services, false},
		{"/industries", Industries, false},
		{"/tools", Tools, false},
		{"/contact", Contact, false},
		{"/pricing", "", true},
		{"/about/team", "", true},
		{"about", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Parse(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRoute) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownRoute", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRoutePaths(t *testing.T) {
	tests := []struct {
		route    Route
		slug     string
		template string
		output   string
	}{
		{Home, "home", "home.html", "index.html"},
		{About, "about", "about.html", "about/index.html"},
		{Tools, "tools", "tools.html", "tools/index.html"},
		{Contact, "contact", "contact.html", "contact/index.html"},
	}
	for _, tt := range tests {
		if got := tt.route.Slug(); got != tt.slug {
			t.Errorf("%s.Slug() = %q, want %q", tt.route, got, tt.slug)
		}
		if got := tt.route.Template(); got != tt.template {
			t.Errorf("%s.Template() = %q, want %q", tt.route, got, tt.template)
		}
		if got := tt.route.OutputPath(); got != tt.output {
			t.Errorf("%s.OutputPath() = %q, want %q", tt.route, got, tt.output)
		}
	}
}

func TestHeaderMarksActive(t *testing.T) {
	links := Header(Services)
	if len(links) != 5 {
		t.Fatalf("Header() returned %d links, want 5", len(links))
	}
	active := 0
	for _, l := range links {
		if l.Active {
			active++
			if l.Route != Services {
				t.Errorf("active link = %s, want %s", l.Route, Services)
			}
		}
	}
	if active != 1 {
		t.Errorf("active links = %d, want 1", active)
	}
	if links[4].Label != "Tools & Methodology" {
		t.Errorf("tools label = %q", links[4].Label)
	}
}

func TestFooterOnHomeHasNoActive(t *testing.T) {
	for _, l := range Footer(Home) {
		if l.Active {
			t.Errorf("footer link %s marked active on home", l.Route)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	if got := Breadcrumbs(Home); len(got) != 1 {
		t.Errorf("Breadcrumbs(Home) = %v, want single crumb", got)
	}
	got := Breadcrumbs(Industries)
	if len(got) != 2 || got[0].Route != Home || got[1].Label != "Industries" {
		t.Errorf("Breadcrumbs(Industries) = %v", got)
	}
	if len(All()) != 6 {
		t.Errorf("All() = %d routes, want 6", len(All()))
	}
}

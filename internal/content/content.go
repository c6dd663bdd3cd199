// Package content holds the site copy: organization details, per-page SEO
// text, services, industries, methodology and tools. The canonical copy is
// embedded; a development build can point at an on-disk file instead.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BenedictTTM/qualipro/internal/nav"
)

//go:embed site.yaml
var embedded []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid content")

// Site is the full copy deck.
type Site struct {
	Organization Organization        `yaml:"organization" json:"organization"`
	Pages        map[string]PageMeta `yaml:"pages" json:"pages"`
	Home         Home                `yaml:"home" json:"home"`
	About        About               `yaml:"about" json:"about"`
	Services     []Service           `yaml:"services" json:"services"`
	Industries   []Industry          `yaml:"industries" json:"industries"`
	Methodology  Methodology         `yaml:"methodology" json:"methodology"`
	Tools        []Tool              `yaml:"tools" json:"tools"`
}

type Organization struct {
	Name          string   `yaml:"name" json:"name"`
	AlternateName string   `yaml:"alternate_name" json:"alternate_name,omitempty"`
	Slogan        string   `yaml:"slogan" json:"slogan"`
	Description   string   `yaml:"description" json:"description"`
	URL           string   `yaml:"url" json:"url"`
	Logo          string   `yaml:"logo" json:"logo"`
	FoundingDate  string   `yaml:"founding_date" json:"founding_date,omitempty"`
	Email         string   `yaml:"email" json:"email"`
	Phones        []Phone  `yaml:"phones" json:"phones"`
	WhatsApp      string   `yaml:"whatsapp" json:"whatsapp,omitempty"`
	Address       Address  `yaml:"address" json:"address"`
	Geo           Geo      `yaml:"geo" json:"geo"`
	AreaServed    []string `yaml:"area_served" json:"area_served,omitempty"`
	SameAs        []string `yaml:"same_as" json:"same_as,omitempty"`
	ServiceTypes  []string `yaml:"service_types" json:"service_types,omitempty"`
	KnowsAbout    []string `yaml:"knows_about" json:"knows_about,omitempty"`
}

// Phone is a number as shown to visitors plus its dialable form.
type Phone struct {
	Display string `yaml:"display" json:"display"`
	Tel     string `yaml:"tel" json:"tel"`
}

type Address struct {
	Display  string `yaml:"display" json:"display"`
	Locality string `yaml:"locality" json:"locality"`
	Region   string `yaml:"region" json:"region"`
	Country  string `yaml:"country" json:"country"`
}

type Geo struct {
	Latitude  string `yaml:"latitude" json:"latitude"`
	Longitude string `yaml:"longitude" json:"longitude"`
}

// PageMeta is the per-route title, description and hero copy.
type PageMeta struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Heading     string `yaml:"heading" json:"heading,omitempty"`
	Intro       string `yaml:"intro" json:"intro,omitempty"`
}

type Home struct {
	Headline        string     `yaml:"headline" json:"headline"`
	Highlight       string     `yaml:"highlight" json:"highlight"`
	Lead            string     `yaml:"lead" json:"lead"`
	Image           string     `yaml:"image" json:"image"`
	IntroVideo      IntroVideo `yaml:"intro_video" json:"intro_video"`
	Stats           []Stat     `yaml:"stats" json:"stats"`
	PopularServices []string   `yaml:"popular_services" json:"popular_services"`
}

// IntroVideo is the media played by the home page intro overlay.
type IntroVideo struct {
	Src    string `yaml:"src" json:"src"`
	Poster string `yaml:"poster" json:"poster,omitempty"`
}

// Stat is a percentage shown on the home page.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value int    `yaml:"value" json:"value"`
}

type About struct {
	// WhoWeAre is Markdown.
	WhoWeAre   string      `yaml:"who_we_are" json:"who_we_are"`
	Mission    string      `yaml:"mission" json:"mission"`
	Vision     string      `yaml:"vision" json:"vision"`
	CoreValues []CoreValue `yaml:"core_values" json:"core_values"`
}

type CoreValue struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Service struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	KeyAreas    []string `yaml:"key_areas" json:"key_areas"`
	Benefits    []string `yaml:"benefits" json:"benefits"`
}

type Industry struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Value       []string `yaml:"value" json:"value"`
}

type Methodology struct {
	Intro string `yaml:"intro" json:"intro"`
	Steps []Step `yaml:"steps" json:"steps"`
}

type Step struct {
	Step        string `yaml:"step" json:"step"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Tool struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	FullName      string   `yaml:"full_name" json:"full_name"`
	Description   string   `yaml:"description" json:"description"`
	WhatItDoes    []string `yaml:"what_it_does" json:"what_it_does"`
	BusinessValue []string `yaml:"business_value" json:"business_value"`
}

// Default returns the embedded copy.
func Default() (*Site, error) {
	s, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return s, nil
}

// LoadFile reads and validates a content file.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every missing required field at once.
func (s *Site) Validate() error {
	var errs []error
	missing := func(field string) {
		errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalid, field))
	}

	if s.Organization.Name == "" {
		missing("organization.name")
	}
	if s.Organization.URL == "" {
		missing("organization.url")
	}
	if s.Organization.Email == "" {
		missing("organization.email")
	}
	for _, r := range nav.All() {
		if s.Pages[r.Slug()].Title == "" {
			missing("pages." + r.Slug() + ".title")
		}
	}
	if len(s.Services) == 0 {
		missing("services")
	}
	for i, svc := range s.Services {
		if svc.Title == "" {
			missing(fmt.Sprintf("services[%d].title", i))
		}
	}
	for i, ind := range s.Industries {
		if ind.Title == "" {
			missing(fmt.Sprintf("industries[%d].title", i))
		}
	}
	seen := make(map[string]bool, len(s.Tools))
	for i, t := range s.Tools {
		if t.ID == "" {
			missing(fmt.Sprintf("tools[%d].id", i))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate tool id %q", ErrInvalid, t.ID))
		}
		seen[t.ID] = true
	}
	return errors.Join(errs...)
}

// Page returns the SEO and hero copy for a route.
func (s *Site) Page(r nav.Route) PageMeta {
	return s.Pages[r.Slug()]
}

// FilterServices returns the services whose title, description or key areas
// contain query, case-insensitively. An empty query returns every service.
func (s *Site) FilterServices(query string) []Service {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Service(nil), s.Services...)
	}
	var out []Service
	for _, svc := range s.Services {
		if matches(q, svc.Title, svc.Description) || matches(q, svc.KeyAreas...) {
			out = append(out, svc)
		}
	}
	return out
}

// Tool returns the tool with the given id.
func (s *Site) Tool(id string) (Tool, bool) {
	for _, t := range s.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// WhatsAppURL is the click-to-chat link, or "" when no number is configured.
func (o Organization) WhatsAppURL() string {
	if o.WhatsApp == "" {
		return ""
	}
	return "https://wa.me/" + o.WhatsApp
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

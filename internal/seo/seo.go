// Package seo builds the per-route head metadata, schema.org structured data
// and the sitemap. Everything is derived from the content copy and the
// configured base URL, never from request input.
package seo

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"strings"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
)

// Meta is the head metadata for one route.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	SiteName    string
	Image       string
	OpenGraph   []Property
	Twitter     []Property
}

// Property is a single meta tag.
type Property struct {
	Key     string
	Content string
}

// Builder derives metadata for a base URL.
type Builder struct {
	baseURL string
}

// NewBuilder returns a builder for baseURL. A trailing slash is dropped.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// URL returns the absolute URL of a site path.
func (b *Builder) URL(path string) string {
	if path == "" || path == "/" {
		return b.baseURL + "/"
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// Meta returns the head metadata for r.
func (b *Builder) Meta(site *content.Site, r nav.Route) Meta {
	page := site.Page(r)
	m := Meta{
		Title:       page.Title,
		Description: page.Description,
		Canonical:   b.URL(string(r)),
		SiteName:    site.Organization.Name,
		Image:       b.URL(site.Organization.Logo),
	}
	m.OpenGraph = []Property{
		{"og:type", "website"},
		{"og:site_name", m.SiteName},
		{"og:title", m.Title},
		{"og:description", m.Description},
		{"og:url", m.Canonical},
		{"og:image", m.Image},
	}
	m.Twitter = []Property{
		{"twitter:card", "summary_large_image"},
		{"twitter:title", m.Title},
		{"twitter:description", m.Description},
		{"twitter:image", m.Image},
	}
	return m
}

// StructuredData returns the JSON-LD documents for r: the organization, the
// breadcrumb trail and the site navigation.
func (b *Builder) StructuredData(site *content.Site, r nav.Route) ([]template.JS, error) {
	docs := []any{
		b.organization(site.Organization),
		b.breadcrumbs(r),
		b.navigation(),
	}
	out := make([]template.JS, 0, len(docs))
	for _, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding structured data: %w", err)
		}
		out = append(out, template.JS(data))
	}
	return out, nil
}

type thing = map[string]any

func (b *Builder) organization(o content.Organization) thing {
	phones := make([]string, 0, len(o.Phones))
	for _, p := range o.Phones {
		phones = append(phones, p.Display)
	}
	contact := thing{
		"@type":             "ContactPoint",
		"contactType":       "Customer Service",
		"email":             o.Email,
		"areaServed":        o.AreaServed,
		"availableLanguage": []string{"English"},
	}
	if len(o.Phones) > 0 {
		contact["telephone"] = o.Phones[0].Display
	}
	areas := make([]thing, 0, len(o.AreaServed))
	for _, a := range o.AreaServed {
		kind := "Country"
		if a == "Africa" {
			kind = "Continent"
		}
		areas = append(areas, thing{"@type": kind, "name": a})
	}
	org := thing{
		"@context":     "https://schema.org",
		"@type":        "Organization",
		"name":         o.Name,
		"url":          b.URL("/"),
		"logo":         b.URL(o.Logo),
		"image":        b.URL(o.Logo),
		"description":  o.Description,
		"slogan":       o.Slogan,
		"email":        o.Email,
		"telephone":    phones,
		"contactPoint": contact,
		"address": thing{
			"@type":           "PostalAddress",
			"addressCountry":  o.Address.Country,
			"addressRegion":   o.Address.Region,
			"addressLocality": o.Address.Locality,
		},
		"geo": thing{
			"@type":     "GeoCoordinates",
			"latitude":  o.Geo.Latitude,
			"longitude": o.Geo.Longitude,
		},
		"areaServed":  areas,
		"sameAs":      o.SameAs,
		"serviceType": o.ServiceTypes,
		"knowsAbout":  o.KnowsAbout,
	}
	if o.AlternateName != "" {
		org["alternateName"] = o.AlternateName
	}
	if o.FoundingDate != "" {
		org["foundingDate"] = o.FoundingDate
	}
	return org
}

func (b *Builder) breadcrumbs(r nav.Route) thing {
	crumbs := nav.Breadcrumbs(r)
	items := make([]thing, len(crumbs))
	for i, c := range crumbs {
		items[i] = thing{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Label,
			"item":     b.URL(string(c.Route)),
		}
	}
	return thing{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func (b *Builder) navigation() thing {
	routes := nav.All()
	items := make([]thing, len(routes))
	for i, r := range routes {
		items[i] = thing{
			"@type":    "SiteNavigationElement",
			"position": i + 1,
			"name":     r.Label(),
			"url":      b.URL(string(r)),
		}
	}
	return thing{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": items,
	}
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Sitemap returns sitemap.xml listing every route.
func (b *Builder) Sitemap() ([]byte, error) {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, r := range nav.All() {
		prio := 0.8
		if r == nav.Home {
			prio = 1.0
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: b.URL(string(r)), ChangeFreq: "monthly", Priority: prio})
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// Robots returns robots.txt pointing at the sitemap.
func (b *Builder) Robots() []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + b.URL("/sitemap.xml") + "\n")
}

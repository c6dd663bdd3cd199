package site

import (
	"strconv"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/ui"
)

// Layout returns the disclosures each route mounts. The templates emit the
// same accordion ids, modes and panel ids, so the browser script and the Go
// controllers agree on the page structure.
func Layout(s *content.Site) ui.Layout {
	return func(r nav.Route) ui.PageSpec {
		spec := ui.PageSpec{Route: r}
		switch r {
		case nav.Home:
			spec.Intro = s.Home.IntroVideo.Src != ""
		case nav.Services:
			spec.Accordions = []ui.AccordionSpec{{ID: "services", Mode: ui.Exclusive, Panels: panelIDs(len(s.Services))}}
		case nav.Industries:
			spec.Accordions = []ui.AccordionSpec{{ID: "industries", Mode: ui.Exclusive, Panels: panelIDs(len(s.Industries))}}
		case nav.Tools:
			spec.Accordions = []ui.AccordionSpec{{ID: "tools", Mode: ui.Independent, Panels: panelIDs(len(s.Tools))}}
		}
		return spec
	}
}

func panelIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	return ids
}

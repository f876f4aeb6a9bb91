package article

import (
	"fmt"
	"strings"

	"viralfeed/domain"
)

// markerRule describes how to slice an outlet's rendered page: one start
// marker and an ordered list of end-marker fallbacks.
type markerRule struct {
	start string
	ends  []string
}

var markerRules = map[domain.Outlet]markerRule{
	domain.OutletTechCrunch: {
		start: "#",
		ends:  []string{"## Most Popular", "![Author Avatar]", "## Related"},
	},
	domain.OutletArsTechnica: {
		start: "####",
		ends:  []string{"### Channel Ars Technica"},
	},
}

// Extract slices the article body out of the link-stripped rendering and
// pulls the lead image URL from the link-preserving one. The body text is
// mandatory; a missing image is not an error.
func Extract(outlet domain.Outlet, body, linked string) (string, string, error) {
	rule, ok := markerRules[outlet]
	if !ok {
		return "", "", fmt.Errorf("no marker rules for outlet %q", outlet)
	}
	text, err := sliceBetween(outlet, body, rule)
	if err != nil {
		return "", "", err
	}
	return text, extractImage(outlet, linked), nil
}

func sliceBetween(outlet domain.Outlet, text string, rule markerRule) (string, error) {
	start := strings.Index(text, rule.start)
	if start == -1 {
		return "", &domain.ExtractionError{Outlet: outlet, StartMarker: rule.start, EndMarkers: rule.ends}
	}
	start += len(rule.start)
	for _, end := range rule.ends {
		if pos := strings.Index(text[start:], end); pos != -1 {
			return strings.TrimSpace(text[start : start+pos]), nil
		}
	}
	return "", &domain.ExtractionError{Outlet: outlet, StartMarker: rule.start, EndMarkers: rule.ends}
}

func extractImage(outlet domain.Outlet, linked string) string {
	switch outlet {
	case domain.OutletTechCrunch:
		return techcrunchImage(linked)
	case domain.OutletArsTechnica:
		return arstechnicaImage(linked)
	}
	return ""
}

// techcrunchImage finds the lead image as the last inline link target before
// the photo-credit boundary.
func techcrunchImage(linked string) string {
	compact := strings.NewReplacer("\n", "", " ", "").Replace(linked)
	head, _, found := strings.Cut(compact, ")**ImageCredits:**")
	if !found {
		return ""
	}
	idx := strings.LastIndex(head, "](")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(head[idx+2:])
}

// arstechnicaImage takes the target of the "Enlarge" link anchor.
func arstechnicaImage(linked string) string {
	_, rest, found := strings.Cut(linked, "[Enlarge](")
	if !found {
		return ""
	}
	url, _, found := strings.Cut(rest, ")")
	if !found {
		return ""
	}
	return strings.ReplaceAll(strings.TrimSpace(url), "\n", "")
}

package devserver

import (
	"fmt"
	"unicode/utf8"
)

// Audit thresholds.
const (
	minTitleLength    = 10
	maxTitleLength    = 60
	minMetaDescLength = 50
	maxMetaDescLength = 160
	slowLoadTimeMS    = 3000
	verySlowLoadMS    = 6000
)

// finding is an issue before it is attached to a stored page.
type finding struct {
	issueType   string
	severity    string
	description string
}

// audit applies the backend's on-page checks to a page.
// Severities follow the backend: critical, high and warning.
func audit(p FixturePage) []finding {
	var out []finding

	switch n := utf8.RuneCountInString(p.Title); {
	case n == 0:
		out = append(out, finding{"missing_title", "critical", "Page is missing a title tag."})
	case n < minTitleLength:
		out = append(out, finding{"short_title", "warning",
			fmt.Sprintf("Title is too short (%d chars). Recommended: %d-%d chars.", n, minTitleLength, maxTitleLength)})
	case n > maxTitleLength:
		out = append(out, finding{"long_title", "warning",
			fmt.Sprintf("Title is too long (%d chars). Recommended: %d-%d chars.", n, minTitleLength, maxTitleLength)})
	}

	switch n := utf8.RuneCountInString(p.MetaDescription); {
	case n == 0:
		out = append(out, finding{"missing_meta_desc", "high", "Page is missing a meta description."})
	case n < minMetaDescLength:
		out = append(out, finding{"short_meta_desc", "warning",
			fmt.Sprintf("Meta description is too short (%d chars). Recommended: %d-%d chars.", n, minMetaDescLength, maxMetaDescLength)})
	case n > maxMetaDescLength:
		out = append(out, finding{"long_meta_desc", "warning",
			fmt.Sprintf("Meta description is too long (%d chars). Recommended: %d-%d chars.", n, minMetaDescLength, maxMetaDescLength)})
	}

	if p.H1 == "" {
		out = append(out, finding{"missing_h1", "high", "Page is missing an H1 heading."})
	}

	switch {
	case p.LoadTimeMS > verySlowLoadMS:
		out = append(out, finding{"slow_load_time", "critical",
			fmt.Sprintf("Page load time is very slow (%dms). Recommended: < %dms.", p.LoadTimeMS, slowLoadTimeMS)})
	case p.LoadTimeMS > slowLoadTimeMS:
		out = append(out, finding{"slow_load_time", "warning",
			fmt.Sprintf("Page load time is slow (%dms). Recommended: < %dms.", p.LoadTimeMS, slowLoadTimeMS)})
	}

	return out
}

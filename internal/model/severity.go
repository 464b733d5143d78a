package model

import "strings"

// Severity is the rank of an issue severity string.
// The backend sends severities as free-form strings; only "critical" and "high"
// have an agreed position. Every other value (medium, low, warning, or anything
// the crawler adds later) is ranked in the catch-all SeverityOther bucket.
//
// Design decision: We keep the raw string on Issue and derive the rank on demand
// instead of decoding into Severity. The string must round-trip unchanged to the
// presentation layer, and the set of values is open.
type Severity int

const (
	// SeverityOther is the catch-all bucket for every severity below high,
	// including values the client does not recognise.
	SeverityOther Severity = iota

	// SeverityHigh indicates an issue that noticeably hurts search ranking.
	// Examples: missing meta description, missing H1.
	SeverityHigh

	// SeverityCritical indicates an issue that likely blocks indexing or ranking.
	// Examples: missing title, very slow page load.
	SeverityCritical
)

// Raw severity values with an agreed rank.
const (
	SeverityCriticalValue = "critical"
	SeverityHighValue     = "high"
)

// String returns a human-readable representation of the severity rank.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity ranks a raw severity string.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unknown values return SeverityOther.
func ParseSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SeverityCriticalValue:
		return SeverityCritical
	case SeverityHighValue:
		return SeverityHigh
	default:
		return SeverityOther
	}
}

// Severities returns all ranks from most to least severe.
// Report writers iterate over this to group issues.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityOther}
}

package model

import "fmt"

// Issue is one SEO defect detected on a crawled page.
// Issues are produced by the backend; the client never creates or mutates them.
type Issue struct {
	// ID is unique within a project.
	ID string `json:"id"`

	// PageID references the crawled page the issue was found on.
	PageID string `json:"page_id,omitempty"`

	// IssueType is the category, e.g. "missing_meta_desc".
	IssueType string `json:"issue_type"`

	// Severity is the raw severity string as sent by the backend.
	// Use Level to rank it.
	Severity string `json:"severity"`

	// Description is a human-readable explanation.
	Description string `json:"description"`

	// URL is the affected page URL. The client does not check that it belongs
	// to the crawled domain.
	URL string `json:"url"`

	// PageTitle is the title of the page where the issue was found.
	PageTitle string `json:"page_title"`
}

// Level returns the severity rank of the issue.
func (i Issue) Level() Severity {
	return ParseSeverity(i.Severity)
}

// Validate reports whether the issue carries the fields the client needs.
func (i Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: issue without id", ErrMalformed)
	}
	if i.IssueType == "" {
		return fmt.Errorf("%w: issue %s without issue_type", ErrMalformed, i.ID)
	}
	if i.Severity == "" {
		return fmt.Errorf("%w: issue %s without severity", ErrMalformed, i.ID)
	}
	return nil
}

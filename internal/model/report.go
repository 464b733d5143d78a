package model

import "time"

// IssueReport is the issue list of one project at a point in time.
// It is a read-only view for report writers; the issue order is the order
// returned by the backend.
//
// Design decision: We group by severity only on demand (BySeverity) and never
// reorder Issues. Sorting and grouping are presentation concerns.
type IssueReport struct {
	// Project is the project the issues belong to.
	Project Project `json:"project"`

	// GeneratedAt is when the issue list was fetched.
	GeneratedAt time.Time `json:"generated_at"`

	// Issues is the fetched issue list, unchanged.
	Issues []Issue `json:"issues"`
}

// NewIssueReport creates an IssueReport for project.
// A nil issue list is stored as an empty slice so JSON output is [] rather than null.
func NewIssueReport(project Project, issues []Issue, generatedAt time.Time) *IssueReport {
	if issues == nil {
		issues = []Issue{}
	}
	return &IssueReport{
		Project:     project,
		GeneratedAt: generatedAt,
		Issues:      issues,
	}
}

// Total returns the number of issues.
func (r *IssueReport) Total() int {
	return len(r.Issues)
}

// HasIssues returns true if the report contains at least one issue.
func (r *IssueReport) HasIssues() bool {
	return len(r.Issues) > 0
}

// Count returns the number of issues ranked at level.
func (r *IssueReport) Count(level Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Level() == level {
			n++
		}
	}
	return n
}

// BySeverity returns the issues ranked at level, in report order.
func (r *IssueReport) BySeverity(level Severity) []Issue {
	var result []Issue
	for _, issue := range r.Issues {
		if issue.Level() == level {
			result = append(result, issue)
		}
	}
	return result
}

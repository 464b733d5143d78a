package model

// Stats is the dashboard overview across all projects.
type Stats struct {
	// Projects is the number of known projects.
	Projects int `json:"projects"`

	// CrawledProjects is the number of projects with at least one indexed page.
	CrawledProjects int `json:"crawled_projects"`

	// PagesIndexed is the number of pages across the latest crawl of every project.
	PagesIndexed int `json:"pages_indexed"`

	// IssuesFound is the number of issues across all projects.
	IssuesFound int `json:"issues_found"`

	// Critical, High and Other split IssuesFound by severity rank.
	Critical int `json:"critical"`
	High     int `json:"high"`
	Other    int `json:"other"`
}

// AddIssues accumulates issue counts into s.
func (s *Stats) AddIssues(issues []Issue) {
	s.IssuesFound += len(issues)
	for _, issue := range issues {
		switch issue.Level() {
		case SeverityCritical:
			s.Critical++
		case SeverityHigh:
			s.High++
		default:
			s.Other++
		}
	}
}

package controller

import (
	"slices"

	"github.com/nao1215/supercrawl/internal/crawl"
	"github.com/nao1215/supercrawl/internal/model"
)

// StatusLevel classifies the status message for presentation.
type StatusLevel int

const (
	// StatusNone means there is no status message.
	StatusNone StatusLevel = iota
	// StatusInfo is a progress message.
	StatusInfo
	// StatusSuccess reports a completed action.
	StatusSuccess
	// StatusWarning reports a partial success.
	StatusWarning
	// StatusError reports a failure.
	StatusError
)

// String returns the level name.
func (l StatusLevel) String() string {
	switch l {
	case StatusNone:
		return "none"
	case StatusInfo:
		return "info"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the session view state.
// Values handed out by the Controller are copies; modifying them has no effect.
type State struct {
	// Domain is the pending domain of the create form.
	Domain string

	// Creating is true while a create-and-crawl request is in flight.
	Creating bool

	// LoadingProjects is true while a project refresh is in flight.
	LoadingProjects bool

	// LoadingIssues is true while an issue fetch for SelectedID is in flight.
	LoadingIssues bool

	// Status is the user-visible status message.
	Status      string
	StatusLevel StatusLevel

	// LastLaunch is the result of the most recent completed create request.
	LastLaunch *crawl.LaunchResult

	// SelectedID is the selected project id, or "" before any selection.
	SelectedID string

	// Projects is the last successfully fetched project list.
	Projects []model.Project

	// ProjectsErr is the error of the last applied refresh, nil if it succeeded.
	ProjectsErr error

	// Issues is the last successfully fetched issue list and IssuesFor the
	// project it belongs to. While a new selection is loading, or after its
	// fetch failed, they still describe the previous project. Read issues
	// through CurrentIssues unless the previous list is wanted.
	Issues    []model.Issue
	IssuesFor string

	// IssuesErr is the error of the last applied issue fetch, nil if it succeeded.
	IssuesErr error

	// Version increases by one with every published state.
	Version uint64
}

// clone returns a deep copy of s.
func (s State) clone() State {
	c := s
	c.Projects = slices.Clone(s.Projects)
	c.Issues = slices.Clone(s.Issues)
	if s.LastLaunch != nil {
		r := *s.LastLaunch
		if r.Project != nil {
			p := *r.Project
			r.Project = &p
		}
		c.LastLaunch = &r
	}
	return c
}

// SelectedProject returns the selected project from the held list.
func (s State) SelectedProject() (model.Project, bool) {
	if s.SelectedID == "" {
		return model.Project{}, false
	}
	return model.FindProject(s.Projects, s.SelectedID)
}

// IssuesCurrent reports whether Issues belong to the selected project.
func (s State) IssuesCurrent() bool {
	return s.SelectedID != "" && s.IssuesFor == s.SelectedID
}

// CurrentIssues returns the issues of the selected project, or nil when
// none have been fetched for it yet.
func (s State) CurrentIssues() []model.Issue {
	if !s.IssuesCurrent() {
		return nil
	}
	return s.Issues
}

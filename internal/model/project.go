package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Project is a registered crawl target.
// Projects are created by the backend and are immutable from the client's view.
type Project struct {
	// ID is the opaque, server-assigned identifier.
	ID string `json:"id"`

	// Domain is the user-supplied host or URL to crawl.
	Domain string `json:"domain"`

	// UserID is the owner the project was created for.
	// The backend may omit it in list responses.
	UserID string `json:"user_id,omitempty"`

	// CreatedAt is the server-assigned creation time.
	// It is zero when the backend omits it.
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalJSON decodes a project. created_at may be null, empty, or in any
// layout ParseTimestamp accepts.
func (p *Project) UnmarshalJSON(data []byte) error {
	type wire Project
	aux := struct {
		*wire
		CreatedAt *string `json:"created_at"`
	}{wire: (*wire)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.CreatedAt = time.Time{}
	if aux.CreatedAt == nil || *aux.CreatedAt == "" {
		return nil
	}
	t, err := ParseTimestamp(*aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.CreatedAt = t
	return nil
}

// Validate reports whether the project carries the fields the client needs.
func (p Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: project without id", ErrMalformed)
	}
	if p.Domain == "" {
		return fmt.Errorf("%w: project %s without domain", ErrMalformed, p.ID)
	}
	return nil
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Domain string `json:"domain"`
	UserID string `json:"user_id"`
}

// FindProject returns the project with the given id from projects.
func FindProject(projects []Project, id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

package project

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nao1215/supercrawl/internal/model"
)

// Transport is the subset of the backend client the Store needs.
// *api.Client satisfies it.
type Transport interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, domain, userID string) (model.Project, error)
}

// Store holds the most recently fetched project list.
//
// The held list is replaced only by a successful Refresh. A failed Refresh
// or any Create leaves it as it was. When refreshes overlap, the list of the
// most recently issued one wins regardless of the order responses arrive in.
type Store struct {
	transport Transport
	logger    *slog.Logger

	mu       sync.RWMutex
	projects []model.Project
	issued   uint64 // sequence number of the last issued Refresh
	applied  uint64 // sequence number of the Refresh that produced projects
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an empty Store backed by t.
func NewStore(t Transport, opts ...Option) *Store {
	s := &Store{
		transport: t,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the backend's project list and replaces the held list with it.
// The backend order is kept. The returned slice is a copy the caller may modify.
// Transport errors are returned unchanged.
//
// A response older than one already held is returned to its caller but not
// stored.
func (s *Store) Refresh(ctx context.Context) ([]model.Project, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	projects, err := s.transport.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}

	s.mu.Lock()
	stale := seq < s.applied
	if !stale {
		s.projects = slices.Clone(projects)
		s.applied = seq
	}
	s.mu.Unlock()

	if stale {
		s.logger.Debug("discarding stale project list", "count", len(projects))
		return projects, nil
	}
	s.logger.Debug("project list refreshed", "count", len(projects))
	return projects, nil
}

// Create registers a project for domain, owned by userID.
//
// An empty or whitespace-only domain yields a *ValidationError and no request.
// On success the new project is returned, but it does not appear in Projects
// until the next Refresh.
func (s *Store) Create(ctx context.Context, domain, userID string) (model.Project, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return model.Project{}, &ValidationError{Field: "domain", Reason: "must not be empty"}
	}

	p, err := s.transport.CreateProject(ctx, domain, userID)
	if err != nil {
		return model.Project{}, err
	}
	s.logger.Debug("project created", "id", p.ID, "domain", p.Domain)
	return p, nil
}

// Projects returns a copy of the held list.
// It is nil until the first successful Refresh.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

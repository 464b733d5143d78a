package issue

import (
	"context"
	"log/slog"

	"github.com/nao1215/supercrawl/internal/model"
)

// Source lists a project's issues. *api.Client satisfies it.
type Source interface {
	ListIssues(ctx context.Context, projectID string) ([]model.Issue, error)
}

// Viewer fetches issue lists.
type Viewer struct {
	source Source
	logger *slog.Logger
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) {
		v.logger = l
	}
}

// NewViewer creates a Viewer reading from source.
func NewViewer(source Source, opts ...Option) *Viewer {
	v := &Viewer{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// LoadIssues fetches the issues of projectID in backend order.
// Transport errors are returned unchanged.
func (v *Viewer) LoadIssues(ctx context.Context, projectID string) ([]model.Issue, error) {
	issues, err := v.source.ListIssues(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []model.Issue{}
	}
	v.logger.Debug("issues loaded", "project", projectID, "count", len(issues))
	return issues, nil
}

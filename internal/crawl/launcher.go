package crawl

import (
	"context"
	"log/slog"

	"github.com/nao1215/supercrawl/internal/model"
)

// ProjectCreator creates projects. *project.Store satisfies it.
type ProjectCreator interface {
	Create(ctx context.Context, domain, userID string) (model.Project, error)
}

// CrawlStarter starts crawls. *api.Client satisfies it.
type CrawlStarter interface {
	StartCrawl(ctx context.Context, projectID string) (model.CrawlAck, error)
}

// Launcher runs the create-then-crawl sequence.
type Launcher struct {
	projects ProjectCreator
	crawls   CrawlStarter
	logger   *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// NewLauncher creates a Launcher.
func NewLauncher(projects ProjectCreator, crawls CrawlStarter, opts ...Option) *Launcher {
	l := &Launcher{
		projects: projects,
		crawls:   crawls,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LaunchCrawl creates a project for domain and starts its crawl.
//
// The crawl start is requested only after creation has returned successfully.
// Failures are reported in the result, never as a separate error.
func (l *Launcher) LaunchCrawl(ctx context.Context, domain, userID string) LaunchResult {
	p, err := l.projects.Create(ctx, domain, userID)
	if err != nil {
		l.logger.Debug("project creation failed", "domain", domain, "error", err)
		return LaunchResult{Outcome: CreationFailed, Err: err}
	}

	ack, err := l.crawls.StartCrawl(ctx, p.ID)
	if err != nil {
		l.logger.Warn("project created but crawl did not start", "project", p.ID, "error", err)
		return LaunchResult{Outcome: CrawlStartFailed, Project: &p, Err: err}
	}

	l.logger.Debug("crawl launched", "project", p.ID, "task", ack.TaskID)
	return LaunchResult{Outcome: Launched, Project: &p, Ack: ack}
}

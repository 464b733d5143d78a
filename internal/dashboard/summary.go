package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/supercrawl/internal/model"
)

// DefaultConcurrency is the number of projects fetched at the same time.
const DefaultConcurrency = 4

// Source is the part of the backend client the Summarizer reads from.
// *api.Client satisfies it.
type Source interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListPages(ctx context.Context, projectID string) ([]model.Page, error)
	ListIssues(ctx context.Context, projectID string) ([]model.Issue, error)
}

// ProjectSummary is the per-project line of a Summary.
type ProjectSummary struct {
	Project model.Project `json:"project"`
	Pages   int           `json:"pages"`
	Issues  int           `json:"issues"`

	Critical int `json:"critical"`
	High     int `json:"high"`
	Other    int `json:"other"`
}

// Crawled reports whether the project has at least one indexed page.
func (p ProjectSummary) Crawled() bool {
	return p.Pages > 0
}

// Summary is the dashboard overview.
type Summary struct {
	Stats    model.Stats      `json:"stats"`
	Projects []ProjectSummary `json:"projects"`
}

// Summarizer computes Summaries.
type Summarizer struct {
	source      Source
	concurrency int
	logger      *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithConcurrency sets how many projects are fetched at the same time.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Summarizer) {
		s.logger = l
	}
}

// NewSummarizer creates a Summarizer reading from source.
func NewSummarizer(source Source, opts ...Option) *Summarizer {
	s := &Summarizer{
		source:      source,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize fetches every project's pages and issues and aggregates them.
//
// The per-project lines keep the backend's project order. The first fetch
// error cancels the remaining fetches and is returned; no partial summary
// is produced.
func (s *Summarizer) Summarize(ctx context.Context) (*Summary, error) {
	start := time.Now()

	projects, err := s.source.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]ProjectSummary, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, p := range projects {
		g.Go(func() error {
			pages, err := s.source.ListPages(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("project %s: %w", p.ID, err)
			}
			issues, err := s.source.ListIssues(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("project %s: %w", p.ID, err)
			}

			var st model.Stats
			st.AddIssues(issues)

			// Each goroutine writes its own index.
			lines[i] = ProjectSummary{
				Project:  p,
				Pages:    len(pages),
				Issues:   st.IssuesFound,
				Critical: st.Critical,
				High:     st.High,
				Other:    st.Other,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{Projects: lines}
	sum.Stats.Projects = len(lines)
	for _, l := range lines {
		if l.Crawled() {
			sum.Stats.CrawledProjects++
		}
		sum.Stats.PagesIndexed += l.Pages
		sum.Stats.IssuesFound += l.Issues
		sum.Stats.Critical += l.Critical
		sum.Stats.High += l.High
		sum.Stats.Other += l.Other
	}

	s.logger.Debug("dashboard summary computed",
		"projects", sum.Stats.Projects,
		"pages", sum.Stats.PagesIndexed,
		"issues", sum.Stats.IssuesFound,
		"elapsed", time.Since(start))

	return sum, nil
}

package devserver_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/supercrawl/internal/api"
	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/crawl"
	"github.com/nao1215/supercrawl/internal/dashboard"
	"github.com/nao1215/supercrawl/internal/database"
	"github.com/nao1215/supercrawl/internal/devserver"
	"github.com/nao1215/supercrawl/internal/issue"
	"github.com/nao1215/supercrawl/internal/model"
	"github.com/nao1215/supercrawl/internal/project"
)

// TestEndToEnd drives the controller against the development server over HTTP.
func TestEndToEnd(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv, err := devserver.New(db, devserver.WithLogger(logger))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	client, err := api.NewClient(ts.URL, api.WithLogger(logger))
	require.NoError(t, err)

	store := project.NewStore(client, project.WithLogger(logger))
	launcher := crawl.NewLauncher(store, client, crawl.WithLogger(logger))
	viewer := issue.NewViewer(client, issue.WithLogger(logger))
	ctrl := controller.New(launcher, store, viewer, controller.WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	runDone := make(chan error, 1)
	go func() { runDone <- ctrl.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-runDone
	})

	s, err := ctrl.WaitFor(ctx, func(s controller.State) bool { return s.Version > 0 && !s.LoadingProjects })
	require.NoError(t, err)
	assert.Empty(t, s.Projects)
	assert.NoError(t, s.ProjectsErr)

	ctrl.SubmitCreate("example.com")
	s, err = ctrl.WaitFor(ctx, func(s controller.State) bool {
		return s.LastLaunch != nil && !s.Creating && !s.LoadingProjects
	})
	require.NoError(t, err)
	require.Equal(t, crawl.Launched, s.LastLaunch.Outcome, "launch error: %v", s.LastLaunch.Err)

	id := s.LastLaunch.Project.ID
	assert.True(t, strings.Contains(s.Status, id), "status %q should mention %s", s.Status, id)
	p, ok := model.FindProject(s.Projects, id)
	require.True(t, ok)
	assert.Equal(t, "example.com", p.Domain)
	assert.Equal(t, controller.DefaultUserID, p.UserID)

	ctrl.SelectProject(id)
	s, err = ctrl.WaitFor(ctx, func(s controller.State) bool { return s.IssuesCurrent() && !s.LoadingIssues })
	require.NoError(t, err)
	require.NoError(t, s.IssuesErr)

	report := model.NewIssueReport(p, s.Issues, time.Now())
	assert.NotZero(t, report.Count(model.SeverityCritical))
	assert.NotZero(t, report.Count(model.SeverityHigh))
	for _, is := range report.BySeverity(model.SeverityCritical) {
		assert.Equal(t, "critical", is.Severity)
	}

	// The dashboard sees the same backend state.
	summary, err := dashboard.NewSummarizer(client, dashboard.WithLogger(logger)).Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Projects)
	assert.Equal(t, 1, summary.Stats.CrawledProjects)
	assert.Equal(t, len(s.Issues), summary.Stats.IssuesFound)
}

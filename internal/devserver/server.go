package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nao1215/supercrawl/internal/database"
	"github.com/nao1215/supercrawl/internal/model"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "SuperCrawl API"

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// Server is the development backend.
type Server struct {
	db       *database.DB
	fixtures *Fixtures
	logger   *slog.Logger

	// crawlDelay postpones crawl completion. Zero completes the crawl
	// before the start request is acknowledged.
	crawlDelay time.Duration

	now   func() time.Time
	newID func() string

	// ctx is cancelled by Close and stops crawls that are still pending.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithFixtures sets the pages recorded for each crawl.
func WithFixtures(f *Fixtures) Option {
	return func(s *Server) {
		s.fixtures = f
	}
}

// WithLogger sets the logger for request and crawl logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCrawlDelay makes crawls complete d after they are started, so clients
// observe an empty issue list until they reload.
func WithCrawlDelay(d time.Duration) Option {
	return func(s *Server) {
		s.crawlDelay = d
	}
}

// withClock replaces the time source. Used in tests.
func withClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server backed by db. The embedded fixtures are used unless
// WithFixtures is given.
func New(db *database.DB, opts ...Option) (*Server, error) {
	s := &Server{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fixtures == nil {
		f, err := DefaultFixtures()
		if err != nil {
			return nil, err
		}
		s.fixtures = f
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Handler returns the HTTP handler serving the backend API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestLogger(&chimiddleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)
		r.Post("/{id}/crawl", s.handleStartCrawl)
		r.Get("/{id}/pages", s.handleListPages)
		r.Get("/{id}/issues", s.handleListIssues)
	})

	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until ctx is cancelled, then shuts down
// gracefully and stops pending crawls.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("development server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close stops pending crawls and waits for them to finish.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// startCrawl records a queued crawl for p and completes it now or after
// the configured delay.
func (s *Server) startCrawl(ctx context.Context, p *model.Project) (*database.CrawlRecord, error) {
	crawl := &database.CrawlRecord{
		ID:        s.newID(),
		ProjectID: p.ID,
		TaskID:    s.newID(),
		Status:    database.CrawlQueued,
		CreatedAt: s.now(),
	}
	if err := s.db.InsertCrawl(ctx, crawl); err != nil {
		return nil, err
	}

	if s.crawlDelay <= 0 {
		if err := s.completeCrawl(ctx, crawl, p.Domain); err != nil {
			return nil, err
		}
		return crawl, nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(s.crawlDelay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}
		if err := s.completeCrawl(s.ctx, crawl, p.Domain); err != nil {
			s.logger.Error("crawl failed", "crawl_id", crawl.ID, "project_id", crawl.ProjectID, "error", err)
		}
	}()
	return crawl, nil
}

// completeCrawl records the fixture pages under domain and their audit findings.
func (s *Server) completeCrawl(ctx context.Context, crawl *database.CrawlRecord, domain string) error {
	pages := make([]model.Page, 0, len(s.fixtures.Pages))
	var issues []model.Issue

	for _, fp := range s.fixtures.Pages {
		page := model.Page{
			ID:              s.newID(),
			CrawlID:         crawl.ID,
			URL:             pageURL(domain, fp.Path),
			Title:           fp.Title,
			MetaDescription: fp.MetaDescription,
			H1:              fp.H1,
			StatusCode:      fp.StatusCode,
			LoadTimeMS:      fp.LoadTimeMS,
		}
		pages = append(pages, page)

		for _, f := range audit(fp) {
			issues = append(issues, model.Issue{
				ID:          s.newID(),
				PageID:      page.ID,
				IssueType:   f.issueType,
				Severity:    f.severity,
				Description: f.description,
			})
		}
	}

	if err := s.db.CompleteCrawl(ctx, crawl.ID, pages, issues, s.now()); err != nil {
		return err
	}
	s.logger.Debug("crawl completed",
		"crawl_id", crawl.ID,
		"project_id", crawl.ProjectID,
		"pages", len(pages),
		"issues", len(issues),
	)
	return nil
}

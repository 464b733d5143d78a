package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nao1215/supercrawl/internal/crawl"
	"github.com/nao1215/supercrawl/internal/model"
)

// DefaultUserID is the placeholder owner sent with create requests.
// The backend has no authentication yet.
const DefaultUserID = "test-user-id"

// eventQueueSize is the number of intents and results that can be queued
// before posting blocks.
const eventQueueSize = 64

// Launcher runs the create-then-crawl sequence. *crawl.Launcher satisfies it.
type Launcher interface {
	LaunchCrawl(ctx context.Context, domain, userID string) crawl.LaunchResult
}

// ProjectRefresher reloads the project list. *project.Store satisfies it.
type ProjectRefresher interface {
	Refresh(ctx context.Context) ([]model.Project, error)
}

// IssueLoader fetches a project's issues. *issue.Viewer satisfies it.
type IssueLoader interface {
	LoadIssues(ctx context.Context, projectID string) ([]model.Issue, error)
}

// Controller owns the session state. See the package documentation.
type Controller struct {
	launcher Launcher
	projects ProjectRefresher
	issues   IssueLoader
	userID   string
	logger   *slog.Logger

	events  chan func()
	done    chan struct{}
	started atomic.Bool
	wg      sync.WaitGroup

	// Loop-only fields. They are read and written on the event loop goroutine only.
	ctx        context.Context
	state      State
	issueSeq   uint64
	refreshSeq uint64
	inflight   int // workers whose results are not applied yet

	snapMu   sync.RWMutex
	snapshot State

	obsMu     sync.Mutex
	observers map[int]func(State)
	nextObsID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithUserID sets the owner sent with create requests.
func WithUserID(id string) Option {
	return func(c *Controller) {
		c.userID = id
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a Controller. Call Run to start processing.
func New(launcher Launcher, projects ProjectRefresher, issues IssueLoader, opts ...Option) *Controller {
	c := &Controller{
		launcher:  launcher,
		projects:  projects,
		issues:    issues,
		userID:    DefaultUserID,
		logger:    slog.Default(),
		events:    make(chan func(), eventQueueSize),
		done:      make(chan struct{}),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes intents and results until ctx is cancelled.
// It starts by loading the project list. Run can be called only once.
//
// When ctx is cancelled, in-flight backend calls see the cancellation
// through their context and their results are dropped. Run waits for the
// workers to exit and returns nil.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	c.ctx = ctx
	c.startRefresh()
	c.publish()

	for {
		select {
		case <-ctx.Done():
			close(c.done)
			c.wg.Wait()
			return nil
		case fn := <-c.events:
			fn()
		}
	}
}

// SetDomain updates the pending domain of the create form.
func (c *Controller) SetDomain(domain string) {
	c.post(func() {
		if c.state.Domain == domain {
			return
		}
		c.state.Domain = domain
		c.publish()
	})
}

// SubmitCreate creates a project for domain and starts its crawl.
// It is ignored while a previous create request is still in flight.
func (c *Controller) SubmitCreate(domain string) {
	c.post(func() {
		if c.state.Creating {
			c.logger.Debug("create already in flight, ignoring submit", "domain", domain)
			return
		}

		c.state.Domain = domain
		c.state.Creating = true
		c.setStatus(StatusInfo, "Creating project...")
		c.publish()

		userID := c.userID
		c.spawn(func(ctx context.Context) func() {
			res := c.launcher.LaunchCrawl(ctx, domain, userID)
			return func() { c.applyLaunch(res) }
		})
	})
}

// SelectProject selects a project and fetches its issues.
// The selection is visible immediately; the issues follow when the fetch completes.
func (c *Controller) SelectProject(projectID string) {
	c.post(func() {
		c.state.SelectedID = projectID
		c.startIssueFetch()
		c.publish()
	})
}

// Reload refreshes the project list and, if a project is selected, its issues.
func (c *Controller) Reload() {
	c.post(func() {
		c.startRefresh()
		if c.state.SelectedID != "" {
			c.startIssueFetch()
		}
		c.publish()
	})
}

// Snapshot returns a copy of the latest published state.
// It is safe to call from any goroutine.
func (c *Controller) Snapshot() State {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snapshot.clone()
}

// Subscribe registers fn to receive every published state.
// fn is called on the event loop goroutine and must not block; it must not
// call Run. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

// WaitFor blocks until a published state satisfies pred and returns it.
// The current snapshot is checked first. pred may be called concurrently.
func (c *Controller) WaitFor(ctx context.Context, pred func(State) bool) (State, error) {
	found := make(chan State, 1)
	var once sync.Once
	check := func(s State) {
		if pred(s) {
			once.Do(func() { found <- s })
		}
	}

	unsubscribe := c.Subscribe(check)
	defer unsubscribe()
	check(c.Snapshot())

	select {
	case s := <-found:
		return s, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// post queues fn for the event loop. It returns false if the loop has stopped.
func (c *Controller) post(fn func()) bool {
	select {
	case c.events <- fn:
		return true
	case <-c.done:
		return false
	}
}

// spawn runs work on a worker goroutine and posts the returned closure back
// to the event loop. Must be called on the loop.
func (c *Controller) spawn(work func(ctx context.Context) func()) {
	ctx := c.ctx
	c.inflight++
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		apply := work(ctx)
		c.post(func() {
			c.inflight--
			apply()
		})
	}()
}

func (c *Controller) startRefresh() {
	c.refreshSeq++
	seq := c.refreshSeq
	c.state.LoadingProjects = true

	c.spawn(func(ctx context.Context) func() {
		projects, err := c.projects.Refresh(ctx)
		return func() { c.applyRefresh(seq, projects, err) }
	})
}

func (c *Controller) startIssueFetch() {
	c.issueSeq++
	seq := c.issueSeq
	projectID := c.state.SelectedID
	c.state.LoadingIssues = true

	c.spawn(func(ctx context.Context) func() {
		issues, err := c.issues.LoadIssues(ctx, projectID)
		return func() { c.applyIssues(seq, projectID, issues, err) }
	})
}

func (c *Controller) applyLaunch(res crawl.LaunchResult) {
	c.state.Creating = false
	c.state.LastLaunch = &res

	switch res.Outcome {
	case crawl.Launched:
		c.setStatus(StatusSuccess, fmt.Sprintf("Project created and crawl started! ID: %s", res.Project.ID))
		c.state.Domain = ""
		c.startRefresh()
	case crawl.CrawlStartFailed:
		c.setStatus(StatusWarning, fmt.Sprintf("Project created (ID: %s) but the crawl could not be started: %v", res.Project.ID, res.Err))
		c.state.Domain = ""
		c.startRefresh()
	default:
		c.setStatus(StatusError, fmt.Sprintf("Error creating project: %v", res.Err))
	}
	c.publish()
}

func (c *Controller) applyRefresh(seq uint64, projects []model.Project, err error) {
	if seq != c.refreshSeq {
		c.logger.Debug("discarding stale project list", "request", seq, "latest", c.refreshSeq)
		return
	}

	c.state.LoadingProjects = false
	c.state.ProjectsErr = err
	if err != nil {
		c.setStatus(StatusError, fmt.Sprintf("Failed to load projects: %v", err))
	} else {
		c.state.Projects = projects
	}
	c.publish()
}

func (c *Controller) applyIssues(seq uint64, projectID string, issues []model.Issue, err error) {
	if seq != c.issueSeq || projectID != c.state.SelectedID {
		c.logger.Debug("discarding stale issue list",
			"project", projectID,
			"selected", c.state.SelectedID,
			"request", seq,
			"latest", c.issueSeq)
		return
	}

	c.state.LoadingIssues = false
	c.state.IssuesErr = err
	if err != nil {
		c.setStatus(StatusError, fmt.Sprintf("Failed to load issues for %s: %v", projectID, err))
	} else {
		c.state.Issues = issues
		c.state.IssuesFor = projectID
	}
	c.publish()
}

func (c *Controller) setStatus(level StatusLevel, msg string) {
	c.state.Status = msg
	c.state.StatusLevel = level
}

// publish stores a snapshot of the current state and notifies observers.
func (c *Controller) publish() {
	c.state.Version++
	snap := c.state.clone()

	c.snapMu.Lock()
	c.snapshot = snap
	c.snapMu.Unlock()

	c.obsMu.Lock()
	observers := make([]func(State), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.obsMu.Unlock()

	for _, fn := range observers {
		fn(snap.clone())
	}
}

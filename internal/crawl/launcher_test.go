package crawl

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/supercrawl/internal/model"
	"github.com/nao1215/supercrawl/internal/project"
)

// fakeBackend implements both project.Transport and CrawlStarter.
type fakeBackend struct {
	createErr   error
	crawlErr    error
	createCalls int
	crawlCalls  []string
}

func (f *fakeBackend) ListProjects(context.Context) ([]model.Project, error) {
	return nil, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, domain, userID string) (model.Project, error) {
	f.createCalls++
	if f.createErr != nil {
		return model.Project{}, f.createErr
	}
	return model.Project{ID: "p1", Domain: domain, UserID: userID}, nil
}

func (f *fakeBackend) StartCrawl(_ context.Context, projectID string) (model.CrawlAck, error) {
	f.crawlCalls = append(f.crawlCalls, projectID)
	if f.crawlErr != nil {
		return model.CrawlAck{}, f.crawlErr
	}
	return model.CrawlAck{Message: "Crawl started", TaskID: "t1"}, nil
}

func newLauncher(fb *fakeBackend) *Launcher {
	return NewLauncher(project.NewStore(fb), fb)
}

func TestLaunchCrawl(t *testing.T) {
	t.Parallel()

	t.Run("launched", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		res := newLauncher(fb).LaunchCrawl(context.Background(), "example.com", "u1")

		if res.Outcome != Launched {
			t.Fatalf("Outcome = %v, want launched", res.Outcome)
		}
		if res.Err != nil {
			t.Errorf("Err = %v, want nil", res.Err)
		}
		if res.Project == nil || res.Project.ID != "p1" {
			t.Fatalf("Project = %+v, want id p1", res.Project)
		}
		if res.Ack.TaskID != "t1" {
			t.Errorf("Ack.TaskID = %q, want t1", res.Ack.TaskID)
		}
		if len(fb.crawlCalls) != 1 || fb.crawlCalls[0] != "p1" {
			t.Errorf("StartCrawl calls = %v, want [p1]", fb.crawlCalls)
		}
		if !res.Succeeded() || res.Retryable() {
			t.Errorf("Succeeded() = %v, Retryable() = %v", res.Succeeded(), res.Retryable())
		}
	})

	t.Run("creation failure never starts a crawl", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("backend down")
		fb := &fakeBackend{createErr: boom}
		res := newLauncher(fb).LaunchCrawl(context.Background(), "example.com", "u1")

		if res.Outcome != CreationFailed {
			t.Fatalf("Outcome = %v, want creation failed", res.Outcome)
		}
		if !errors.Is(res.Err, boom) {
			t.Errorf("Err = %v, want %v", res.Err, boom)
		}
		if len(fb.crawlCalls) != 0 {
			t.Errorf("StartCrawl called %d times, want 0", len(fb.crawlCalls))
		}
		if res.ProjectCreated() {
			t.Error("ProjectCreated() = true after a failed creation")
		}
		if !res.Retryable() {
			t.Error("Retryable() = false for creation failure")
		}
	})

	t.Run("validation failure is a creation failure", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		res := newLauncher(fb).LaunchCrawl(context.Background(), "", "u1")

		if res.Outcome != CreationFailed {
			t.Fatalf("Outcome = %v, want creation failed", res.Outcome)
		}
		if _, ok := project.IsValidationError(res.Err); !ok {
			t.Errorf("Err = %v, want ValidationError", res.Err)
		}
		if fb.createCalls != 0 || len(fb.crawlCalls) != 0 {
			t.Errorf("backend called: create=%d crawl=%d", fb.createCalls, len(fb.crawlCalls))
		}
	})

	t.Run("crawl start failure carries the created project", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("queue full")
		fb := &fakeBackend{crawlErr: boom}
		res := newLauncher(fb).LaunchCrawl(context.Background(), "example.com", "u1")

		if res.Outcome != CrawlStartFailed {
			t.Fatalf("Outcome = %v, want crawl start failed", res.Outcome)
		}
		if res.Project == nil || res.Project.ID != "p1" {
			t.Fatalf("Project = %+v, want id p1", res.Project)
		}
		if !errors.Is(res.Err, boom) {
			t.Errorf("Err = %v, want %v", res.Err, boom)
		}
		if !res.ProjectCreated() || res.Succeeded() || res.Retryable() {
			t.Errorf("ProjectCreated=%v Succeeded=%v Retryable=%v",
				res.ProjectCreated(), res.Succeeded(), res.Retryable())
		}
	})
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		o    Outcome
		want string
	}{
		{Launched, "launched"},
		{CreationFailed, "creation failed"},
		{CrawlStartFailed, "crawl start failed"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.o), got, tt.want)
		}
	}
}

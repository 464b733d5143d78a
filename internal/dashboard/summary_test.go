package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/supercrawl/internal/model"
)

type fakeSource struct {
	projects []model.Project
	pages    map[string][]model.Page
	issues   map[string][]model.Issue
	pagesErr error

	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeSource) ListProjects(context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) ListPages(_ context.Context, id string) ([]model.Page, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if f.pagesErr != nil {
		return nil, f.pagesErr
	}
	return f.pages[id], nil
}

func (f *fakeSource) ListIssues(_ context.Context, id string) ([]model.Issue, error) {
	return f.issues[id], nil
}

func TestNewSummarizer(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		s := NewSummarizer(&fakeSource{})
		if s.concurrency != DefaultConcurrency {
			t.Errorf("concurrency = %d, want %d", s.concurrency, DefaultConcurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()
		s := NewSummarizer(&fakeSource{}, WithConcurrency(0))
		if s.concurrency != DefaultConcurrency {
			t.Errorf("concurrency = %d, want %d", s.concurrency, DefaultConcurrency)
		}
	})
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("aggregates pages and issues", func(t *testing.T) {
		t.Parallel()

		src := &fakeSource{
			projects: []model.Project{{ID: "a", Domain: "a.com"}, {ID: "b", Domain: "b.com"}},
			pages: map[string][]model.Page{
				"a": {{ID: "1", URL: "https://a.com/"}, {ID: "2", URL: "https://a.com/x"}},
			},
			issues: map[string][]model.Issue{
				"a": {
					{ID: "i1", Severity: "critical"},
					{ID: "i2", Severity: "high"},
					{ID: "i3", Severity: "warning"},
				},
			},
		}

		got, err := NewSummarizer(src).Summarize(context.Background())
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}

		want := model.Stats{
			Projects:        2,
			CrawledProjects: 1,
			PagesIndexed:    2,
			IssuesFound:     3,
			Critical:        1,
			High:            1,
			Other:           1,
		}
		if diff := cmp.Diff(want, got.Stats); diff != "" {
			t.Errorf("Stats mismatch (-want +got):\n%s", diff)
		}
		if got.Projects[0].Project.ID != "a" || got.Projects[1].Project.ID != "b" {
			t.Errorf("project order not kept: %+v", got.Projects)
		}
		if got.Projects[1].Crawled() {
			t.Error("project without pages reported as crawled")
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		src := &fakeSource{}
		for i := range 10 {
			src.projects = append(src.projects, model.Project{ID: fmt.Sprint(i), Domain: "d"})
		}

		if _, err := NewSummarizer(src, WithConcurrency(2)).Summarize(context.Background()); err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if m := src.maxSeen.Load(); m > 2 {
			t.Errorf("max concurrent fetches = %d, want <= 2", m)
		}
	})

	t.Run("fetch error aborts", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		src := &fakeSource{
			projects: []model.Project{{ID: "a", Domain: "a.com"}},
			pagesErr: boom,
		}

		got, err := NewSummarizer(src).Summarize(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("Summarize() error = %v, want %v", err, boom)
		}
		if got != nil {
			t.Errorf("Summarize() = %+v, want nil on error", got)
		}
	})

	t.Run("no projects", func(t *testing.T) {
		t.Parallel()

		got, err := NewSummarizer(&fakeSource{}).Summarize(context.Background())
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if got.Stats != (model.Stats{}) {
			t.Errorf("Stats = %+v, want zero", got.Stats)
		}
	})
}

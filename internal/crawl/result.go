package crawl

import "github.com/nao1215/supercrawl/internal/model"

// Outcome classifies the result of LaunchCrawl.
type Outcome int

const (
	// Launched means the project was created and its crawl was accepted.
	Launched Outcome = iota

	// CreationFailed means the project could not be created and no crawl
	// was requested.
	CreationFailed

	// CrawlStartFailed means the project was created but the crawl start
	// request failed.
	CrawlStartFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Launched:
		return "launched"
	case CreationFailed:
		return "creation failed"
	case CrawlStartFailed:
		return "crawl start failed"
	default:
		return "unknown"
	}
}

// LaunchResult is the composite result of LaunchCrawl.
type LaunchResult struct {
	// Outcome tells which of the three cases occurred.
	Outcome Outcome

	// Project is the created project. It is nil when Outcome is CreationFailed.
	Project *model.Project

	// Ack is the backend's acknowledgment. It is set only when Outcome is Launched.
	Ack model.CrawlAck

	// Err is the failure of the step that failed. It is nil when Outcome is Launched.
	Err error
}

// Succeeded reports whether both steps succeeded.
func (r LaunchResult) Succeeded() bool {
	return r.Outcome == Launched
}

// ProjectCreated reports whether a project now exists on the backend.
func (r LaunchResult) ProjectCreated() bool {
	return r.Project != nil
}

// Retryable reports whether resubmitting the same request is safe.
// Only a failed creation qualifies; retrying after CrawlStartFailed would
// create a second project for the same domain.
func (r LaunchResult) Retryable() bool {
	return r.Outcome == CreationFailed
}

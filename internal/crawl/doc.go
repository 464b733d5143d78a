// Package crawl launches crawls for new projects.
//
// LaunchCrawl is a two-step operation: create the project, then ask the
// backend to start crawling it. The second step only runs after the first
// has succeeded. The result distinguishes three outcomes:
//
//	Launched          the project exists and its crawl was accepted
//	CreationFailed    nothing was created; the whole request can be retried
//	CrawlStartFailed  the project exists but has no crawl
//
// CrawlStartFailed is a partial success. The created project is carried in
// the result so callers can report it instead of treating the request as a
// plain failure.
package crawl

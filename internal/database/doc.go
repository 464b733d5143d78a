// Package database provides SQLite-based storage for the local stand-in
// backend served by "supercrawl devserver".
//
// The schema mirrors the backend's tables:
//   - projects: registered crawl targets
//   - crawls: one row per crawl request of a project
//   - pages: pages recorded by a crawl
//   - issues: SEO issues found on a page
//
// Page and issue listings are scoped to the latest crawl of a project, as
// the real backend does.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// database is a single file, the driver is CGO-free, and a development
// backend needs nothing more.
package database

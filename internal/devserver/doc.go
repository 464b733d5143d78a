// Package devserver implements a local stand-in for the SuperCrawl backend.
//
// It serves the same REST contract as the real service (projects, crawl
// start, pages, issues, health) over a SQLite database, so the client can be
// exercised end to end without the real crawler. Starting a crawl does not
// fetch anything: pages come from a YAML fixture and issues are derived from
// the page metadata with the backend's audit rules.
package devserver

// Package dashboard computes overview statistics across all projects.
//
// Summarize lists the projects, then fetches the pages and issues of every
// project concurrently with a bounded number of goroutines. A project counts
// as crawled once it has at least one page.
package dashboard

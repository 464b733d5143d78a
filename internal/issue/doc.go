// Package issue loads the SEO issues found for a project.
//
// The Viewer does not cache, sort or filter. Every LoadIssues call is a
// fresh fetch and returns the backend's list as-is; results may change
// between calls while the backend's analysis is still running.
package issue

// Package model defines the data structures exchanged with the SuperCrawl backend
// and shared by the client components.
//
// This package contains the following main types:
//   - Project: A registered crawl target (domain) with a server-assigned identifier
//   - Issue: One SEO defect detected by a crawl, tagged with a severity string
//   - Page: A crawled page belonging to a project's latest crawl
//   - CrawlAck: The backend's acknowledgment of a crawl start request
//   - IssueReport and Stats: Read-only aggregates used by the presentation layer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The transport client, the stores, the controller and the report
// writers all need these types, so centralizing them prevents import cycles.
//
// Every resource decoded from the backend has a Validate method. Decoding fails
// closed: a payload that parses as JSON but lacks required fields is rejected
// instead of being trusted for its implicit shape.
package model

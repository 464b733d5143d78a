// Package api is the transport client for the SuperCrawl backend REST API.
//
// Each method performs exactly one HTTP round trip and decodes the response
// into the types of the model package:
//
//	POST /projects                  CreateProject
//	POST /projects/{id}/crawl       StartCrawl
//	GET  /projects                  ListProjects
//	GET  /projects/{id}/issues      ListIssues
//	GET  /projects/{id}/pages       ListPages
//	GET  /health                    Health
//
// A non-2xx status, an undecodable body, or a decoded resource that fails
// validation is returned as a *TransportError carrying the status code and
// the raw body. The client performs no retries and no caching, and it does
// not impose a timeout of its own: bound a call with the context.
package api

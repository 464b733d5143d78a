// Package project holds the client's view of the backend project list.
//
// A Store keeps the last fetched list of projects. Refresh replaces it with
// the backend's current list; Create registers a new project but leaves the
// held list untouched, so the list only ever reflects what the backend
// returned from a listing call. Callers refresh after creating to observe
// the new project.
package project

// Package controller drives the session state of a SuperCrawl client.
//
// A Controller owns one State value and changes it only on its own event
// loop goroutine, started with Run. Callers express intents (SetDomain,
// SubmitCreate, SelectProject, Reload) which are queued onto the loop.
// Backend calls run in worker goroutines; their results are posted back to
// the loop and applied there, one at a time, in the order they arrive.
//
// Because results can arrive out of order, every issue fetch and project
// refresh is numbered when it is issued. A result is applied only if it
// belongs to the most recently issued request of its kind (and, for issues,
// only if its project is still the selected one). Older results are
// discarded. This gives last-issued-wins rather than last-arrived-wins.
//
// After every state change the controller publishes a copy of the state to
// its subscribers and makes it available through Snapshot.
package controller

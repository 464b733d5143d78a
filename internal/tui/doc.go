// Package tui renders the orchestration controller's state as an
// interactive terminal UI.
//
// The TUI holds no session state of its own. Key presses become controller
// intents (set domain, submit, select, reload) and every state the
// controller publishes is rendered as it arrives.
package tui

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/supercrawl/internal/controller"
)

// Subscriber publishes controller states. *controller.Controller satisfies it.
type Subscriber interface {
	Subscribe(fn func(controller.State)) (unsubscribe func())
}

// Run shows the TUI until the user quits or ctx is cancelled.
// The controller must already be running.
func Run(ctx context.Context, ctrl *controller.Controller, opts ...tea.ProgramOption) error {
	updates, unsubscribe := latestStates(ctrl)
	defer unsubscribe()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(ctrl, updates), opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// latestStates subscribes to s and returns a channel holding the most recent
// published state. Older undelivered states are dropped, so the controller
// never waits for rendering.
func latestStates(s Subscriber) (<-chan controller.State, func()) {
	ch := make(chan controller.State, 1)
	unsubscribe := s.Subscribe(func(st controller.State) {
		for {
			select {
			case ch <- st:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, unsubscribe
}

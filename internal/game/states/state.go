// Package states implements the garage and race scenes and the manager that
// switches between them.
package states

import (
	"time"

	"github.com/Faultbox/minirace/internal/engine/input"
)

// State is one scene of the game.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called once per fixed simulation step.
	Update(dt time.Duration) error

	// HandleInput processes one input event.
	HandleInput(e input.Event) error
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the start of the next update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes a pending change and then updates the current state.
func (m *Manager) Update(dt time.Duration) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(e input.Event) error {
	if m.current != nil {
		return m.current.HandleInput(e)
	}
	return nil
}

// Close exits the current state.
func (m *Manager) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}

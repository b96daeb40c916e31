package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/solfa/internal/screen"
)

// PushScreenMsg asks the router to open a screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to close the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for another without growing the
// stack. The root screen is never replaced.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens; only the top one receives input.
type Router struct {
	stack []screen.Screen
}

// New creates a Router rooted at initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Replace swaps the top screen for s. At the root it pushes instead.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = s
		return s.Init()
	}
	return r.Push(s)
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

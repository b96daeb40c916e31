package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/playback"
	"github.com/abhisek/solfa/internal/router"
	"github.com/abhisek/solfa/internal/screen"
	"github.com/abhisek/solfa/internal/screens/history"
	"github.com/abhisek/solfa/internal/screens/keyboard"
	"github.com/abhisek/solfa/internal/screens/placeholder"
	"github.com/abhisek/solfa/internal/store"
	"github.com/abhisek/solfa/internal/ui/components"
	"github.com/abhisek/solfa/internal/ui/theme"
)

const banner = `┌─┐┌─┐┬  ┌─┐┌─┐
└─┐│ ││  ├┤ ├─┤
└─┘└─┘┴─┘└  ┴ ┴`

// Deps are the services the home menu hands to the screens it opens.
// EventRepo may be nil when no practice database is available.
type Deps struct {
	Controller *piano.Controller
	Layout     *piano.Layout
	Sampler    *playback.Sampler
	EventRepo  store.EventRepo
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Practice", Detail: "name the degrees on the keyboard", Action: h.push(h.practice)},
		{Label: "Free Play", Detail: "just play", Action: h.push(func() screen.Screen {
			return keyboard.New(deps.Controller, deps.Layout, deps.Sampler, keyboard.ModeFree)
		})},
		{Label: "History", Detail: "past exercises and accuracy", Action: h.push(h.history)},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		next := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (h *HomeScreen) practice() screen.Screen {
	return keyboard.New(h.deps.Controller, h.deps.Layout, h.deps.Sampler, keyboard.ModePractice)
}

func (h *HomeScreen) history() screen.Screen {
	if h.deps.EventRepo == nil {
		return placeholder.New("History", "No practice database is open.")
	}
	return history.New(h.deps.EventRepo, h.practice)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner)
	sub := theme.Subtitle.Render("Hear the scale. Find the degree.")
	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))

	body := lipgloss.JoinVertical(lipgloss.Center, title, "", sub, "", menu)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

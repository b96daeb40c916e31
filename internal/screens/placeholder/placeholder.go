package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solfa/internal/screen"
	"github.com/abhisek/solfa/internal/ui/theme"
)

// UnavailableScreen stands in for a screen whose backing service could not
// be started, such as History without a practice database.
type UnavailableScreen struct {
	title  string
	reason string
}

var _ screen.Screen = (*UnavailableScreen)(nil)

// New creates an UnavailableScreen explaining why title cannot be shown.
func New(title, reason string) *UnavailableScreen {
	return &UnavailableScreen{title: title, reason: reason}
}

func (p *UnavailableScreen) Init() tea.Cmd {
	return nil
}

func (p *UnavailableScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *UnavailableScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(p.title + " is unavailable\n\n" + theme.Hint.Render(p.reason))
}

func (p *UnavailableScreen) Title() string {
	return p.title
}

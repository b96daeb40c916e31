package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solfa/internal/debug"
	"github.com/abhisek/solfa/internal/midiio"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
	"github.com/abhisek/solfa/internal/router"
	"github.com/abhisek/solfa/internal/screen"
	"github.com/abhisek/solfa/internal/screens/home"
	"github.com/abhisek/solfa/internal/screens/keyboard"
	"github.com/abhisek/solfa/internal/store"
	"github.com/abhisek/solfa/internal/ui/layout"
)

// Options holds the dependencies for the app.
type Options struct {
	Controller *piano.Controller
	Layout     *piano.Layout
	EventRepo  store.EventRepo

	// Sampler is marked ready with Sample once the program starts.
	Sampler *playback.Sampler
	Sample  playback.Sample

	// MIDIInput names a MIDI input port whose notes are played on the
	// keyboard. Empty disables MIDI input.
	MIDIInput string
}

type sampleLoadedMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	if opts.Layout == nil {
		opts.Layout = piano.DefaultLayout()
	}
	homeScreen := home.New(home.Deps{
		Controller: opts.Controller,
		Layout:     opts.Layout,
		Sampler:    opts.Sampler,
		EventRepo:  opts.EventRepo,
	})
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.opts.Sampler == nil {
		return nil
	}
	sampler, sample := m.opts.Sampler, m.opts.Sample
	return func() tea.Msg {
		sampler.MarkReady(sample)
		debug.Log("app", "sample loaded", "name", sample.Name, "reference", sample.Reference.String())
		return sampleLoadedMsg{}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sampleLoadedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the header text: the active screen's own status, or the
// current key and exercise length.
func (m AppModel) status(active screen.Screen) string {
	if sp, ok := active.(screen.StatusProvider); ok {
		return sp.Status()
	}
	if m.opts.Controller == nil {
		return ""
	}
	return fmt.Sprintf("Key %s · %d notes", m.opts.Controller.Key(), m.opts.Controller.Length())
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(active), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))

	if opts.MIDIInput != "" {
		stop, err := midiio.Listen(opts.MIDIInput, func(n pitch.Note, velocity uint8) {
			p.Send(keyboard.MIDINoteMsg{Note: n, Velocity: velocity})
		})
		if err != nil {
			return fmt.Errorf("midi input: %w", err)
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

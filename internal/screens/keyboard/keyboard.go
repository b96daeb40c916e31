package keyboard

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solfa/internal/debug"
	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
	"github.com/abhisek/solfa/internal/screen"
	"github.com/abhisek/solfa/internal/ui/layout"
	"github.com/abhisek/solfa/internal/ui/theme"
)

// Mode selects between the degree drill and free playing.
type Mode int

const (
	ModePractice Mode = iota
	ModeFree
)

// MIDINoteMsg carries a note-on from an external MIDI keyboard.
type MIDINoteMsg struct {
	Note     pitch.Note
	Velocity uint8
}

type keyMap struct {
	KeyDown     key.Binding
	KeyUp       key.Binding
	Shorter     key.Binding
	Longer      key.Binding
	Reset       key.Binding
	NewExercise key.Binding
	ToggleMode  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		KeyDown:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "key ♭")),
		KeyUp:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "key ♯")),
		Shorter:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shorter")),
		Longer:      key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "longer")),
		Reset:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "retry")),
		NewExercise: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "new")),
		ToggleMode:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "free play")),
	}
}

// KeyboardScreen is the playable piano with the degree exercise above it.
type KeyboardScreen struct {
	ctrl    *piano.Controller
	layout  *piano.Layout
	sampler *playback.Sampler
	keys    keyMap
	mode    Mode

	last  *piano.PressResult
	flash string
}

var _ screen.Screen = (*KeyboardScreen)(nil)
var _ screen.KeyHintProvider = (*KeyboardScreen)(nil)
var _ screen.StatusProvider = (*KeyboardScreen)(nil)

// New creates a KeyboardScreen. sampler is only consulted for the audio
// status line and may be nil.
func New(ctrl *piano.Controller, l *piano.Layout, sampler *playback.Sampler, mode Mode) *KeyboardScreen {
	return &KeyboardScreen{
		ctrl:    ctrl,
		layout:  l,
		sampler: sampler,
		keys:    defaultKeyMap(),
		mode:    mode,
	}
}

func (s *KeyboardScreen) Init() tea.Cmd {
	return nil
}

func (s *KeyboardScreen) Title() string {
	if s.mode == ModeFree {
		return "Free Play"
	}
	return "Practice"
}

func (s *KeyboardScreen) Status() string {
	if s.mode == ModeFree {
		return fmt.Sprintf("Key %s", s.ctrl.Key())
	}
	return fmt.Sprintf("Key %s · %d notes", s.ctrl.Key(), s.ctrl.Length())
}

func (s *KeyboardScreen) KeyHints() []layout.KeyHint {
	if s.mode == ModeFree {
		return []layout.KeyHint{
			hint(s.keys.KeyDown), hint(s.keys.KeyUp),
			{Key: "Tab", Description: "practice"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "[ ]", Description: "key"},
		{Key: "- =", Description: "length"},
		hint(s.keys.Reset), hint(s.keys.NewExercise), hint(s.keys.ToggleMode),
		{Key: "Esc", Description: "Back"},
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *KeyboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case MIDINoteMsg:
		s.press(msg.Note)
	case tea.KeyPressMsg:
		s.handleKey(msg)
	}
	return s, nil
}

func (s *KeyboardScreen) handleKey(msg tea.KeyPressMsg) {
	s.flash = ""
	switch {
	case key.Matches(msg, s.keys.KeyDown):
		s.setError(s.ctrl.ShiftKey(-1))
	case key.Matches(msg, s.keys.KeyUp):
		s.setError(s.ctrl.ShiftKey(1))
	case key.Matches(msg, s.keys.ToggleMode):
		if s.mode == ModeFree {
			s.mode = ModePractice
		} else {
			s.mode = ModeFree
		}
	case s.mode == ModeFree:
		if k, ok := s.layout.KeyForBinding(msg.String()); ok {
			s.press(k.Note)
		}
	case key.Matches(msg, s.keys.Shorter):
		s.setError(s.ctrl.ChangeLength(-1))
	case key.Matches(msg, s.keys.Longer):
		s.setError(s.ctrl.ChangeLength(1))
	case key.Matches(msg, s.keys.Reset):
		s.ctrl.Reset()
		s.last = nil
	case key.Matches(msg, s.keys.NewExercise):
		s.setError(s.ctrl.NewExercise())
		s.last = nil
	default:
		if k, ok := s.layout.KeyForBinding(msg.String()); ok {
			s.press(k.Note)
		}
	}
}

func (s *KeyboardScreen) press(n pitch.Note) {
	var res piano.PressResult
	if s.mode == ModeFree {
		res = s.ctrl.Play(n)
	} else {
		res = s.ctrl.Press(n)
	}
	debug.Log("keyboard", "press", "note", n.String(), "outcome", res.Outcome.String(), "played", res.Played)
	s.last = &res
}

func (s *KeyboardScreen) setError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, exercise.ErrLengthOutOfRange) {
		cfg := s.ctrl.Config()
		s.flash = fmt.Sprintf("Length stays between %d and %d notes", cfg.MinLength, cfg.MaxLength)
		return
	}
	s.flash = err.Error()
}

func (s *KeyboardScreen) View(width, height int) string {
	var sections []string
	if s.mode == ModePractice {
		sections = append(sections,
			s.renderBanner(),
			renderItems(s.ctrl.Exercise()),
		)
	} else {
		sections = append(sections, theme.Subtitle.Render("Play freely. Nothing is scored."))
	}
	sections = append(sections,
		renderKeyboard(s.layout, s.pressedNote()),
		s.renderVoice(),
	)
	if s.flash != "" {
		sections = append(sections, theme.Incorrect.Render(s.flash))
	}

	body := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *KeyboardScreen) pressedNote() *pitch.Note {
	if s.last == nil {
		return nil
	}
	return &s.last.Note
}

func (s *KeyboardScreen) renderBanner() string {
	ex := s.ctrl.Exercise()
	switch ex.Phase {
	case exercise.PhaseCompleted:
		return theme.Correct.Render(fmt.Sprintf("✓ All %d notes right! Enter for a new exercise.", ex.Len()))
	case exercise.PhaseFailed:
		msg := "✗ Wrong note."
		if s.last != nil && s.last.Position < ex.Len() {
			want := ex.Items[s.last.Position]
			msg = fmt.Sprintf("✗ %s is %s, you played %s.", want.Degree, want.Note, s.last.Note.Class)
		}
		return theme.Incorrect.Render(msg + " Backspace to retry.")
	}
	return theme.Title.Render(fmt.Sprintf("Play these degrees in %s major", ex.Key))
}

func (s *KeyboardScreen) renderVoice() string {
	if s.last == nil {
		return theme.Hint.Render("Press a key to start the audio.")
	}
	if !s.last.Played {
		if s.sampler != nil && !s.sampler.Ready() {
			return theme.Hint.Render(fmt.Sprintf("%s (audio is still loading)", s.last.Note))
		}
		return theme.Hint.Render(s.last.Note.String())
	}
	v := s.last.Voice
	return theme.Hint.Render(fmt.Sprintf("%s  %.2f Hz  rate %.3f  gain %.1f→%.3f over %s",
		v.Note, v.TargetFrequency, v.PlaybackRate, v.Envelope.StartGain, v.Envelope.EndGain, v.Envelope.Decay))
}

const itemWidth = 6

// renderItems shows each degree and, once known, the note it maps to.
// Notes stay hidden until played or until the exercise ends.
func renderItems(ex *exercise.Exercise) string {
	if ex == nil {
		return ""
	}
	cell := lipgloss.NewStyle().Width(itemWidth).Align(lipgloss.Center)
	var degrees, notes []string
	for i, it := range ex.Items {
		style := theme.Pending
		switch {
		case it.Status == exercise.StatusCorrect:
			style = theme.Correct
		case it.Status == exercise.StatusWrong:
			style = theme.Incorrect
		case i == ex.Cursor && !ex.Finished():
			style = theme.Selected
		}
		degrees = append(degrees, cell.Render(style.Render(it.Degree.String())))

		note := "·"
		if it.Status != exercise.StatusPending || ex.Finished() {
			note = string(it.Note)
		}
		notes = append(notes, cell.Render(style.Render(note)))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		strings.Join(degrees, ""),
		strings.Join(notes, ""),
	)
}

const keyWidth = 4

type keyCell struct {
	ch    string
	style lipgloss.Style
}

// renderKeyboard draws white keys keyWidth cells wide with black keys
// straddling the gap after their lower neighbour. pressed, if set, is
// highlighted.
func renderKeyboard(l *piano.Layout, pressed *pitch.Note) string {
	whites := l.WhiteKeys()
	width := len(whites) * keyWidth
	rows := make([][]keyCell, 4)
	for r := range rows {
		rows[r] = make([]keyCell, width)
	}

	styleFor := func(k piano.Key) lipgloss.Style {
		switch {
		case pressed != nil && k.Note == *pressed:
			return theme.PressedKey
		case k.Black:
			return theme.BlackKey
		}
		return theme.WhiteKey
	}

	for i, k := range whites {
		st := styleFor(k)
		x := i * keyWidth
		for r := range rows {
			for c := range keyWidth {
				ch := " "
				if c == 0 {
					ch = "▏"
				}
				rows[r][x+c] = keyCell{ch, st}
			}
		}
		rows[3][x+2] = keyCell{bindingLabel(k.Binding), st}
	}

	white := -1
	for _, k := range l.Keys {
		if !k.Black {
			white++
			continue
		}
		if white < 0 {
			continue
		}
		st := styleFor(k)
		x := white*keyWidth + keyWidth - 1
		for r := range 2 {
			for c := 0; c < 2 && x+c < width; c++ {
				rows[r][x+c] = keyCell{" ", st}
			}
		}
		rows[1][x] = keyCell{bindingLabel(k.Binding), st}
	}

	lines := make([]string, len(rows))
	for r, row := range rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(c.style.Render(c.ch))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func bindingLabel(b string) string {
	if b == "" {
		return " "
	}
	return strings.ToUpper(b)
}

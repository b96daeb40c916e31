package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solfa/internal/router"
	"github.com/abhisek/solfa/internal/screen"
	"github.com/abhisek/solfa/internal/store"
	"github.com/abhisek/solfa/internal/ui/components"
	"github.com/abhisek/solfa/internal/ui/layout"
	"github.com/abhisek/solfa/internal/ui/theme"
)

const recentLimit = 50

type historyLoadedMsg struct {
	Exercises []store.ExerciseSummary
	Degrees   []store.DegreeStat
	Err       error
}

// HistoryScreen lists recent exercises and per-degree accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	practice  func() screen.Screen

	exercises []store.ExerciseSummary
	degrees   []store.DegreeStat
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. practice, if set, builds the screen that
// replaces this one when the learner jumps back into practice.
func New(eventRepo store.EventRepo, practice func() screen.Screen) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo, practice: practice}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		exercises, err := s.eventRepo.QueryExerciseSummaries(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		degrees, err := s.eventRepo.DegreeAccuracy(ctx)
		if err != nil {
			return historyLoadedMsg{Exercises: exercises, Err: err}
		}
		return historyLoadedMsg{Exercises: exercises, Degrees: degrees}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if s.practice != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Practice"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.exercises, s.degrees = msg.Exercises, msg.Degrees
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.loaded = true

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.exercises)-1 {
				s.selected++
			}
		case "p":
			if s.practice != nil {
				next := s.practice()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	}
	if len(s.exercises) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo exercises yet. Go play some degrees!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("Degree accuracy")))
	b.WriteString("\n\n")
	for _, d := range s.degrees {
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("%-3s %3d", d.Degree, d.Attempts),
			LabelWidth:  8,
			Percent:     d.Accuracy(),
			ShowPercent: true,
			Width:       min(width-4, 50),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("Recent exercises")))
	b.WriteString("\n\n")

	// Keep the selection visible when the list outgrows the screen.
	rows := max(height-lipgloss.Height(b.String())-1, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.exercises))

	for i := start; i < end; i++ {
		ex := s.exercises[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  key %-2s  %s  %d/%d  %s",
			prefix,
			ex.Timestamp.Format("Jan 02 15:04"),
			ex.Key,
			strings.Join(ex.Degrees, " "),
			ex.CorrectCount, ex.Length,
			formatDuration(ex),
		)
		result := lipgloss.NewStyle().Foreground(resultColor(ex.Result)).Render(ex.Result)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+"  "+result))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(ex store.ExerciseSummary) string {
	secs := int(ex.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func resultColor(result string) color.Color {
	switch result {
	case store.ResultCompleted:
		return theme.Success
	case store.ResultFailed:
		return theme.Error
	}
	return theme.TextDim
}

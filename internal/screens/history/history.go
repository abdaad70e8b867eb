package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

const historyLimit = 50

// Rows taken by the summary, detail and spacing around the table.
const chromeRows = 6

var columns = []table.Column{
	{Title: "When", Width: 18},
	{Title: "Subject", Width: 20},
	{Title: "Level", Width: 5},
	{Title: "Correct", Width: 8},
	{Title: "Score", Width: 8},
	{Title: "", Width: 2},
}

type historyLoadedMsg struct {
	Results []store.QuizResultRecord
	Err     error
}

// HistoryScreen lists past quiz results, newest first, with the details
// of the highlighted one underneath.
type HistoryScreen struct {
	eventRepo store.EventRepo
	results   []store.QuizResultRecord
	table     table.Model
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(eventRepo store.EventRepo) *HistoryScreen {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.TextDim).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
	styles.Cell = styles.Cell.Foreground(theme.Text)
	styles.Selected = styles.Selected.Foreground(theme.Primary)

	return &HistoryScreen{
		eventRepo: eventRepo,
		table: table.New(
			table.WithColumns(columns),
			table.WithStyles(styles),
			table.WithFocused(true),
		),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		results, err := repo.QueryQuizResults(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "g/G", Description: "First/Last"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(historyLoadedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.results = msg.Results
		s.table.SetRows(rows(msg.Results))
		s.table.GotoTop()
		return s, nil
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

// Selected is the index of the highlighted result.
func (s *HistoryScreen) Selected() int {
	return s.table.Cursor()
}

func rows(results []store.QuizResultRecord) []table.Row {
	out := make([]table.Row, len(results))
	for i, r := range results {
		out[i] = table.Row{
			r.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			quizgen.Subject(r.Subject).DisplayName(),
			quizgen.Level(r.Level).Abbrev(),
			fmt.Sprintf("%d/%d", r.Correct, r.Questions),
			fmt.Sprintf("%.2f%%", r.Score),
			scoreMark(r.Score),
		}
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	centered := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
	}
	switch {
	case s.errMsg != "":
		return centered(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	case !s.loaded:
		return centered(theme.Hint, "Loading history...")
	case len(s.results) == 0:
		return centered(theme.Hint, "No quizzes yet. Start one from the home screen!")
	}

	t := s.table
	t.SetHeight(max(3, min(height-chromeRows, len(s.results)+2)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Hint.Render(summary(s.results)),
		"",
		t.View(),
		"",
		s.detail(),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+body)
}

func (s *HistoryScreen) detail() string {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.results) {
		return ""
	}
	r := s.results[i]
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(
		fmt.Sprintf("goal: %s  ·  took %d:%02d", r.Aspiration, r.DurationSecs/60, r.DurationSecs%60))
}

func summary(results []store.QuizResultRecord) string {
	var total, best float64
	for _, r := range results {
		total += r.Score
		best = max(best, r.Score)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d quizzes  ·  average %.1f%%  ·  best %.1f%%", len(results), total/float64(len(results)), best)
	if len(results) == historyLimit {
		fmt.Fprintf(&b, "  (latest %d)", historyLimit)
	}
	return b.String()
}

func scoreMark(score float64) string {
	switch {
	case score >= 100:
		return "★"
	case score >= 50:
		return "●"
	default:
		return "○"
	}
}

package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}

	q, ok := s.session.CurrentQuestion()
	if !ok {
		return ""
	}
	cw := min(width-4, 90)

	var b strings.Builder

	// Info line: position, level badge, progress.
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d/%d", s.session.Current()+1, s.session.Len()))
	if q.CognitiveLevel != "" {
		info += "  " + theme.Badge.Render(q.CognitiveLevel)
	}
	bar := components.NewCountBar(s.session.AnsweredCount(), s.session.Len(), 30).View()
	if pad := cw - lipgloss.Width(info) - lipgloss.Width(bar); pad > 0 {
		info += strings.Repeat(" ", pad) + bar
	}
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	prompt := q.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = "(This question could not be generated. Pick any answer to continue.)"
	}
	b.WriteString(theme.Prompt.Width(cw).Render(prompt))
	b.WriteString("\n\n")

	switch q.Kind() {
	case quiz.KindMultipleChoice:
		b.WriteString(s.mc.View())
	case quiz.KindMatching:
		b.WriteString(theme.Hint.Render("Match each item on the left with one on the right."))
		b.WriteString("\n\n")
		b.WriteString(s.grid.View())
	}

	b.WriteString("\n")
	b.WriteString(s.renderDots())

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderDots shows one marker per question: filled when answered, with
// the current one highlighted.
func (s *QuizScreen) renderDots() string {
	parts := make([]string, s.session.Len())
	for i := range parts {
		mark := "○"
		if s.session.IsAnswered(i) {
			mark = "●"
		}
		style := theme.Unanswered
		if i == s.session.Current() {
			style = theme.Selected
		} else if s.session.IsAnswered(i) {
			style = theme.Body
		}
		parts[i] = style.Render(mark)
	}
	return strings.Join(parts, " ")
}

func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Prompt.Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Your answers will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// formatAnswer renders a for display under q.
func formatAnswer(q quiz.Question, a quiz.Answer) string {
	switch q.Kind() {
	case quiz.KindMultipleChoice:
		i := a.Letter.Index()
		if i < 0 {
			return "(none)"
		}
		return q.MultipleChoice.Options[i]
	case quiz.KindMatching:
		return formatOrder(q.Matching, a.Order)
	}
	return ""
}

func formatOrder(m *quiz.Matching, order []int) string {
	if len(m.Pairs) == 0 {
		return "(nothing to match)"
	}
	rights := m.Rights()
	lines := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		pick := "?"
		if i < len(order) && order[i] >= 0 && order[i] < len(rights) {
			pick = rights[order[i]]
		}
		lines[i] = p.Left + " → " + pick
	}
	return strings.Join(lines, "\n")
}

// correctAnswer renders the expected answer for q.
func correctAnswer(q quiz.Question) string {
	switch q.Kind() {
	case quiz.KindMultipleChoice:
		return q.MultipleChoice.Options[q.MultipleChoice.Correct.Index()]
	case quiz.KindMatching:
		return formatOrder(q.Matching, q.Matching.CorrectOrder)
	}
	return ""
}

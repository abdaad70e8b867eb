package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// MultiChoice renders the four options of a multiple-choice question and
// tracks the highlighted row.
type MultiChoice struct {
	Options [4]string
	Cursor  int

	// Chosen is the recorded answer, empty when unanswered.
	Chosen quiz.Letter

	// Reveal marks Correct after submission.
	Reveal  bool
	Correct quiz.Letter
}

// NewMultiChoice creates a selector for q. The cursor starts on the chosen
// option, if any.
func NewMultiChoice(mc *quiz.MultipleChoice, chosen quiz.Letter) MultiChoice {
	m := MultiChoice{Options: mc.Options, Chosen: chosen, Correct: mc.Correct}
	if i := chosen.Index(); i >= 0 {
		m.Cursor = i
	}
	return m
}

// Update moves the cursor. It returns the letter picked with Enter or a
// letter key, or "" when nothing was picked.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, quiz.Letter) {
	if m.Reveal {
		return m, ""
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ""
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		m.Chosen = quiz.Letters[m.Cursor]
		return m, m.Chosen
	case "a", "b", "c", "d", "A", "B", "C", "D":
		l := quiz.Letter(strings.ToUpper(key))
		m.Cursor = l.Index()
		m.Chosen = l
		return m, l
	}
	return m, ""
}

// View renders one line per option.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		l := quiz.Letters[i]
		if strings.TrimSpace(opt) == "" || opt == string(l)+". " {
			opt = string(l) + ". (no option)"
		}

		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := "   "
		if l == m.Chosen {
			mark = " ● "
		}
		line := prefix + mark + opt

		var style lipgloss.Style
		switch {
		case m.Reveal && l == m.Correct:
			style = theme.Correct
		case m.Reveal && l == m.Chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = theme.Unanswered
		case l == m.Chosen:
			style = theme.Chosen
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

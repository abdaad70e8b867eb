package components

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// Field is a single-line input built on bubbles/textinput. Its value is
// checked when the form commits it, not on every keystroke.
type Field struct {
	Model textinput.Model

	accept func(rune) bool
	check  func(string) error
	errMsg string
}

type FieldOption func(*Field)

// DigitsOnly drops any typed character that is not a decimal digit.
func DigitsOnly() FieldOption {
	return func(f *Field) { f.accept = unicode.IsDigit }
}

// Check sets the validation run by Commit.
func Check(fn func(string) error) FieldOption {
	return func(f *Field) { f.check = fn }
}

// NewField returns a focused field. limit caps the number of characters;
// zero means no cap.
func NewField(placeholder string, limit int, opts ...FieldOption) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Focus()

	f := Field{Model: ti}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if f.accept != nil && !f.accepts(k.String()) {
			return f, nil
		}
		f.errMsg = ""
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// accepts reports whether a printable key passes the filter. Named keys
// such as "backspace" always pass.
func (f Field) accepts(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) {
		return true
	}
	return f.accept(r)
}

// Commit returns the trimmed value. When the check fails its message is
// shown under the field and ok is false.
func (f *Field) Commit() (value string, ok bool) {
	value = strings.TrimSpace(f.Model.Value())
	if f.check != nil {
		if err := f.check(value); err != nil {
			f.errMsg = err.Error()
			return value, false
		}
	}
	f.errMsg = ""
	return value, true
}

func (f Field) View() string {
	v := f.Model.View()
	if f.errMsg != "" {
		v += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+f.errMsg)
	}
	return v
}

func (f Field) Value() string {
	return f.Model.Value()
}

func (f *Field) SetValue(v string) {
	f.Model.SetValue(v)
}

// SetError shows msg under the field until the next key press.
func (f *Field) SetError(msg string) {
	f.errMsg = msg
}

func (f Field) Err() string {
	return f.errMsg
}

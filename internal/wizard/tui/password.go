package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/wallet-setup/internal/i18n"
)

// DefaultPasswordPattern is the minimum password policy of the setup form
const DefaultPasswordPattern = `^.{4,}$`

// PasswordValidatedMsg reports the currently valid password. Password is
// empty while the entry is invalid or the repeat does not match.
type PasswordValidatedMsg struct {
	Password string
}

// PasswordHandle is the capability the setup form keeps on its input to wipe
// the entered secret after a submission.
type PasswordHandle interface {
	Clear()
}

// PasswordField is a password entry with confirmation as used by the
// initialize form.
type PasswordField interface {
	PasswordHandle
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	Blur()
	SetDisabled(disabled bool)
	// OnRepeat reports whether the repeat field has focus.
	OnRepeat() bool
	// Complete reports whether both fields hold text.
	Complete() bool
}

// PasswordRepeatInput is a pair of masked text inputs validated against a
// pattern and against each other.
type PasswordRepeatInput struct {
	Pattern *regexp.Regexp

	t        i18n.Translator
	password textinput.Model
	repeat   textinput.Model
	focus    int
	disabled bool
	focused  bool
	lastSent string
}

// NewPasswordRepeatInput creates the input with DefaultPasswordPattern
func NewPasswordRepeatInput(t i18n.Translator) *PasswordRepeatInput {
	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Placeholder = t.T("initialize.input.placeholder")
	password.CharLimit = 128
	password.Width = 40

	repeat := textinput.New()
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '•'
	repeat.Placeholder = t.T("initialize.input.placeholderRepeat")
	repeat.CharLimit = 128
	repeat.Width = 40

	return &PasswordRepeatInput{
		Pattern:  regexp.MustCompile(DefaultPasswordPattern),
		t:        t,
		password: password,
		repeat:   repeat,
	}
}

// Update handles field switching and typing. It returns a command emitting
// PasswordValidatedMsg when the valid password changes.
func (p *PasswordRepeatInput) Update(msg tea.Msg) tea.Cmd {
	if p.disabled {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return p.setFocus(1)
		case "shift+tab", "up":
			return p.setFocus(0)
		case "enter":
			if p.focus == 0 {
				return p.setFocus(1)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.password, cmd = p.password.Update(msg)
	} else {
		p.repeat, cmd = p.repeat.Update(msg)
	}

	return tea.Batch(cmd, p.validate())
}

// Valid returns the password when it matches the pattern and its repeat
func (p *PasswordRepeatInput) Valid() string {
	value := p.password.Value()
	if !p.Pattern.MatchString(value) || value != p.repeat.Value() {
		return ""
	}
	return value
}

func (p *PasswordRepeatInput) validate() tea.Cmd {
	valid := p.Valid()
	if valid == p.lastSent {
		return nil
	}
	p.lastSent = valid
	return func() tea.Msg {
		return PasswordValidatedMsg{Password: valid}
	}
}

// Clear wipes both fields and moves focus back to the first one
func (p *PasswordRepeatInput) Clear() {
	p.password.Reset()
	p.repeat.Reset()
	p.lastSent = ""
	if p.focused {
		p.setFocus(0)
	}
}

// SetDisabled blocks typing while a submission is pending
func (p *PasswordRepeatInput) SetDisabled(disabled bool) {
	p.disabled = disabled
	if disabled {
		p.password.Blur()
		p.repeat.Blur()
	} else if p.focused {
		p.setFocus(p.focus)
	}
}

// Focus gives keyboard focus to the current field
func (p *PasswordRepeatInput) Focus() tea.Cmd {
	p.focused = true
	return p.setFocus(p.focus)
}

// Blur removes keyboard focus from both fields
func (p *PasswordRepeatInput) Blur() {
	p.focused = false
	p.password.Blur()
	p.repeat.Blur()
}

// OnRepeat reports whether the repeat field has focus
func (p *PasswordRepeatInput) OnRepeat() bool {
	return p.focus == 1
}

// Complete reports whether both fields hold text
func (p *PasswordRepeatInput) Complete() bool {
	return p.password.Value() != "" && p.repeat.Value() != ""
}

func (p *PasswordRepeatInput) setFocus(index int) tea.Cmd {
	p.focus = index
	if p.disabled {
		return nil
	}
	p.focused = true
	if index == 0 {
		p.repeat.Blur()
		return p.password.Focus()
	}
	p.password.Blur()
	return p.repeat.Focus()
}

// View renders both fields with labels and validation hints
func (p *PasswordRepeatInput) View() string {
	var b strings.Builder

	b.WriteString(p.label(p.t.T("initialize.input.label"), p.focus == 0))
	b.WriteString("\n")
	b.WriteString(p.password.View())
	b.WriteString("\n")
	if value := p.password.Value(); value != "" && !p.Pattern.MatchString(value) {
		b.WriteString(ErrorTextStyle.Render(p.t.T("initialize.input.invalid")))
	}
	b.WriteString("\n")

	b.WriteString(p.label(p.t.T("initialize.input.labelRepeat"), p.focus == 1))
	b.WriteString("\n")
	b.WriteString(p.repeat.View())
	b.WriteString("\n")
	if repeat := p.repeat.Value(); repeat != "" && repeat != p.password.Value() {
		b.WriteString(ErrorTextStyle.Render(p.t.T("initialize.input.mismatch")))
	}

	return b.String()
}

func (p *PasswordRepeatInput) label(text string, current bool) string {
	if current && p.focused && !p.disabled {
		return FocusedInputStyle.Render("▸ " + text)
	}
	return BlurredInputStyle.Render("  " + text)
}

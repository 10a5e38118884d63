package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// MessageType selects the banner style
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageError
	MessageSuccess
)

// RenderMessage renders a status banner
func RenderMessage(kind MessageType, text string) string {
	switch kind {
	case MessageError:
		return ErrorMessageStyle.Render("✗ " + text)
	case MessageSuccess:
		return SuccessMessageStyle.Render("✓ " + text)
	default:
		return InfoMessageStyle.Render("ℹ " + text)
	}
}

// RenderButton renders a button label. Disabled buttons ignore primary.
func RenderButton(label string, primary bool, disabled bool) string {
	switch {
	case disabled:
		return DisabledButtonStyle.Render(label)
	case primary:
		return PrimaryButtonStyle.Render(label)
	default:
		return SecondaryButtonStyle.Render(label)
	}
}

// RenderButtonRow places a secondary button on the left and a primary one on
// the right, like a dialog footer.
func RenderButtonRow(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}

// NewSpinner returns a spinner pre-configured with the wizard's accent styling
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return s
}

// RenderSpinnerPanel renders a full-screen spinner with a caption
func RenderSpinnerPanel(s spinner.Model, text string, width, height int) string {
	panel := OverlayActiveStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Center, s.View(), " ", TextStyle.Render(text)),
	)
	return RenderModal(panel, width, height)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wallet-setup/internal/version"
)

// Application branding constants
const (
	AppName = "WALLET SETUP"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MaxContentWidth = 100 // Maximum content width before capping
	DefaultWidth    = 80  // Used before the first tea.WindowSizeMsg
	DefaultHeight   = 24
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	InfoColor      = lipgloss.Color("#5FAFFF") // Blue

	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BorderColor     = lipgloss.Color("#7D56F4") // Purple (same as primary)
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray
	OverlayColor    = lipgloss.Color("240")     // Overlay backdrop
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Buttons
	PrimaryButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	SecondaryButtonStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Border(lipgloss.NormalBorder(), false, true).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Background(BackgroundColor).
				Padding(0, 2)

	// Message banners
	InfoMessageStyle = lipgloss.NewStyle().
				Foreground(InfoColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(InfoColor).
				Padding(0, 2)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ErrorColor).
				Padding(0, 2)

	SuccessMessageStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SecondaryColor).
				Padding(0, 2)

	// Inputs
	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// Step indicator
	StepCurrentStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StepOtherStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	StepDividerStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	// Wait overlay
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(1, 3)

	OverlayActiveStyle = OverlayStyle.
				BorderForeground(PrimaryColor)

	OverlayHeaderStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				MarginBottom(1)

	ConfirmLabelStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	ConfirmLabelDisabledStyle = lipgloss.NewStyle().
					Foreground(SubtleColor).
					Faint(true)

	ConfirmNumberStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	RejectTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ApproveTextStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// BuildHeaderContent creates header content with app name and version
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render("v" + AppVersion())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps a screen's content with the application
// header, a context-sensitive footer and an outer border filling the terminal.
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	terminalWidth, terminalHeight = normalizeSize(terminalWidth, terminalHeight)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(1, 2)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// RenderModal centers modal content over a dimmed backdrop filling the terminal.
// Used for the wait overlay and the full-screen spinner.
func RenderModal(modalContent string, terminalWidth int, terminalHeight int) string {
	terminalWidth, terminalHeight = normalizeSize(terminalWidth, terminalHeight)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(OverlayColor),
	)
}

func normalizeSize(width, height int) (int, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

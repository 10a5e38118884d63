package tui

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wallet-setup/internal/i18n"
)

// ActivationDelay is how long after mounting the overlay switches to its
// active style.
const ActivationDelay = 10 * time.Millisecond

var lastInstanceID int64

func nextInstanceID() int64 {
	return atomic.AddInt64(&lastInstanceID, 1)
}

// OverlayConfig describes a confirm-on-device prompt
type OverlayConfig struct {
	// IncludeDefault renders the default instructions before Children
	IncludeDefault bool
	Prequel        string
	Title          string
	// Paired adds the pairing code step in front of the confirm step
	Paired bool
	Lock   bool
	// TouchConfirm defaults to true when nil
	TouchConfirm *bool
	Children     []string
}

// BoolPtr is a helper for optional OverlayConfig fields
func BoolPtr(v bool) *bool {
	return &v
}

type overlayActivateMsg struct {
	id int64
}

// WaitOverlay is a modal asking the user to confirm on the device. While
// mounted it consumes every key press.
type WaitOverlay struct {
	id      int64
	t       i18n.Translator
	cfg     OverlayConfig
	active  bool
	mounted bool
}

// NewWaitOverlay mounts a new overlay. Call Init to schedule activation and
// Close when it is dismissed.
func NewWaitOverlay(t i18n.Translator, cfg OverlayConfig) WaitOverlay {
	return WaitOverlay{
		id:      nextInstanceID(),
		t:       t,
		cfg:     cfg,
		mounted: true,
	}
}

// Init schedules the activation tick
func (o WaitOverlay) Init() tea.Cmd {
	id := o.id
	return tea.Tick(ActivationDelay, func(time.Time) tea.Msg {
		return overlayActivateMsg{id: id}
	})
}

// Update returns handled=true when the message was consumed by the overlay
func (o WaitOverlay) Update(msg tea.Msg) (WaitOverlay, tea.Cmd, bool) {
	if !o.mounted {
		return o, nil, false
	}

	switch msg := msg.(type) {
	case overlayActivateMsg:
		if msg.id != o.id {
			return o, nil, false
		}
		o.active = true
		return o, nil, true

	case tea.KeyMsg:
		return o, nil, true
	}

	return o, nil, false
}

// Close releases key capture. Calling it again has no effect.
func (o *WaitOverlay) Close() {
	o.mounted = false
}

// Active reports whether the entrance transition has happened
func (o WaitOverlay) Active() bool {
	return o.active
}

// Mounted reports whether the overlay still captures keys
func (o WaitOverlay) Mounted() bool {
	return o.mounted
}

func (o WaitOverlay) touchConfirm() bool {
	return o.cfg.TouchConfirm == nil || *o.cfg.TouchConfirm
}

// View renders the modal box without backdrop
func (o WaitOverlay) View() string {
	title := o.cfg.Title
	if title == "" {
		title = o.t.T("confirm.title")
	}

	sections := []string{OverlayHeaderStyle.Render(title)}

	hasChildren := len(o.cfg.Children) > 0
	if !hasChildren || o.cfg.IncludeDefault {
		sections = append(sections, o.defaultContent())
	}
	if hasChildren {
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, o.cfg.Children...))
	}

	style := OverlayStyle
	if o.active {
		style = OverlayActiveStyle
	}
	return style.Render(strings.Join(sections, "\n\n"))
}

// ViewOver renders the modal centered over a backdrop of the given size
func (o WaitOverlay) ViewOver(width, height int) string {
	return RenderModal(o.View(), width, height)
}

func (o WaitOverlay) defaultContent() string {
	touch := o.touchConfirm()
	var lines []string

	if o.cfg.Prequel != "" {
		lines = append(lines, TextStyle.Render(o.cfg.Prequel), "")
	}

	if o.cfg.Paired {
		lines = append(lines,
			confirmLine("1.", o.t.T("confirm.infoWhenPaired"), touch && o.cfg.Lock),
			confirmLine("2.", o.t.T("confirm.info"), !touch && o.cfg.Lock),
		)
	} else {
		lines = append(lines, ConfirmLabelStyle.Render(o.t.T("confirm.info")))
	}

	if touch {
		reject := lipgloss.JoinVertical(lipgloss.Center,
			MutedStyle.Render("Reject"),
			TextStyle.Bold(true).Render(o.t.T("confirm.abortInfo"))+RejectTextStyle.Render(o.t.T("confirm.abortInfoRedText")),
		)
		approve := lipgloss.JoinVertical(lipgloss.Center,
			MutedStyle.Render("Approve"),
			TextStyle.Bold(true).Render(o.t.T("confirm.approveInfo"))+ApproveTextStyle.Render(o.t.T("confirm.approveInfoGreenText")),
		)
		lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top, reject, "      ", approve))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func confirmLine(number, text string, disabled bool) string {
	if disabled {
		return ConfirmLabelDisabledStyle.Render(number + " " + text)
	}
	return ConfirmNumberStyle.Render(number) + " " + ConfirmLabelStyle.Render(text)
}

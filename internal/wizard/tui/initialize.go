package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/wallet-setup/internal/api"
	"github.com/muurk/wallet-setup/internal/config"
	"github.com/muurk/wallet-setup/internal/i18n"
	"github.com/muurk/wallet-setup/internal/logging"
)

// Status is the submission state of the initialize form
type Status int

const (
	StatusDefault Status = iota
	StatusWaiting
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusError:
		return "error"
	default:
		return "default"
	}
}

// PasswordSetter sets the device password through the app backend
type PasswordSetter interface {
	SetPassword(ctx context.Context, deviceID string, password string) (*api.SetPasswordResponse, error)
}

// PasswordSetMsg is emitted once the device accepted the new password
type PasswordSetMsg struct {
	DeviceID string
}

type setPasswordResultMsg struct {
	id   int64
	resp *api.SetPasswordResponse
	err  error
}

// InitializeConfig configures an InitializeWizard
type InitializeConfig struct {
	DeviceID string
	// Goal selects the step labels, config.GoalCreate or config.GoalRestore
	Goal string
	// GoBack produces the message sent when the user leaves the wizard
	GoBack     func() tea.Msg
	Translator i18n.Translator
	Client     PasswordSetter
	// Input defaults to a PasswordRepeatInput
	Input          PasswordField
	RequestTimeout time.Duration
}

type initializeInfoKeyMap struct {
	Continue key.Binding
	Back     key.Binding
}

func (k initializeInfoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue, k.Back}
}

func (k initializeInfoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Continue, k.Back}}
}

type initializeFormKeyMap struct {
	Switch key.Binding
	Submit key.Binding
	Back   key.Binding
}

func (k initializeFormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Submit, k.Back}
}

func (k initializeFormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Switch, k.Submit, k.Back}}
}

// InitializeWizard is the device password step of the setup. It first shows
// an explanation, then a password form that submits to the backend.
type InitializeWizard struct {
	id     int64
	cfg    InitializeConfig
	t      i18n.Translator
	input  PasswordField
	closed bool

	showInfo     bool
	password     string
	status       Status
	errorCode    api.ErrorCode
	errorMessage string
	inFlight     bool

	spinner  spinner.Model
	help     help.Model
	infoKeys initializeInfoKeyMap
	formKeys initializeFormKeyMap

	Width  int
	Height int
}

// NewInitializeWizard creates the wizard in its info phase
func NewInitializeWizard(cfg InitializeConfig) InitializeWizard {
	t := cfg.Translator
	if t == nil {
		t = i18n.Static{}
	}
	if cfg.Goal == "" {
		cfg.Goal = config.GoalCreate
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = api.DefaultTimeout
	}

	input := cfg.Input
	if input == nil {
		input = NewPasswordRepeatInput(t)
	}

	return InitializeWizard{
		id:       nextInstanceID(),
		cfg:      cfg,
		t:        t,
		input:    input,
		showInfo: true,
		status:   StatusDefault,
		spinner:  NewSpinner(),
		help:     help.New(),
		infoKeys: initializeInfoKeyMap{
			Continue: key.NewBinding(
				key.WithKeys("enter", "c"),
				key.WithHelp("enter/c", t.T("initialize.info.button")),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "b"),
				key.WithHelp("esc/b", t.T("button.back")),
			),
		},
		formKeys: initializeFormKeyMap{
			Switch: key.NewBinding(
				key.WithKeys("tab", "shift+tab"),
				key.WithHelp("tab", "switch field"),
			),
			Submit: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", t.T("initialize.create")),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", t.T("button.back")),
			),
		},
	}
}

// Init has nothing to start in the info phase
func (w InitializeWizard) Init() tea.Cmd {
	return nil
}

// ShowInfo reports whether the explanation is still displayed
func (w InitializeWizard) ShowInfo() bool {
	return w.showInfo
}

// Status returns the submission state
func (w InitializeWizard) Status() Status {
	return w.status
}

// ErrorCode returns the backend error code of the last failed submission
func (w InitializeWizard) ErrorCode() api.ErrorCode {
	return w.errorCode
}

// ErrorMessage returns the backend or transport error of the last failed submission
func (w InitializeWizard) ErrorMessage() string {
	return w.errorMessage
}

// Password returns the currently validated password
func (w InitializeWizard) Password() string {
	return w.password
}

// Continue leaves the info phase. It never goes back.
func (w *InitializeWizard) Continue() tea.Cmd {
	if !w.showInfo {
		return nil
	}
	w.showInfo = false
	logging.LogTransition("initialize", "info", "form")
	return w.input.Focus()
}

// Back hands control back to the caller
func (w *InitializeWizard) Back() tea.Cmd {
	if w.cfg.GoBack == nil {
		return nil
	}
	return w.cfg.GoBack
}

// Submit sends the validated password to the device. It does nothing without
// a password or while a request is pending.
func (w *InitializeWizard) Submit() tea.Cmd {
	if w.closed || w.password == "" || w.status == StatusWaiting || w.inFlight {
		return nil
	}

	w.setStatus(StatusWaiting)
	w.errorCode = ""
	w.errorMessage = ""
	w.inFlight = true
	w.input.SetDisabled(true)

	return tea.Batch(w.setPasswordCmd(w.password), w.spinner.Tick)
}

func (w *InitializeWizard) setPasswordCmd(password string) tea.Cmd {
	id := w.id
	client := w.cfg.Client
	deviceID := w.cfg.DeviceID
	timeout := w.cfg.RequestTimeout

	return func() tea.Msg {
		if client == nil {
			return setPasswordResultMsg{id: id, err: api.NewValidationError("no backend client configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.SetPassword(ctx, deviceID, password)
		return setPasswordResultMsg{id: id, resp: resp, err: err}
	}
}

// Close detaches the wizard; results arriving afterwards are dropped
func (w *InitializeWizard) Close() {
	w.closed = true
}

func (w *InitializeWizard) setStatus(status Status) {
	if w.status != status {
		logging.LogTransition("initialize", w.status.String(), status.String())
	}
	w.status = status
}

// Update handles keys, input validation and submission results
func (w InitializeWizard) Update(msg tea.Msg) (InitializeWizard, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.Width = msg.Width
		w.Height = msg.Height
		return w, nil

	case setPasswordResultMsg:
		if w.closed || msg.id != w.id {
			return w, nil
		}
		return w.handleResult(msg)

	case PasswordValidatedMsg:
		if !w.closed {
			w.password = msg.Password
		}
		return w, nil

	case spinner.TickMsg:
		if w.status != StatusWaiting {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		if w.closed {
			return w, nil
		}
		return w.handleKey(msg)
	}

	if !w.showInfo && !w.closed {
		return w, w.input.Update(msg)
	}
	return w, nil
}

func (w InitializeWizard) handleKey(msg tea.KeyMsg) (InitializeWizard, tea.Cmd) {
	if w.showInfo {
		switch {
		case key.Matches(msg, w.infoKeys.Continue):
			return w, w.Continue()
		case key.Matches(msg, w.infoKeys.Back):
			return w, w.Back()
		}
		return w, nil
	}

	if w.status == StatusWaiting {
		return w, nil
	}

	switch {
	case key.Matches(msg, w.formKeys.Back):
		return w, w.Back()
	case key.Matches(msg, w.formKeys.Submit) && (w.input.OnRepeat() || w.input.Complete()):
		return w, w.Submit()
	}

	return w, w.input.Update(msg)
}

func (w InitializeWizard) handleResult(msg setPasswordResultMsg) (InitializeWizard, tea.Cmd) {
	w.inFlight = false
	success := false

	switch {
	case msg.err != nil:
		w.setStatus(StatusError)
		w.errorMessage = api.GetShortErrorMessage(msg.err)
		logging.Warn("Set password request failed",
			zap.String("device_id", w.cfg.DeviceID),
			zap.Error(msg.err),
		)

	case msg.resp == nil || !msg.resp.Success:
		w.setStatus(StatusError)
		if msg.resp != nil {
			w.errorCode = msg.resp.Code
			w.errorMessage = msg.resp.ErrorMessage
		}
		logging.Warn("Device rejected password",
			zap.String("device_id", w.cfg.DeviceID),
			zap.String("code", w.errorCode.String()),
		)

	default:
		w.setStatus(StatusDefault)
		success = true
		logging.Info("Device password set", zap.String("device_id", w.cfg.DeviceID))
	}

	w.password = ""
	w.input.Clear()
	w.input.SetDisabled(false)

	if success {
		deviceID := w.cfg.DeviceID
		return w, func() tea.Msg {
			return PasswordSetMsg{DeviceID: deviceID}
		}
	}
	return w, w.input.Focus()
}

// SetInputFocus focuses or blurs the password input, used while an overlay
// takes the keyboard.
func (w *InitializeWizard) SetInputFocus(focused bool) tea.Cmd {
	if w.showInfo {
		return nil
	}
	if focused {
		return w.input.Focus()
	}
	w.input.Blur()
	return nil
}

// View renders the wizard inside the application container
func (w InitializeWizard) View() string {
	var helpText string
	if w.showInfo {
		helpText = w.help.View(w.infoKeys)
	} else {
		helpText = w.help.View(w.formKeys)
	}
	return RenderApplicationContainer(w.Content(), helpText, w.Width, w.Height)
}

// Content renders the wizard without the surrounding container
func (w InitializeWizard) Content() string {
	var b strings.Builder

	b.WriteString(w.steps().View())
	b.WriteString("\n\n")

	if banner := w.banner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	title := "setup"
	if w.showInfo {
		title = "initialize.info.title"
	}
	b.WriteString(RenderTitle(w.t.T(title)))
	b.WriteString("\n")

	if w.status == StatusWaiting {
		b.WriteString(RenderSpinnerPanel(w.spinner, w.t.T("initialize.creating"), w.contentWidth(), 7))
		return b.String()
	}

	if w.showInfo {
		b.WriteString(w.infoContent())
	} else {
		b.WriteString(w.formContent())
	}

	return b.String()
}

func (w InitializeWizard) steps() Steps {
	goal := w.cfg.Goal
	return Steps{
		Current: 1,
		Items: []Step{
			{Title: w.t.T("goal.step.1.title")},
			{Divider: true},
			{Title: w.t.T("goal.step.2.title"), Description: w.t.T("goal.step.2.description")},
			{Divider: true},
			{Title: w.t.T("goal.step.3-" + goal + ".title"), Description: w.t.T("goal.step.3-" + goal + ".description")},
			{Divider: true},
			{Title: w.t.T("goal.step.4-" + goal + ".title")},
		},
	}
}

func (w InitializeWizard) banner() string {
	switch w.status {
	case StatusWaiting:
		return RenderMessage(MessageInfo, w.t.T("initialize.creating"))
	case StatusError:
		text := w.t.T("initialize.error.e"+w.errorCode.String(), i18n.WithDefault(w.errorMessage))
		return RenderMessage(MessageError, text)
	default:
		return ""
	}
}

func (w InitializeWizard) infoContent() string {
	lines := []string{
		SubtitleStyle.Render(w.t.T("initialize.info.subtitle")),
		"",
		TextStyle.Render("• " + w.t.T("initialize.info.description1")),
		TextStyle.Render("• " + w.t.T("initialize.info.description2")),
		"",
		TextStyle.Width(w.contentWidth()).Render(w.t.T("initialize.info.description3")),
		"",
		RenderButtonRow(
			RenderButton(w.t.T("button.back"), false, false),
			RenderButton(w.t.T("initialize.info.button"), true, false),
			w.contentWidth(),
		),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (w InitializeWizard) formContent() string {
	canSubmit := w.password != "" && w.status != StatusWaiting
	lines := []string{
		w.input.View(),
		"",
		RenderButtonRow(
			RenderButton(w.t.T("button.back"), false, false),
			RenderButton(w.t.T("initialize.create"), true, !canSubmit),
			w.contentWidth(),
		),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (w InitializeWizard) contentWidth() int {
	width := w.Width
	if width <= 0 {
		width = DefaultWidth
	}
	width -= 8
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width
}

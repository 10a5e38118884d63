package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/wallet-setup/internal/events"
	"github.com/muurk/wallet-setup/internal/i18n"
	"github.com/muurk/wallet-setup/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenInitialize Screen = "initialize"
	ScreenDone       Screen = "done"
	ScreenExit       Screen = "exit"
)

// Result is what the wizard reports once the program ends
type Result struct {
	DeviceID    string
	PasswordSet bool
	Aborted     bool
}

type goBackMsg struct{}

type deviceEventMsg struct {
	event events.Event
}

type eventsClosedMsg struct{}

// doneKeyMap defines key bindings for the done screen
type doneKeyMap struct {
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k doneKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k doneKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// AppConfig wires the application to its backend
type AppConfig struct {
	DeviceID       string
	Goal           string
	Translator     i18n.Translator
	Client         PasswordSetter
	RequestTimeout time.Duration
	// Events delivers backend device events; nil disables the wait overlay
	Events <-chan events.Event
	// Input overrides the password input of the initialize screen
	Input PasswordField
}

// AppModel is the top-level coordinator model that manages screen transitions
// and the confirm-on-device overlay.
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	Initialize InitializeWizard
	Overlay    WaitOverlay

	t        i18n.Translator
	deviceID string
	events   <-chan events.Event
	result   Result

	// UI state
	Width  int
	Height int

	// Help
	Help     help.Model
	DoneKeys doneKeyMap
}

// NewAppModel creates the application on the initialize screen
func NewAppModel(cfg AppConfig) AppModel {
	t := cfg.Translator
	if t == nil {
		t = i18n.Static{}
	}

	wizard := NewInitializeWizard(InitializeConfig{
		DeviceID:       cfg.DeviceID,
		Goal:           cfg.Goal,
		GoBack:         func() tea.Msg { return goBackMsg{} },
		Translator:     t,
		Client:         cfg.Client,
		Input:          cfg.Input,
		RequestTimeout: cfg.RequestTimeout,
	})

	return AppModel{
		CurrentScreen: ScreenInitialize,
		Initialize:    wizard,
		t:             t,
		deviceID:      cfg.DeviceID,
		events:        cfg.Events,
		result:        Result{DeviceID: cfg.DeviceID},
		Help:          help.New(),
		DoneKeys: doneKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("q", "enter", "esc"),
				key.WithHelp("q", t.T("app.quit")),
			),
		},
	}
}

// Result returns the outcome of the session
func (m AppModel) Result() Result {
	return m.result
}

// Init starts the current screen and the event listener
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Initialize.Init(), waitForEvent(m.events))
}

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return deviceEventMsg{event: ev}
	}
}

// Update handles all messages and routes them to the overlay or the screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Initialize.Width = msg.Width
		m.Initialize.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			if !m.result.PasswordSet {
				m.result.Aborted = true
			}
			return m.quit()
		}

	case deviceEventMsg:
		return m.handleEvent(msg.event)

	case eventsClosedMsg:
		logging.Debug("Event stream closed")
		m.events = nil
		return m, nil

	case goBackMsg:
		m.result.Aborted = true
		return m.quit()

	case PasswordSetMsg:
		m.result.PasswordSet = true
		m.result.DeviceID = msg.DeviceID
		m.Initialize.Close()
		m.CurrentScreen = ScreenDone
		return m, nil
	}

	if m.Overlay.Mounted() {
		overlay, cmd, handled := m.Overlay.Update(msg)
		m.Overlay = overlay
		if handled {
			if _, ok := msg.(tea.KeyMsg); ok {
				m.Initialize.SetInputFocus(false)
			}
			return m, cmd
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenInitialize:
		var cmd tea.Cmd
		m.Initialize, cmd = m.Initialize.Update(msg)
		return m, cmd

	case ScreenDone:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.DoneKeys.Quit) {
			return m.quit()
		}
	}

	return m, nil
}

func (m AppModel) handleEvent(ev events.Event) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.events)

	if ev.DeviceID != "" && m.deviceID != "" && ev.DeviceID != m.deviceID {
		return m, next
	}
	switch {
	case ev.IsConfirmPending():
		logging.LogTransition("overlay", "closed", "mounted")
		m.Overlay.Close()
		m.Overlay = NewWaitOverlay(m.t, overlayConfigFromEvent(ev))
		m.Initialize.SetInputFocus(false)
		return m, tea.Batch(m.Overlay.Init(), next)

	case ev.IsConfirmDone():
		if !m.Overlay.Mounted() {
			return m, next
		}
		logging.LogTransition("overlay", "mounted", "closed")
		m.Overlay.Close()
		var focus tea.Cmd
		if m.CurrentScreen == ScreenInitialize {
			focus = m.Initialize.SetInputFocus(true)
		}
		return m, tea.Batch(focus, next)
	}

	return m, next
}

func overlayConfigFromEvent(ev events.Event) OverlayConfig {
	cfg := OverlayConfig{}
	if ev.Meta != nil {
		cfg.Title = ev.Meta.Title
		cfg.Prequel = ev.Meta.Prequel
		cfg.Paired = ev.Meta.Paired
		cfg.Lock = ev.Meta.Lock
		cfg.TouchConfirm = ev.Meta.TouchConfirm
	}
	return cfg
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.Overlay.Close()
	m.Initialize.Close()
	m.CurrentScreen = ScreenExit
	return m, tea.Quit
}

// View renders the current screen, covered by the overlay while it is mounted
func (m AppModel) View() string {
	if m.Overlay.Mounted() {
		return m.Overlay.ViewOver(m.Width, m.Height)
	}

	switch m.CurrentScreen {
	case ScreenInitialize:
		return m.Initialize.View()
	case ScreenDone:
		return m.renderDoneScreen()
	case ScreenExit:
		return ""
	default:
		return "Unknown screen"
	}
}

// renderDoneScreen renders the success screen
func (m AppModel) renderDoneScreen() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✓ " + m.t.T("app.done.title")))
	b.WriteString("\n\n")
	b.WriteString(RenderMessage(MessageSuccess, m.t.T("initialize.done")))
	b.WriteString("\n\n")
	b.WriteString(TextStyle.Render(m.t.T("app.done.body")))

	return RenderApplicationContainer(b.String(), m.Help.View(m.DoneKeys), m.Width, m.Height)
}

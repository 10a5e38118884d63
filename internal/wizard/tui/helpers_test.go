package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/wallet-setup/internal/api"
	"github.com/muurk/wallet-setup/internal/i18n"
)

var testTranslator = i18n.Static{
	"confirm.info":                 "Confirm on your device",
	"confirm.infoWhenPaired":       "Compare the pairing code",
	"confirm.abortInfo":            "Tap to ",
	"confirm.abortInfoRedText":     "reject",
	"confirm.approveInfo":          "Hold to ",
	"confirm.approveInfoGreenText": "approve",
	"confirm.title":                "Waiting for confirmation",
	"initialize.info.title":        "Secure your device",
	"initialize.creating":          "Setting the device password...",
	"setup":                        "Set up",
	"app.done.title":               "All set",
}

// fakeInput records how the wizard drives its password field
type fakeInput struct {
	clears    int
	disabled  bool
	focused   bool
	onRepeat  bool
	complete  bool
	updates   []tea.Msg
	focusCall int
}

func (f *fakeInput) Clear() { f.clears++ }

func (f *fakeInput) Update(msg tea.Msg) tea.Cmd {
	f.updates = append(f.updates, msg)
	return nil
}

func (f *fakeInput) View() string { return "[password input]" }

func (f *fakeInput) Focus() tea.Cmd {
	f.focused = true
	f.focusCall++
	return nil
}

func (f *fakeInput) Blur() { f.focused = false }

func (f *fakeInput) SetDisabled(disabled bool) { f.disabled = disabled }

func (f *fakeInput) OnRepeat() bool { return f.onRepeat }

func (f *fakeInput) Complete() bool { return f.complete }

// fakeSetter is a PasswordSetter returning a canned response
type fakeSetter struct {
	mu       sync.Mutex
	calls    int
	deviceID string
	password string
	deadline bool

	resp *api.SetPasswordResponse
	err  error
}

func (f *fakeSetter) SetPassword(ctx context.Context, deviceID string, password string) (*api.SetPasswordResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.deviceID = deviceID
	f.password = password
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func (f *fakeSetter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// runCmd executes cmd and flattens batches into the produced messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

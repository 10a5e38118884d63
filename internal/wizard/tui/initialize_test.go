package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/wallet-setup/internal/api"
	"github.com/muurk/wallet-setup/internal/i18n"
)

type backMsg struct{}

func newTestWizard(setter *fakeSetter, input *fakeInput, t i18n.Translator) InitializeWizard {
	return NewInitializeWizard(InitializeConfig{
		DeviceID:   "device-1",
		Goal:       "create",
		GoBack:     func() tea.Msg { return backMsg{} },
		Translator: t,
		Client:     setter,
		Input:      input,
	})
}

// submitWithPassword moves the wizard to the form, enters a password and submits
func submitWithPassword(t *testing.T, w InitializeWizard, password string) (InitializeWizard, setPasswordResultMsg) {
	t.Helper()

	w.Continue()
	w, _ = w.Update(PasswordValidatedMsg{Password: password})

	cmd := w.Submit()
	if cmd == nil {
		t.Fatal("Submit() returned no command")
	}
	if w.Status() != StatusWaiting {
		t.Fatalf("status = %v, want waiting", w.Status())
	}

	for _, msg := range runCmd(cmd) {
		if result, ok := msg.(setPasswordResultMsg); ok {
			return w, result
		}
	}
	t.Fatal("Submit() command produced no result message")
	return w, setPasswordResultMsg{}
}

func TestInitializeContinue(t *testing.T) {
	input := &fakeInput{}
	w := newTestWizard(&fakeSetter{}, input, testTranslator)

	if !w.ShowInfo() {
		t.Fatal("wizard should start in the info phase")
	}

	w, _ = w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if w.ShowInfo() {
		t.Fatal("enter should leave the info phase")
	}
	if !input.focused {
		t.Error("password input should be focused after continue")
	}

	w.Continue()
	w, _ = w.Update(keyRunes("c"))
	if w.ShowInfo() {
		t.Error("info phase should never come back")
	}
	if input.focusCall != 1 {
		t.Errorf("input focused %d times, want 1", input.focusCall)
	}
}

func TestInitializeBack(t *testing.T) {
	tests := []struct {
		name   string
		inForm bool
		key    tea.KeyMsg
	}{
		{"Info esc", false, tea.KeyMsg{Type: tea.KeyEsc}},
		{"Info b", false, keyRunes("b")},
		{"Form esc", true, tea.KeyMsg{Type: tea.KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard(&fakeSetter{}, &fakeInput{}, testTranslator)
			if tt.inForm {
				w.Continue()
			}
			_, cmd := w.Update(tt.key)
			if cmd == nil {
				t.Fatal("back key produced no command")
			}
			if _, ok := cmd().(backMsg); !ok {
				t.Error("back key did not run GoBack")
			}
		})
	}
}

func TestInitializeFormTypesB(t *testing.T) {
	input := &fakeInput{}
	w := newTestWizard(&fakeSetter{}, input, testTranslator)
	w.Continue()

	_, cmd := w.Update(keyRunes("b"))
	if cmd != nil {
		t.Error("b in the form should not go back")
	}
	if len(input.updates) != 1 {
		t.Errorf("input received %d messages, want 1", len(input.updates))
	}
}

func TestInitializeSubmitWithoutPassword(t *testing.T) {
	setter := &fakeSetter{}
	w := newTestWizard(setter, &fakeInput{onRepeat: true}, testTranslator)
	w.Continue()

	if cmd := w.Submit(); cmd != nil {
		t.Error("Submit() without password returned a command")
	}
	if w.Status() != StatusDefault {
		t.Errorf("status = %v, want default", w.Status())
	}

	// Enter on the repeat field submits
	w, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(cmd)
	if w.Status() != StatusDefault {
		t.Errorf("status = %v after enter, want default", w.Status())
	}
	if setter.callCount() != 0 {
		t.Errorf("SetPassword called %d times, want 0", setter.callCount())
	}
}

func TestInitializeSubmitGuards(t *testing.T) {
	setter := &fakeSetter{resp: &api.SetPasswordResponse{Success: true}}
	input := &fakeInput{onRepeat: true}
	w := newTestWizard(setter, input, testTranslator)
	w.Continue()
	w, _ = w.Update(PasswordValidatedMsg{Password: "secret"})

	w, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on repeat field should submit")
	}
	if !input.disabled {
		t.Error("input should be disabled while waiting")
	}

	if again := w.Submit(); again != nil {
		t.Error("second Submit() while waiting returned a command")
	}

	updates := len(input.updates)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEsc}, keyRunes("x")} {
		var c tea.Cmd
		w, c = w.Update(k)
		if c != nil {
			t.Errorf("key %q produced a command while waiting", k.String())
		}
	}
	if len(input.updates) != updates {
		t.Error("input received keys while waiting")
	}

	runCmd(cmd)
	if setter.callCount() != 1 {
		t.Errorf("SetPassword called %d times, want 1", setter.callCount())
	}
	if setter.deviceID != "device-1" || setter.password != "secret" {
		t.Errorf("SetPassword(%q, %q), want (device-1, secret)", setter.deviceID, setter.password)
	}
	if !setter.deadline {
		t.Error("request context has no deadline")
	}
}

func TestInitializeBackendError(t *testing.T) {
	tests := []struct {
		name       string
		translator i18n.Translator
		wantBanner string
	}{
		{"Literal message", testTranslator, "boom"},
		{"Localized code", i18n.Static{"initialize.error.e123": "Localized failure"}, "Localized failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setter := &fakeSetter{resp: &api.SetPasswordResponse{
				Success:      false,
				Code:         "123",
				ErrorMessage: "boom",
			}}
			input := &fakeInput{}
			w := newTestWizard(setter, input, tt.translator)

			w, result := submitWithPassword(t, w, "secret")
			w, cmd := w.Update(result)

			if w.Status() != StatusError {
				t.Fatalf("status = %v, want error", w.Status())
			}
			if w.ErrorCode() != "123" {
				t.Errorf("error code = %q, want 123", w.ErrorCode())
			}
			if w.ErrorMessage() != "boom" {
				t.Errorf("error message = %q, want boom", w.ErrorMessage())
			}
			if input.clears != 1 {
				t.Errorf("Clear() called %d times, want 1", input.clears)
			}
			if input.disabled {
				t.Error("input should be enabled again")
			}
			if w.Password() != "" {
				t.Error("password should be reset")
			}
			for _, msg := range runCmd(cmd) {
				if _, ok := msg.(PasswordSetMsg); ok {
					t.Error("failure emitted PasswordSetMsg")
				}
			}
			if content := w.Content(); !strings.Contains(content, tt.wantBanner) {
				t.Errorf("Content() missing %q:\n%s", tt.wantBanner, content)
			}
		})
	}
}

func TestInitializeTransportError(t *testing.T) {
	transportErr := api.NewHTTPError(503, "unavailable")
	setter := &fakeSetter{err: transportErr}
	input := &fakeInput{}
	w := newTestWizard(setter, input, testTranslator)

	w, result := submitWithPassword(t, w, "secret")
	w, _ = w.Update(result)

	if w.Status() != StatusError {
		t.Fatalf("status = %v, want error", w.Status())
	}
	if w.ErrorCode() != "" {
		t.Errorf("error code = %q, want none", w.ErrorCode())
	}
	if want := api.GetShortErrorMessage(transportErr); w.ErrorMessage() != want {
		t.Errorf("error message = %q, want %q", w.ErrorMessage(), want)
	}
	if input.clears != 1 {
		t.Errorf("Clear() called %d times, want 1", input.clears)
	}
}

func TestInitializeSuccess(t *testing.T) {
	setter := &fakeSetter{resp: &api.SetPasswordResponse{Success: true}}
	input := &fakeInput{}
	w := newTestWizard(setter, input, testTranslator)

	w, result := submitWithPassword(t, w, "secret")
	w, cmd := w.Update(result)

	if w.Status() != StatusDefault {
		t.Errorf("status = %v, want default", w.Status())
	}
	if w.ErrorCode() != "" || w.ErrorMessage() != "" {
		t.Errorf("error fields set: code=%q message=%q", w.ErrorCode(), w.ErrorMessage())
	}
	if input.clears != 1 {
		t.Errorf("Clear() called %d times, want 1", input.clears)
	}

	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	set, ok := msgs[0].(PasswordSetMsg)
	if !ok || set.DeviceID != "device-1" {
		t.Errorf("got %#v, want PasswordSetMsg for device-1", msgs[0])
	}

	// A new submission works after the previous one finished
	w, _ = w.Update(PasswordValidatedMsg{Password: "another"})
	if w.Submit() == nil {
		t.Error("Submit() after completion returned no command")
	}
}

func TestInitializeDropsStaleResults(t *testing.T) {
	setter := &fakeSetter{resp: &api.SetPasswordResponse{Success: false, ErrorMessage: "late"}}

	t.Run("Closed", func(t *testing.T) {
		input := &fakeInput{}
		w := newTestWizard(setter, input, testTranslator)
		w, result := submitWithPassword(t, w, "secret")

		w.Close()
		w, cmd := w.Update(result)
		if cmd != nil {
			t.Error("closed wizard returned a command")
		}
		if w.Status() != StatusWaiting || input.clears != 0 {
			t.Error("closed wizard processed a result")
		}
	})

	t.Run("Foreign", func(t *testing.T) {
		other := newTestWizard(setter, &fakeInput{}, testTranslator)
		_, result := submitWithPassword(t, other, "secret")

		input := &fakeInput{}
		w := newTestWizard(setter, input, testTranslator)
		w, _ = submitWithPassword(t, w, "secret")
		w, _ = w.Update(result)
		if w.Status() != StatusWaiting || input.clears != 0 {
			t.Error("wizard processed another instance's result")
		}
	})
}

func TestInitializeViewStable(t *testing.T) {
	w := newTestWizard(&fakeSetter{}, &fakeInput{}, testTranslator)
	w, _ = w.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if w.View() != w.View() {
		t.Error("View() changed without any update")
	}
	if !strings.Contains(w.Content(), "Secure your device") {
		t.Error("info phase should show the info title")
	}

	w.Continue()
	if !strings.Contains(w.Content(), "Set up") {
		t.Error("form phase should show the setup title")
	}
	if !strings.Contains(w.Content(), "[password input]") {
		t.Error("form phase should render the password input")
	}
}

func TestInitializeStepsFollowGoal(t *testing.T) {
	tr := i18n.Static{
		"goal.step.3-restore.title": "Restore wallet",
		"goal.step.4-restore.title": "Ready to use",
	}
	w := NewInitializeWizard(InitializeConfig{Goal: "restore", Translator: tr, Input: &fakeInput{}})

	steps := w.steps()
	if steps.Current != 1 {
		t.Errorf("current step = %d, want 1", steps.Current)
	}
	if steps.Count() != 4 {
		t.Errorf("step count = %d, want 4", steps.Count())
	}
	view := steps.View()
	for _, want := range []string{"Restore wallet", "Ready to use"} {
		if !strings.Contains(view, want) {
			t.Errorf("steps missing %q:\n%s", want, view)
		}
	}
}

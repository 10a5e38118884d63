package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestHeaderRender(t *testing.T) {
	h := NewHeader("Registered devices", "wallet-setup devices",
		Param{Key: "Backend", Value: "http://127.0.0.1:8082/api/"},
		Param{Key: "Config", Value: "/tmp/wallet-setup.yaml"},
	).SetWidth(80)

	out := h.Render()
	for _, want := range []string{"REGISTERED DEVICES", "wallet-setup devices", "Backend:", "Config:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Backend:") > strings.Index(out, "Config:") {
		t.Error("params should render in the given order")
	}
}

func TestResultRender(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "Success",
			result: NewSuccessResult("Device password set", Param{Key: "Device", Value: "abc"}),
			want:   []string{"SUCCESS", "Device password set", "Device:", "abc"},
		},
		{
			name:   "Failure",
			result: NewFailureResult("Could not list devices", errors.New("connection refused"), "Could not reach the backend.\n  • Start the app"),
			want:   []string{"FAILED", "connection refused", "Could not reach the backend.", "Start the app"},
		},
		{
			name:   "Warning",
			result: NewWarningResult("No devices registered"),
			want:   []string{"WARNING", "No devices registered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(90).Render()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderDeviceTable(t *testing.T) {
	out := RenderDeviceTable([]DeviceRow{
		{ID: "dev-a", Product: "bitbox", PasswordSet: true},
		{ID: "dev-b", Product: "bitbox", Nickname: "spare"},
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "DEVICE") {
		t.Errorf("first line should be the header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "dev-a") || !strings.Contains(lines[1], "set") {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "spare") || !strings.Contains(lines[2], "not set") {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintResult(NewSuccessResult("done"))

	if !strings.Contains(buf.String(), "done") {
		t.Errorf("printer output missing result: %q", buf.String())
	}
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "wallet-setup") {
		t.Errorf("GetConfigDir() = %v, should contain 'wallet-setup'", configDir)
	}

	switch runtime.GOOS {
	case "darwin", "linux":
		if os.Getenv("XDG_CONFIG_HOME") == "" && !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if got != filepath.Join(dir, "wallet-setup") {
		t.Errorf("GetConfigDir() = %v", got)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != CurrentVersion {
		t.Errorf("NewRegistry().Version = %v, want %v", reg.Version, CurrentVersion)
	}

	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}

	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.Goal != GoalCreate {
		t.Errorf("default goal = %q, want %q", reg.Preferences.Goal, GoalCreate)
	}

	if err := reg.Preferences.Validate(); err != nil {
		t.Errorf("default preferences should validate: %v", err)
	}
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Preferences)
		wantErr bool
	}{
		{"defaults", func(p *Preferences) {}, false},
		{"restore goal", func(p *Preferences) { p.Goal = GoalRestore }, false},
		{"bad goal", func(p *Preferences) { p.Goal = "teleport" }, true},
		{"empty backend", func(p *Preferences) { p.BackendURL = "" }, true},
		{"negative timeout", func(p *Preferences) { p.RequestTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPreferences()
			tt.mutate(p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	reg := NewRegistry()

	device1 := reg.EnsureDevice("dev-1")
	if device1 == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	device2 := reg.EnsureDevice("dev-1")
	if device1 != device2 {
		t.Error("EnsureDevice() should return same instance for same ID")
	}

	device3 := reg.EnsureDevice("dev-2")
	if device1 == device3 {
		t.Error("EnsureDevice() should create new instance for different ID")
	}
}

func TestRegistryUpdateDeviceLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateDeviceLastSeen("dev-1", "bitbox02")
	after := time.Now()

	device := reg.GetDevice("dev-1")
	if device == nil {
		t.Fatal("Device should exist after UpdateDeviceLastSeen()")
	}

	if device.Product != "bitbox02" {
		t.Errorf("Product = %v, want bitbox02", device.Product)
	}

	if device.LastSeen.Before(before) || device.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", device.LastSeen, before, after)
	}

	reg.UpdateDeviceLastSeen("dev-1", "")
	if device.Product != "bitbox02" {
		t.Error("empty product should not overwrite the known product")
	}
}

func TestRegistryMarkPasswordSet(t *testing.T) {
	reg := NewRegistry()
	reg.MarkPasswordSet("dev-1")

	if reg.GetDevice("dev-1").PasswordSetAt.IsZero() {
		t.Error("PasswordSetAt should be set")
	}
}

func TestRegistrySetDeviceNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetDeviceNickname("dev-1", "Cold storage")

	if got := reg.GetDevice("dev-1").Nickname; got != "Cold storage" {
		t.Errorf("Nickname = %v, want 'Cold storage'", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reg.Preferences.BackendURL == "" {
		t.Error("missing file should produce default preferences")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	reg := NewRegistry()
	reg.Preferences.Language = "de"
	reg.Preferences.Goal = GoalRestore
	reg.SetDeviceNickname("dev-1", "Travel")

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Preferences.Language != "de" || loaded.Preferences.Goal != GoalRestore {
		t.Errorf("preferences not round-tripped: %+v", loaded.Preferences)
	}
	if loaded.GetDevice("dev-1") == nil || loaded.GetDevice("dev-1").Nickname != "Travel" {
		t.Error("device metadata not round-tripped")
	}
	if loaded.Preferences.RequestTimeout != 2*time.Minute {
		t.Errorf("RequestTimeout = %v, want 2m", loaded.Preferences.RequestTimeout)
	}
}

func TestLoad_FillsMissingPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\npreferences:\n  language: de\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if reg.Preferences.Language != "de" {
		t.Errorf("Language = %q, want de", reg.Preferences.Language)
	}
	if reg.Preferences.Goal != GoalCreate {
		t.Errorf("Goal = %q, want default", reg.Preferences.Goal)
	}
	if reg.Preferences.BackendURL == "" {
		t.Error("BackendURL should be defaulted")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "version: [1\n"},
		{"wrong version", "version: 7\n"},
		{"bad goal", "version: 1\npreferences:\n  goal: sideways\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

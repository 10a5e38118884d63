package config

import (
	"fmt"
	"time"
)

// CurrentVersion is the registry file format version
const CurrentVersion = 1

// Setup goals select the step copy shown by the wizard
const (
	GoalCreate  = "create"
	GoalRestore = "restore"
)

// Registry represents the entire user configuration file.
// It stores application preferences and metadata about devices this tool
// has set up. Device passwords are never stored.
type Registry struct {
	Version     int                `yaml:"version"`
	Preferences *Preferences       `yaml:"preferences,omitempty"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by backend device ID
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	BackendURL     string        `yaml:"backend_url"`               // Wallet backend REST root
	EventsURL      string        `yaml:"events_url,omitempty"`      // WebSocket event stream; derived from BackendURL when empty
	Language       string        `yaml:"language"`                  // UI language (en, de)
	Goal           string        `yaml:"goal"`                      // create or restore
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"` // set-password timeout
}

// Device represents what this tool remembers about one device.
type Device struct {
	Nickname      string    `yaml:"nickname,omitempty"`
	Product       string    `yaml:"product,omitempty"`
	LastSeen      time.Time `yaml:"last_seen,omitempty"`
	PasswordSetAt time.Time `yaml:"password_set_at,omitempty"`
}

// DefaultPreferences returns the preferences used when no file exists.
func DefaultPreferences() *Preferences {
	return &Preferences{
		BackendURL:     "http://127.0.0.1:8082/api/",
		Language:       "en",
		Goal:           GoalCreate,
		RequestTimeout: 2 * time.Minute,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Devices:     make(map[string]*Device),
		Preferences: DefaultPreferences(),
	}
}

// Validate checks preference values that would otherwise fail later.
func (p *Preferences) Validate() error {
	switch p.Goal {
	case GoalCreate, GoalRestore:
	default:
		return fmt.Errorf("invalid goal %q (expected %q or %q)", p.Goal, GoalCreate, GoalRestore)
	}
	if p.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	if p.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// GetDevice retrieves device metadata by ID.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(id string) *Device {
	return r.Devices[id]
}

// EnsureDevice ensures a device entry exists in the registry.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(id string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[id]; exists {
		return device
	}

	device := &Device{}
	r.Devices[id] = device
	return device
}

// UpdateDeviceLastSeen records that the device was attached, and its product.
func (r *Registry) UpdateDeviceLastSeen(id, product string) {
	device := r.EnsureDevice(id)
	device.LastSeen = time.Now()
	if product != "" {
		device.Product = product
	}
}

// MarkPasswordSet records when the device password was set.
func (r *Registry) MarkPasswordSet(id string) {
	device := r.EnsureDevice(id)
	device.PasswordSetAt = time.Now()
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(id, nickname string) {
	device := r.EnsureDevice(id)
	device.Nickname = nickname
}

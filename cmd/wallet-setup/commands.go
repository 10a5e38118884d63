package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wallet-setup/internal/api"
	"github.com/muurk/wallet-setup/internal/config"
	"github.com/muurk/wallet-setup/internal/events"
	"github.com/muurk/wallet-setup/internal/i18n"
	"github.com/muurk/wallet-setup/internal/logging"
	"github.com/muurk/wallet-setup/internal/ui"
	"github.com/muurk/wallet-setup/internal/wizard/tui"
)

// Command flags
var (
	configPath     string
	backendURL     string
	eventsURL      string
	deviceID       string
	goal           string
	language       string
	requestTimeout time.Duration
	noEvents       bool
	logLevel       string
	logFile        string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default <user config dir>/wallet-setup/config.yaml)")
	flags.StringVar(&backendURL, "backend", api.DefaultBaseURL, "Wallet app backend URL")
	flags.StringVar(&eventsURL, "events-url", "", "Device event stream URL (derived from --backend when empty)")
	flags.StringVar(&language, "lang", "en", "UI language")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")
	flags.StringVar(&logFile, "log-file", "", "Log file (default <user config dir>/wallet-setup/wallet-setup.log)")

	rootCmd.Flags().StringVar(&deviceID, "device-id", "", "Device to set up (skips selection when exactly one is registered)")
	rootCmd.Flags().StringVar(&goal, "goal", config.GoalCreate, "Setup goal (create, restore)")
	rootCmd.Flags().DurationVar(&requestTimeout, "timeout", api.DefaultTimeout, "Timeout for the set-password request")
	rootCmd.Flags().BoolVar(&noEvents, "no-events", false, "Do not subscribe to device events")

	rootCmd.AddCommand(devicesCmd)
}

// setupLogging initializes zap before any command runs. Logs go to a file
// because the wizard owns the terminal.
func setupLogging(cmd *cobra.Command, args []string) error {
	enabled := logLevel != "" || os.Getenv(logging.LogLevelEnvVar) != ""
	path := logFile
	if enabled && path == "" && os.Getenv(logging.LogFileEnvVar) == "" {
		if defaultPath, err := config.GetLogPath(); err == nil {
			if err := os.MkdirAll(filepath.Dir(defaultPath), 0700); err == nil {
				path = defaultPath
			}
		}
	}
	if err := logging.Initialize(logLevel, path); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// loadRegistry reads the config file and applies command line overrides
// to its preferences.
func loadRegistry(cmd *cobra.Command) (*config.Registry, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get config path: %w", err)
		}
	}

	reg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	applyFlags(cmd, reg.Preferences)
	if err := reg.Preferences.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid settings: %w", err)
	}
	return reg, path, nil
}

// applyFlags copies explicitly set flags over the stored preferences
func applyFlags(cmd *cobra.Command, prefs *config.Preferences) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("backend") {
		prefs.BackendURL = backendURL
	}
	if changed("events-url") {
		prefs.EventsURL = eventsURL
	}
	if changed("lang") {
		prefs.Language = language
	}
	if changed("goal") {
		prefs.Goal = goal
	}
	if changed("timeout") {
		prefs.RequestTimeout = requestTimeout
	}
}

// deviceLister is the part of api.Client used for device selection
type deviceLister interface {
	RegisteredDevices(ctx context.Context) (api.RegisteredDevices, error)
}

// selectDevice returns the device to set up. An explicit id wins; otherwise
// exactly one registered device is required.
func selectDevice(ctx context.Context, client deviceLister, id string) (string, api.RegisteredDevices, error) {
	devices, err := client.RegisteredDevices(ctx)
	if err != nil {
		if id != "" {
			// The backend may still accept the request for a known id
			logging.Warn("Failed to list devices", zap.Error(err))
			return id, nil, nil
		}
		return "", nil, err
	}

	if id != "" {
		if _, ok := devices[id]; !ok {
			return "", devices, fmt.Errorf("device %q is not registered (registered: %s)", id, formatIDs(devices))
		}
		return id, devices, nil
	}

	switch len(devices) {
	case 0:
		return "", devices, fmt.Errorf("no device registered. Connect a device and make sure the wallet app is running")
	case 1:
		return devices.IDs()[0], devices, nil
	default:
		return "", devices, fmt.Errorf("multiple devices registered (%s). Use --device-id to pick one", formatIDs(devices))
	}
}

func formatIDs(devices api.RegisteredDevices) string {
	ids := devices.IDs()
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

// subscribeEvents connects to the device event stream. Failure only disables
// the wait overlay.
func subscribeEvents(ctx context.Context, prefs *config.Preferences) *events.Subscription {
	url := prefs.EventsURL
	if url == "" {
		derived, err := events.EventsURL(prefs.BackendURL)
		if err != nil {
			logging.Warn("Cannot derive events URL", zap.Error(err))
			return nil
		}
		url = derived
	}

	sub, err := events.Subscribe(ctx, url)
	if err != nil {
		logging.Warn("Device events unavailable", zap.String("url", url), zap.Error(err))
		return nil
	}
	return sub
}

func runWizard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	reg, path, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	prefs := reg.Preferences

	bundle, err := i18n.New(prefs.Language)
	if err != nil {
		return err
	}

	client := api.NewClient(prefs.BackendURL)
	client.SetTimeout(prefs.RequestTimeout)

	id, devices, err := selectDevice(ctx, client, deviceID)
	if err != nil {
		printFailure(cmd, "Cannot start setup", err)
		return fmt.Errorf("device selection failed: %w", err)
	}
	reg.UpdateDeviceLastSeen(id, devices[id])

	appCfg := tui.AppConfig{
		DeviceID:       id,
		Goal:           prefs.Goal,
		Translator:     bundle,
		Client:         client,
		RequestTimeout: prefs.RequestTimeout,
	}

	if !noEvents {
		if sub := subscribeEvents(ctx, prefs); sub != nil {
			defer sub.Close()
			appCfg.Events = sub.Events()
		}
	}

	logging.Info("Starting wizard",
		zap.String("device_id", id),
		zap.String("goal", prefs.Goal),
		zap.String("backend", prefs.BackendURL),
	)

	p := tea.NewProgram(tui.NewAppModel(appCfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	app, ok := final.(tui.AppModel)
	if !ok {
		return fmt.Errorf("wizard error: unexpected model %T", final)
	}
	result := app.Result()

	if result.PasswordSet {
		reg.MarkPasswordSet(result.DeviceID)
	}
	if err := reg.SaveTo(path); err != nil {
		logging.Warn("Failed to save config", zap.String("path", path), zap.Error(err))
	}

	if result.PasswordSet {
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintResult(ui.NewSuccessResult(bundle.T("initialize.done"),
			ui.Param{Key: "Device", Value: result.DeviceID},
		))
	}
	return nil
}

// devicesCmd lists the devices registered with the backend
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices registered with the wallet backend",
	Long: `List the devices the wallet app backend currently has registered,
together with what this tool remembers about them.`,
	Example: `  # List devices on the default backend
  wallet-setup devices

  # Use a different backend
  wallet-setup devices --backend http://127.0.0.1:8085/api/`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	reg, path, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader(ui.NewHeader("Registered devices", "wallet-setup devices",
		ui.Param{Key: "Backend", Value: reg.Preferences.BackendURL},
		ui.Param{Key: "Config", Value: path},
	))

	client := api.NewClient(reg.Preferences.BackendURL)
	devices, err := client.RegisteredDevices(cmd.Context())
	if err != nil {
		printFailure(cmd, "Could not list devices", err)
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		p.PrintResult(ui.NewWarningResult("No devices registered"))
		return nil
	}

	p.Println(ui.RenderDeviceTable(deviceRows(reg, devices)))
	p.Newline()

	for id, product := range devices {
		reg.UpdateDeviceLastSeen(id, product)
	}
	if err := reg.SaveTo(path); err != nil {
		logging.Warn("Failed to save config", zap.String("path", path), zap.Error(err))
	}
	return nil
}

// deviceRows merges backend devices with the registry, sorted by id
func deviceRows(reg *config.Registry, devices api.RegisteredDevices) []ui.DeviceRow {
	rows := make([]ui.DeviceRow, 0, len(devices))
	for id, product := range devices {
		row := ui.DeviceRow{ID: id, Product: product}
		if d := reg.GetDevice(id); d != nil {
			row.Nickname = d.Nickname
			row.PasswordSet = !d.PasswordSetAt.IsZero()
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func printFailure(cmd *cobra.Command, title string, err error) {
	p := ui.NewPrinter(cmd.ErrOrStderr())
	p.PrintResult(ui.NewFailureResult(title, err, api.GetTroubleshootingHint(err)))
}

// Package config provides user configuration management for wallet-setup.
//
// This package manages a YAML file holding application preferences (backend
// URL, language, setup goal, request timeout) and a little metadata about
// devices set up with this tool. The file lives in the OS-specific
// configuration directory.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/wallet-setup/config.yaml or $HOME/.config/wallet-setup/config.yaml
//   - macOS: $HOME/.config/wallet-setup/config.yaml
//   - Windows: %LOCALAPPDATA%\wallet-setup\config.yaml
//
// # Security
//
// Device passwords are never written to the configuration file.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//
//	registry.MarkPasswordSet(deviceID)
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// Command-line flags override Preferences for a single run; they are not
// written back.
package config

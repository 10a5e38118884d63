// Wallet-setup is a terminal setup wizard for hardware wallets.
//
// It talks to the wallet app's local backend, which owns the USB connection
// to the device, and walks the user through setting the device password.
// While the device waits for a confirmation the wizard shows a blocking
// "confirm on your device" overlay.
//
// Usage:
//
//	wallet-setup [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'wallet-setup --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/wallet-setup/internal/logging"
	"github.com/muurk/wallet-setup/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wallet-setup",
	Short: "Hardware wallet setup wizard",
	Long: `A terminal wizard for setting up a hardware wallet.

Connects to the wallet app backend, lets you choose a device password and
shows on-screen guidance whenever the device waits for your confirmation.

If no command is specified, the interactive wizard will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runWizard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wallet-setup %s\n", version.Full())
	},
}

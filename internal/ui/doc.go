// Package ui provides terminal output components for the non-interactive
// wallet-setup commands.
//
// Unlike the interactive wizard in internal/wizard/tui, these components
// render once and return: a command prints a Header describing what it does,
// then its output and a Result box.
//
//   - Header: command banner showing the operation name and parameters
//   - Result: success, failure or warning box with details and a
//     troubleshooting hint
//   - RenderDeviceTable: aligned table of registered devices
//   - Printer: writes the components to stdout or a test buffer
//
// Example:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader(ui.NewHeader("Registered devices", "wallet-setup devices",
//	    ui.Param{Key: "Backend", Value: backendURL}))
//	p.Println(ui.RenderDeviceTable(rows))
//
// Logging is controlled separately via WALLETSETUP_LOG_LEVEL. When unset, zap
// logging is silent so the styled output stays clean.
package ui

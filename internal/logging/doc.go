// Package logging provides structured logging for wallet-setup.
//
// This package wraps a global zap logger with convenience functions for the
// few things worth recording: backend requests, device events and wizard
// state transitions.
//
// # Silent By Default
//
// The wizard owns the terminal, so logging is disabled unless a level is
// requested through --log-level or WALLETSETUP_LOG_LEVEL. Output goes to the
// file named by --log-file (or WALLETSETUP_LOG_FILE), falling back to stderr.
//
//	if err := logging.Initialize("debug", "/tmp/wallet-setup.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Secrets
//
// Request bodies are never logged. LogAPIRequest only records the method and
// URL because set-password bodies carry the device password.
package logging

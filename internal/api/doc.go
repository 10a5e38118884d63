// Package api provides an HTTP client for the wallet app backend.
//
// The backend owns USB communication with the hardware wallet and exposes a
// small JSON REST API. This package covers the calls the setup wizard needs:
//
//	client := api.NewClient("http://127.0.0.1:8082/api/")
//
//	devices, err := client.RegisteredDevices(ctx)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.SetPassword(ctx, deviceID, password)
//	if err != nil {
//	    // transport, HTTP or decoding failure
//	}
//	if !resp.Success {
//	    // rejected by the backend; resp.Code and resp.ErrorMessage explain why
//	}
//
// # Errors
//
// Failures are returned as *APIError with a category (network, timeout,
// connection refused, DNS, HTTP, parse, validation, canceled). Use
// GetShortErrorMessage for a one-line message suitable for a status banner
// and GetTroubleshootingHint for CLI output.
//
// # Retries
//
// SetPassword sends exactly one request and is never retried.
package api

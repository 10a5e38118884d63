// Package tui implements the terminal user interface for the wallet setup wizard.
//
// The wizard is built with Bubble Tea and follows the Elm architecture: every
// component is a value with Init/Update/View, and asynchronous work such as the
// set-password request runs in commands whose results come back as messages.
//
// # Screens
//
// AppModel coordinates the screens:
//   - Initialize: explains the device password, then asks for it twice and
//     submits it to the wallet backend (InitializeWizard)
//   - Done: shown once the device accepted the password
//   - Exit: the program is quitting
//
// All screens use RenderApplicationContainer for the header, content area and
// context-sensitive footer.
//
// # Wait Overlay
//
// When the backend reports that the device waits for a confirmation, AppModel
// mounts a WaitOverlay. While mounted the overlay consumes every key press and
// the password input is blurred; ctrl+c still quits. The overlay switches to its
// active style ActivationDelay after mounting. It is closed when the backend
// reports the confirmation as done.
//
// Messages that complete after a component was closed, or that belong to a
// different instance, are dropped. Each component carries an instance id for
// this purpose.
//
// # Usage Example
//
//	app := tui.NewAppModel(tui.AppConfig{
//	    DeviceID:   deviceID,
//	    Translator: bundle,
//	    Client:     api.NewClient(api.DefaultBaseURL),
//	    Events:     sub.Events(),
//	})
//	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
//	if err != nil {
//	    return err
//	}
//	result := final.(tui.AppModel).Result()
//
// # Key Bindings
//
//   - Initialize (info): enter/c continue, esc/b back
//   - Initialize (form): tab/shift+tab switch field, enter submit, esc back
//   - Done: q/enter quit
//   - Anywhere: ctrl+c quit
package tui

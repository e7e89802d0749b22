package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"keycap/internal/constants"
	"keycap/internal/keymanager"
)

// QuitConfirmDialog asks whether to quit while the shortcut set still has
// missing or duplicate keys.
type QuitConfirmDialog struct {
	keyManager *keymanager.KeyManager
	debugPrint func(format string, args ...interface{})
	dialog     dialog.Dialog
	callback   func(bool) // Callback function for quit confirmation
	parent     fyne.Window
	closed     bool // Prevent double-close/pop
	sink       *KeySink
}

// NewQuitConfirmDialog creates a new quit confirmation dialog
func NewQuitConfirmDialog(keyManager *keymanager.KeyManager, debugPrint func(format string, args ...interface{})) *QuitConfirmDialog {
	return &QuitConfirmDialog{
		keyManager: keyManager,
		debugPrint: debugPrint,
	}
}

// ShowDialog shows the quit confirmation dialog
func (qcd *QuitConfirmDialog) ShowDialog(parent fyne.Window, callback func(bool)) {
	qcd.callback = callback
	qcd.parent = parent
	qcd.closed = false

	// Route keys to this dialog while it is open
	quitHandler := keymanager.NewQuitConfirmDialogKeyHandler(qcd, qcd.debugPrint)
	qcd.keyManager.PushHandler(quitHandler)

	message := widget.NewLabel("Some actions still have missing or duplicate keys.\nQuit anyway?")
	message.Alignment = fyne.TextAlignCenter

	// Wrap content with KeySink to capture keys and forward to KeyManager
	qcd.sink = NewKeySink(message, qcd.keyManager, WithTabCapture(false))
	qcd.sink.Resize(fyne.NewSize(400, 100))

	qcd.dialog = dialog.NewCustomConfirm(
		"Quit "+constants.ApplicationTitle,
		"Yes",
		"No",
		qcd.sink,
		func(confirmed bool) {
			if qcd.closed {
				return
			}
			qcd.closed = true

			// Pop the handler first
			qcd.keyManager.PopHandler()

			if qcd.callback != nil {
				qcd.callback(confirmed)
			}
		},
		parent,
	)

	qcd.dialog.Show()

	// Ensure focus goes to our KeySink so keyboard events are captured
	if qcd.parent != nil && qcd.sink != nil {
		qcd.parent.Canvas().Focus(qcd.sink)
	}
}

// QuitDialogInterface implementation

// ConfirmQuit confirms the quit action
func (qcd *QuitConfirmDialog) ConfirmQuit() {
	qcd.close(true)
}

// CancelQuit cancels the quit action
func (qcd *QuitConfirmDialog) CancelQuit() {
	qcd.close(false)
}

func (qcd *QuitConfirmDialog) close(confirmed bool) {
	if qcd.closed {
		return
	}
	qcd.closed = true

	qcd.debugPrint("QuitConfirmDialog: Closed via keyboard, confirmed=%t", confirmed)

	// Pop the handler first
	qcd.keyManager.PopHandler()

	if qcd.dialog != nil {
		qcd.dialog.Hide()
	}

	if qcd.callback != nil {
		qcd.callback(confirmed)
	}
}

package keymanager

import (
	"fyne.io/fyne/v2"
)

// QuitDialogInterface defines the interface needed by QuitConfirmDialogKeyHandler
type QuitDialogInterface interface {
	// Dialog control
	ConfirmQuit()
	CancelQuit()
}

// QuitConfirmDialogKeyHandler handles keyboard events for the quit confirmation dialog
type QuitConfirmDialogKeyHandler struct {
	quitDialog QuitDialogInterface
	debugPrint func(format string, args ...interface{})
}

// NewQuitConfirmDialogKeyHandler creates a new quit confirmation dialog key handler
func NewQuitConfirmDialogKeyHandler(qd QuitDialogInterface, debugPrint func(format string, args ...interface{})) *QuitConfirmDialogKeyHandler {
	return &QuitConfirmDialogKeyHandler{
		quitDialog: qd,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (qh *QuitConfirmDialogKeyHandler) GetName() string {
	return "QuitConfirmDialog"
}

// OnTypedKey handles key press events
func (qh *QuitConfirmDialogKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	switch ev.Name {
	case fyne.KeyReturn:
		fallthrough
	case fyne.KeyY:
		qh.debugPrint("QuitConfirmDialog: Enter detected - confirming quit")
		qh.quitDialog.ConfirmQuit()

	case fyne.KeyEscape:
		fallthrough
	case fyne.KeyN:
		qh.debugPrint("QuitConfirmDialog: Escape detected - cancelling quit")
		qh.quitDialog.CancelQuit()

	default:
		// Consume all other typed key events while the dialog is open
		qh.debugPrint("QuitConfirmDialog: Consuming key event: %s", ev.Name)
	}
	return true
}

// OnTypedRune handles text input (consume all while the dialog is open)
func (qh *QuitConfirmDialogKeyHandler) OnTypedRune(r rune) bool {
	return true
}

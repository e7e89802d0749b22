package keymanager

import (
	"fyne.io/fyne/v2"
)

// TryoutView defines the interface needed by TryoutKeyHandler
type TryoutView interface {
	// ReportKey shows which action (if any) the typed character triggers
	ReportKey(r rune)

	// CloseTryout leaves try-out mode
	CloseTryout()
}

// TryoutKeyHandler handles keyboard events for the shortcut try-out area.
// Printable characters are looked up against the current shortcut
// assignments, Escape leaves try-out mode.
type TryoutKeyHandler struct {
	view       TryoutView
	debugPrint func(format string, args ...interface{})
}

// NewTryoutKeyHandler creates a new try-out key handler
func NewTryoutKeyHandler(view TryoutView, debugPrint func(format string, args ...interface{})) *TryoutKeyHandler {
	return &TryoutKeyHandler{
		view:       view,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (th *TryoutKeyHandler) GetName() string {
	return "Tryout"
}

// OnTypedKey handles key press events
func (th *TryoutKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	if ev.Name == fyne.KeyEscape {
		th.debugPrint("Tryout: Escape detected - leaving try-out mode")
		th.view.CloseTryout()
		return true
	}
	// Consume everything else; only typed characters are meaningful here
	return true
}

// OnTypedRune handles text input
func (th *TryoutKeyHandler) OnTypedRune(r rune) bool {
	th.view.ReportKey(r)
	return true
}

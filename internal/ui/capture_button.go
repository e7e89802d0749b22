package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"keycap/internal/capture"
	"keycap/internal/config"
	"keycap/internal/constants"
	apperrors "keycap/internal/errors"
)

// CaptureButton is a small fixed-size button that records a single key
// press. Tapping it starts a capture session: the button takes keyboard
// focus and the next typed character is written to the bound value. Escape
// cancels the session and restores the previous value, Backspace and Delete
// clear it, and clicking elsewhere ends the session without changing
// anything.
//
// The bound value is owned by the caller; the button never keeps its own
// copy. A caller-supplied validation error (for example a duplicate key
// found by the hosting form) tints the border, but the listening styling
// always wins while a session is in progress.
type CaptureButton struct {
	widget.BaseWidget

	// PlaceHolder is shown when the bound value is empty
	PlaceHolder string

	value             binding.String
	session           *capture.Session
	style             config.CaptureStyleConfig
	validation        capture.ValidationError
	onCaptureFinished func()
	post              func(func())
	debugPrint        func(format string, args ...interface{})
}

// NewCaptureButton creates a capture button bound to the given value.
// onCaptureFinished is invoked exactly once at the end of every capture
// session, whether it committed a key, cancelled, cleared, or lost focus;
// the caller re-reads the bound value from there.
func NewCaptureButton(value binding.String, style config.CaptureStyleConfig, onCaptureFinished func(), debugPrint func(format string, args ...interface{})) *CaptureButton {
	if debugPrint == nil {
		debugPrint = func(format string, args ...interface{}) {}
	}
	b := &CaptureButton{
		PlaceHolder:       constants.DefaultPlaceholder,
		value:             value,
		style:             style,
		onCaptureFinished: onCaptureFinished,
		post:              fyne.Do,
		debugPrint:        debugPrint,
	}
	accessor := capture.Accessor{
		Get: b.currentValue,
		Set: b.writeValue,
	}
	// The indirection through b.post keeps the deferred-task primitive
	// swappable; the session only ever sees the current one.
	b.session = capture.NewSession(accessor, b.sessionFinished, func(f func()) { b.post(f) }, debugPrint)
	b.ExtendBaseWidget(b)

	// Repaint when the caller changes the bound value from outside
	if value != nil {
		value.AddListener(binding.NewDataListener(b.Refresh))
	}
	return b
}

// Listening reports whether the button is currently waiting for a key press
func (b *CaptureButton) Listening() bool {
	return b.session.Listening()
}

// SetValidationError updates the caller-supplied validation state. It only
// affects styling, and while a session is listening the listening styling
// still wins.
func (b *CaptureButton) SetValidationError(kind capture.ValidationError) {
	if b.validation == kind {
		return
	}
	b.validation = kind
	b.Refresh()
}

// SetStyle replaces the button's appearance settings
func (b *CaptureButton) SetStyle(style config.CaptureStyleConfig) {
	b.style = style
	b.Refresh()
}

// Tapped implements fyne.Tappable; it starts a capture session.
func (b *CaptureButton) Tapped(_ *fyne.PointEvent) {
	if !b.session.Activate() {
		// Already listening: retry the focus request so a button that was
		// tapped before its window appeared can still receive keys.
		if b.session.Listening() {
			b.requestFocus()
		}
		return
	}
	b.debugPrint("CaptureButton: Listening for next key press")
	if !b.requestFocus() {
		// Degraded mode: visually listening but without focus no key will
		// arrive. Resolved by the next user action, never surfaced.
		b.debugPrint("CaptureButton: No canvas attached, cannot take focus")
	}
	b.Refresh()
}

// FocusGained implements fyne.Focusable; no-op, activation happens on tap.
func (b *CaptureButton) FocusGained() {}

// FocusLost implements fyne.Focusable. Losing focus while listening ends
// the session without touching the value.
func (b *CaptureButton) FocusLost() {
	b.session.FocusLost()
}

// TypedKey implements fyne.Focusable. Escape cancels, Backspace and Delete
// clear. Other named keys carry no character payload and are ignored, the
// session keeps listening.
func (b *CaptureButton) TypedKey(ev *fyne.KeyEvent) {
	if !b.session.Listening() {
		return
	}
	switch ev.Name {
	case fyne.KeyEscape:
		b.session.Cancel()
	case fyne.KeyBackspace, fyne.KeyDelete:
		b.session.Clear()
	default:
		b.debugPrint("CaptureButton: Ignoring key without character payload: %s", ev.Name)
	}
}

// TypedRune implements fyne.Focusable; a typed character commits and ends
// the session.
func (b *CaptureButton) TypedRune(r rune) {
	b.session.Commit(string(r))
}

// AcceptsTab reports whether Tab is consumed instead of moving focus.
// While listening Tab must not traverse away mid-session.
func (b *CaptureButton) AcceptsTab() bool {
	return b.session.Listening()
}

// requestFocus asks the host window manager to make this button the key
// event receiver. Returns false when the button is not attached to a canvas.
func (b *CaptureButton) requestFocus() bool {
	driver := fyne.CurrentApp().Driver()
	canvas := driver.CanvasForObject(b)
	if canvas == nil {
		return false
	}
	canvas.Focus(b)
	return true
}

// releaseFocus gives focus back if this button still holds it
func (b *CaptureButton) releaseFocus() {
	driver := fyne.CurrentApp().Driver()
	canvas := driver.CanvasForObject(b)
	if canvas != nil && canvas.Focused() == fyne.Focusable(b) {
		canvas.Unfocus()
	}
}

// sessionFinished runs in the deferred finish task, after the session has
// returned to idle. Unfocusing here cannot re-enter the session: its state
// is already idle, so the resulting FocusLost is a no-op.
func (b *CaptureButton) sessionFinished() {
	b.releaseFocus()
	b.Refresh()
	if b.onCaptureFinished != nil {
		b.onCaptureFinished()
	}
}

func (b *CaptureButton) currentValue() string {
	if b.value == nil {
		return ""
	}
	v, err := b.value.Get()
	if err != nil {
		log.Printf("Error: %v",
			apperrors.NewUIError("read_bound_value", "could not read captured key", err))
		return ""
	}
	return v
}

func (b *CaptureButton) writeValue(v string) {
	if b.value == nil {
		return
	}
	if err := b.value.Set(v); err != nil {
		log.Printf("Error: %v",
			apperrors.NewUIError("write_bound_value", "could not store captured key", err))
	}
}

// CreateRenderer creates the widget renderer
func (b *CaptureButton) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	label := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	label.Alignment = fyne.TextAlignCenter

	r := &captureButtonRenderer{
		button:     b,
		background: background,
		label:      label,
	}
	r.Refresh()
	return r
}

type captureButtonRenderer struct {
	button     *CaptureButton
	background *canvas.Rectangle
	label      *canvas.Text
}

func (r *captureButtonRenderer) MinSize() fyne.Size {
	return fyne.NewSize(constants.CaptureButtonWidth, constants.CaptureButtonHeight)
}

func (r *captureButtonRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	labelMin := r.label.MinSize()
	r.label.Resize(fyne.NewSize(size.Width, labelMin.Height))
	r.label.Move(fyne.NewPos(0, (size.Height-labelMin.Height)/2))
}

func (r *captureButtonRenderer) Refresh() {
	b := r.button

	value := b.currentValue()
	if value == "" {
		r.label.Text = b.PlaceHolder
		r.label.Color = theme.Color(theme.ColorNamePlaceHolder)
	} else {
		r.label.Text = value
		r.label.Color = theme.Color(theme.ColorNameForeground)
	}
	r.label.TextSize = theme.TextSize()

	thickness := b.style.BorderThickness
	if thickness < constants.MinBorderThickness {
		thickness = constants.MinBorderThickness
	}
	r.background.FillColor = theme.Color(theme.ColorNameInputBackground)
	r.background.CornerRadius = theme.InputRadiusSize()
	r.background.StrokeWidth = float32(thickness)
	// Styling precedence: listening > validation error > idle
	switch {
	case b.session.Listening():
		r.background.StrokeColor = rgbaColor(b.style.ListeningColor)
	case b.validation != capture.ValidationNone:
		r.background.StrokeColor = rgbaColor(b.style.ErrorColor)
	default:
		r.background.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	}

	r.background.Refresh()
	r.label.Refresh()
}

func (r *captureButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.label}
}

func (r *captureButtonRenderer) Destroy() {}

// rgbaColor converts a config color entry to a color.Color
func rgbaColor(rgba [4]uint8) color.Color {
	return color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"keycap/internal/keymanager"
)

// KeySink is a focusable wrapper around any CanvasObject. While focused it
// forwards all key events to the provided KeyManager, so an area that has
// no input widget of its own (like the shortcut try-out label) can still
// receive keyboard input.
type KeySink struct {
	widget.BaseWidget
	Content        fyne.CanvasObject
	km             *keymanager.KeyManager
	acceptTab      bool
	onFocusChanged func(focused bool)
}

// KeySinkOption customizes KeySink behavior.
type KeySinkOption func(*KeySink)

// WithTabCapture toggles Tab key capture for focus traversal suppression.
func WithTabCapture(on bool) KeySinkOption { return func(k *KeySink) { k.acceptTab = on } }

// WithFocusChanged installs a callback fired when the sink gains or loses
// keyboard focus, letting the owner push and pop its key handler in step
// with focus ownership.
func WithFocusChanged(cb func(focused bool)) KeySinkOption {
	return func(k *KeySink) { k.onFocusChanged = cb }
}

// NewKeySink creates a new KeySink wrapping the given content.
// By default, Tab is captured (acceptTab=true).
func NewKeySink(content fyne.CanvasObject, km *keymanager.KeyManager, opts ...KeySinkOption) *KeySink {
	k := &KeySink{
		Content:   content,
		km:        km,
		acceptTab: true,
	}
	for _, o := range opts {
		o(k)
	}
	k.ExtendBaseWidget(k)
	return k
}

// CreateRenderer delegates rendering to the underlying content.
func (k *KeySink) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(k.Content)
}

// FocusGained implements fyne.Focusable.
func (k *KeySink) FocusGained() {
	if k.onFocusChanged != nil {
		k.onFocusChanged(true)
	}
}

// FocusLost implements fyne.Focusable.
func (k *KeySink) FocusLost() {
	if k.onFocusChanged != nil {
		k.onFocusChanged(false)
	}
}

// TypedKey forwards typed key events to KeyManager.
func (k *KeySink) TypedKey(ev *fyne.KeyEvent) {
	if k.km != nil {
		k.km.HandleTypedKey(ev)
	}
}

// TypedRune forwards typed runes to KeyManager.
func (k *KeySink) TypedRune(r rune) {
	if k.km != nil {
		k.km.HandleTypedRune(r)
	}
}

// AcceptsTab indicates whether to capture Tab, preventing focus traversal.
func (k *KeySink) AcceptsTab() bool { return k.acceptTab }

package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/test"

	"keycap/internal/capture"
	"keycap/internal/config"
)

// postQueue stands in for the UI task queue so tests control when the
// deferred session finish runs.
type postQueue struct {
	tasks []func()
}

func (q *postQueue) post(f func()) {
	q.tasks = append(q.tasks, f)
}

func (q *postQueue) drain() {
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		task()
	}
}

func testStyle() config.CaptureStyleConfig {
	return config.CaptureStyleConfig{
		BorderThickness: 2,
		ListeningColor:  [4]uint8{64, 128, 255, 255},
		ErrorColor:      [4]uint8{220, 64, 64, 255},
	}
}

type buttonFixture struct {
	button   *CaptureButton
	value    binding.String
	queue    *postQueue
	window   fyne.Window
	finished int
}

func newButtonFixture(t *testing.T, initial string) *buttonFixture {
	t.Helper()
	test.NewApp()

	f := &buttonFixture{value: binding.NewString(), queue: &postQueue{}}
	if initial != "" {
		if err := f.value.Set(initial); err != nil {
			t.Fatalf("Failed to set initial value: %v", err)
		}
	}
	f.button = NewCaptureButton(f.value, testStyle(), func() { f.finished++ }, nil)
	f.button.post = f.queue.post

	f.window = test.NewWindow(f.button)
	f.window.Resize(fyne.NewSize(200, 100))
	t.Cleanup(f.window.Close)
	return f
}

func (f *buttonFixture) currentValue(t *testing.T) string {
	t.Helper()
	v, err := f.value.Get()
	if err != nil {
		t.Fatalf("Failed to read bound value: %v", err)
	}
	return v
}

func TestTapStartsListeningAndTakesFocus(t *testing.T) {
	f := newButtonFixture(t, "a")

	test.Tap(f.button)

	if !f.button.Listening() {
		t.Error("Expected button to be listening after tap")
	}
	if f.window.Canvas().Focused() != fyne.Focusable(f.button) {
		t.Error("Expected button to hold keyboard focus while listening")
	}
	if f.finished != 0 {
		t.Errorf("Expected no notification yet, got %d", f.finished)
	}
}

func TestEscapeRestoresPreListenValue(t *testing.T) {
	f := newButtonFixture(t, "a")

	test.Tap(f.button)
	f.button.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	f.queue.drain()

	if got := f.currentValue(t); got != "a" {
		t.Errorf("Expected value 'a' after cancel, got %q", got)
	}
	if f.button.Listening() {
		t.Error("Expected button idle after cancel")
	}
	if f.finished != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", f.finished)
	}
}

func TestDeleteClearsValue(t *testing.T) {
	testCases := []struct {
		name string
		key  fyne.KeyName
	}{
		{"delete key", fyne.KeyDelete},
		{"backspace key", fyne.KeyBackspace},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newButtonFixture(t, "a")

			test.Tap(f.button)
			f.button.TypedKey(&fyne.KeyEvent{Name: tc.key})
			f.queue.drain()

			if got := f.currentValue(t); got != "" {
				t.Errorf("Expected empty value after clear, got %q", got)
			}
			if f.finished != 1 {
				t.Errorf("Expected exactly 1 notification, got %d", f.finished)
			}
		})
	}
}

func TestTypedRuneCommitsKey(t *testing.T) {
	f := newButtonFixture(t, "")

	test.Tap(f.button)
	f.button.TypedRune('b')
	f.queue.drain()

	if got := f.currentValue(t); got != "b" {
		t.Errorf("Expected value 'b' after commit, got %q", got)
	}
	if f.button.Listening() {
		t.Error("Expected button idle after commit")
	}
	if f.finished != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", f.finished)
	}
}

func TestFocusLossEndsSessionWithoutChange(t *testing.T) {
	f := newButtonFixture(t, "a")

	test.Tap(f.button)
	f.window.Canvas().Unfocus()
	f.queue.drain()

	if got := f.currentValue(t); got != "a" {
		t.Errorf("Expected value unchanged after focus loss, got %q", got)
	}
	if f.button.Listening() {
		t.Error("Expected button idle after focus loss")
	}
	if f.finished != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", f.finished)
	}
}

func TestCommitReleasesFocusWithoutSecondNotification(t *testing.T) {
	f := newButtonFixture(t, "")

	test.Tap(f.button)
	f.button.TypedRune('b')
	// The finish task unfocuses the button; the resulting FocusLost must not
	// count as another session end.
	f.queue.drain()

	if f.window.Canvas().Focused() == fyne.Focusable(f.button) {
		t.Error("Expected button to give up focus after the session ended")
	}
	if f.finished != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", f.finished)
	}
}

func TestNamedKeyWithoutCharacterIsIgnored(t *testing.T) {
	f := newButtonFixture(t, "a")

	test.Tap(f.button)
	f.button.TypedKey(&fyne.KeyEvent{Name: fyne.KeyF5})
	f.queue.drain()

	if !f.button.Listening() {
		t.Error("Expected button to keep listening after a key with no character payload")
	}
	if got := f.currentValue(t); got != "a" {
		t.Errorf("Expected value unchanged, got %q", got)
	}
	if f.finished != 0 {
		t.Errorf("Expected no notification, got %d", f.finished)
	}
}

func TestKeysIgnoredWhileIdle(t *testing.T) {
	f := newButtonFixture(t, "a")

	f.button.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	f.button.TypedRune('b')

	if got := f.currentValue(t); got != "a" {
		t.Errorf("Expected idle button to ignore keys, got %q", got)
	}
	if f.finished != 0 {
		t.Errorf("Expected no notification, got %d", f.finished)
	}
}

func TestStylingPrecedence(t *testing.T) {
	f := newButtonFixture(t, "a")
	renderer, ok := test.WidgetRenderer(f.button).(*captureButtonRenderer)
	if !ok {
		t.Fatal("Unexpected renderer type")
	}
	style := testStyle()

	// Idle with a validation error shows the error border
	f.button.SetValidationError(capture.ValidationDuplicateKey)
	if renderer.background.StrokeColor != rgbaColor(style.ErrorColor) {
		t.Errorf("Expected error border while idle, got %v", renderer.background.StrokeColor)
	}

	// Listening wins over the validation error
	test.Tap(f.button)
	if renderer.background.StrokeColor != rgbaColor(style.ListeningColor) {
		t.Errorf("Expected listening border to win over error, got %v", renderer.background.StrokeColor)
	}

	// Back to idle the error styling returns
	f.button.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	f.queue.drain()
	if renderer.background.StrokeColor != rgbaColor(style.ErrorColor) {
		t.Errorf("Expected error border after session end, got %v", renderer.background.StrokeColor)
	}

	// Clearing the error restores the idle border
	f.button.SetValidationError(capture.ValidationNone)
	if renderer.background.StrokeColor == rgbaColor(style.ErrorColor) {
		t.Error("Expected idle border after validation cleared")
	}
}

func TestPlaceholderShownWhenEmpty(t *testing.T) {
	f := newButtonFixture(t, "")
	f.button.PlaceHolder = "unset"
	f.button.Refresh()

	renderer, ok := test.WidgetRenderer(f.button).(*captureButtonRenderer)
	if !ok {
		t.Fatal("Unexpected renderer type")
	}
	if renderer.label.Text != "unset" {
		t.Errorf("Expected placeholder text 'unset', got %q", renderer.label.Text)
	}

	if err := f.value.Set("x"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	f.button.Refresh()
	if renderer.label.Text != "x" {
		t.Errorf("Expected captured key text 'x', got %q", renderer.label.Text)
	}
}

func TestTabCapturedOnlyWhileListening(t *testing.T) {
	f := newButtonFixture(t, "")

	if f.button.AcceptsTab() {
		t.Error("Expected Tab traversal to work while idle")
	}
	test.Tap(f.button)
	if !f.button.AcceptsTab() {
		t.Error("Expected Tab to be captured while listening")
	}
}

func TestTapWithoutCanvasDegradesQuietly(t *testing.T) {
	test.NewApp()

	queue := &postQueue{}
	value := binding.NewString()
	finished := 0
	button := NewCaptureButton(value, testStyle(), func() { finished++ }, nil)
	button.post = queue.post

	// Never attached to a window: focus acquisition fails, the button stays
	// visually listening and no notification fires.
	button.Tapped(&fyne.PointEvent{})

	if !button.Listening() {
		t.Error("Expected button to stay listening without a canvas")
	}
	if finished != 0 {
		t.Errorf("Expected no notification, got %d", finished)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"keycap/internal/capture"
	"keycap/internal/config"
	"keycap/internal/constants"
	apperrors "keycap/internal/errors"
	"keycap/internal/keymanager"
	"keycap/internal/shortcuts"
	customtheme "keycap/internal/theme"
	"keycap/internal/ui"
	"keycap/internal/watcher"
)

// Global debug flag
var debugMode bool

// debugPrint prints debug messages only when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

// ShortcutEditor is the main application struct
type ShortcutEditor struct {
	window        fyne.Window
	config        *config.Config
	configManager *config.Manager
	keyManager    *keymanager.KeyManager
	set           *shortcuts.Set
	buttons       map[string]*ui.CaptureButton
	statusLabel   *widget.Label
	tryoutLabel   *widget.Label
	tryoutSink    *ui.KeySink
	tryoutHandler *keymanager.TryoutKeyHandler
	quitDialog    *ui.QuitConfirmDialog
	configWatcher *watcher.ConfigWatcher
}

// defaultDefinitions returns the editable actions shown in the form
func defaultDefinitions() []shortcuts.Definition {
	return []shortcuts.Definition{
		{ID: "up", Label: "Move up", Required: true, Default: "k"},
		{ID: "down", Label: "Move down", Required: true, Default: "j"},
		{ID: "refresh", Label: "Refresh", Required: true, Default: "r"},
		{ID: "quit", Label: "Quit", Required: false, Default: ""},
	}
}

// NewShortcutEditor creates the editor window and its widgets
func NewShortcutEditor(app fyne.App, config *config.Config, configManager *config.Manager) *ShortcutEditor {
	se := &ShortcutEditor{
		window:        app.NewWindow(constants.ApplicationTitle),
		config:        config,
		configManager: configManager,
		keyManager:    keymanager.NewKeyManager(debugPrint),
		set:           shortcuts.NewSet(defaultDefinitions()),
		buttons:       make(map[string]*ui.CaptureButton),
	}
	se.tryoutHandler = keymanager.NewTryoutKeyHandler(se, debugPrint)
	se.quitDialog = ui.NewQuitConfirmDialog(se.keyManager, debugPrint)

	se.window.SetContent(se.buildUI())
	se.window.Resize(fyne.NewSize(float32(config.Window.Width), float32(config.Window.Height)))

	// Paint the initial validation state
	se.revalidate()

	// Pick up style edits to the config file while running
	se.configWatcher = watcher.NewConfigWatcher(configManager, configManager.Path(), se.applyConfig, debugPrint)
	se.configWatcher.Start()

	// Confirm quitting while the shortcut set still has problems
	se.window.SetCloseIntercept(func() {
		if se.set.Valid() {
			se.shutdown()
			return
		}
		debugPrint("Editor: Close intercepted, shortcut set has problems")
		se.quitDialog.ShowDialog(se.window, func(confirmed bool) {
			if confirmed {
				se.shutdown()
			}
		})
	})

	return se
}

// buildUI assembles the shortcut form and the try-out area
func (se *ShortcutEditor) buildUI() fyne.CanvasObject {
	form := container.New(layout.NewFormLayout())
	for _, item := range se.set.Items() {
		button := ui.NewCaptureButton(item.Value, se.config.UI.Capture, se.revalidate, debugPrint)
		button.PlaceHolder = se.config.UI.Placeholder
		se.buttons[item.ID] = button

		form.Add(widget.NewLabel(item.Label))
		// Keep the button at its natural size instead of stretching
		form.Add(container.NewHBox(button, layout.NewSpacer()))
	}

	se.statusLabel = widget.NewLabel("")

	se.tryoutLabel = widget.NewLabel("Tap below to test your keys")
	se.tryoutLabel.Alignment = fyne.TextAlignCenter
	se.tryoutSink = ui.NewKeySink(se.tryoutLabel, se.keyManager,
		ui.WithTabCapture(false),
		ui.WithFocusChanged(se.tryoutFocusChanged),
	)
	tryoutButton := widget.NewButton("Try keys", func() {
		se.window.Canvas().Focus(se.tryoutSink)
	})

	return container.NewVBox(
		form,
		widget.NewSeparator(),
		se.statusLabel,
		widget.NewSeparator(),
		tryoutButton,
		se.tryoutSink,
	)
}

// revalidate recomputes validation for every action and pushes the result
// into the capture buttons. Runs after every finished capture session.
func (se *ShortcutEditor) revalidate() {
	problems := 0
	for id, kind := range se.set.Validate() {
		if button, ok := se.buttons[id]; ok {
			button.SetValidationError(kind)
		}
		if kind != capture.ValidationNone {
			problems++
		}
	}

	if problems == 0 {
		se.statusLabel.SetText("All actions are ready")
	} else {
		se.statusLabel.SetText(fmt.Sprintf("%d action(s) need attention", problems))
	}
	debugPrint("Editor: Revalidated, %d problem(s)", problems)
}

// applyConfig pushes a freshly reloaded configuration into the widgets.
// Runs on the UI thread. Window geometry and theme need a restart; only the
// control styling is applied live.
func (se *ShortcutEditor) applyConfig(newConfig *config.Config) {
	se.config.UI = newConfig.UI
	for _, button := range se.buttons {
		button.PlaceHolder = newConfig.UI.Placeholder
		button.SetStyle(newConfig.UI.Capture)
	}
	debugPrint("Editor: Applied reloaded configuration")
}

// tryoutFocusChanged keeps the try-out key handler in step with sink focus
func (se *ShortcutEditor) tryoutFocusChanged(focused bool) {
	if focused {
		se.keyManager.PushHandler(se.tryoutHandler)
		se.tryoutLabel.SetText("Press a key, Escape to stop")
		return
	}
	// Only pop our own handler; a dialog may already have pushed its own
	if se.keyManager.GetCurrentHandler() == keymanager.KeyHandler(se.tryoutHandler) {
		se.keyManager.PopHandler()
	}
	se.tryoutLabel.SetText("Tap below to test your keys")
}

// TryoutView implementation

// ReportKey shows which action the typed character triggers
func (se *ShortcutEditor) ReportKey(r rune) {
	if item, ok := se.set.Match(r); ok {
		se.tryoutLabel.SetText(fmt.Sprintf("%q triggers %s", r, item.Label))
	} else {
		se.tryoutLabel.SetText(fmt.Sprintf("%q is not assigned", r))
	}
}

// CloseTryout leaves try-out mode
func (se *ShortcutEditor) CloseTryout() {
	se.window.Canvas().Unfocus()
}

// shutdown persists window geometry and quits. Captured key values are
// deliberately not saved.
func (se *ShortcutEditor) shutdown() {
	if se.configWatcher != nil {
		se.configWatcher.Stop()
	}

	size := se.window.Canvas().Size()
	se.config.Window.Width = int(size.Width)
	se.config.Window.Height = int(size.Height)

	if err := se.configManager.Save(se.config); err != nil {
		log.Printf("Error saving configuration: %v",
			apperrors.NewConfigError("save_config", "could not persist settings", err))
	}

	fyne.CurrentApp().Quit()
}

func main() {
	flag.BoolVar(&debugMode, "d", false, "Enable debug mode")
	flag.Parse()

	// Load configuration
	configManager := config.NewManager()
	config, err := configManager.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	app := app.New()

	// Apply custom theme
	customTheme := customtheme.NewCustomTheme(config)
	app.Settings().SetTheme(customTheme)

	se := NewShortcutEditor(app, config, configManager)
	se.window.ShowAndRun()
}

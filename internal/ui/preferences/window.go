package preferences

import (
	"context"
	"errors"

	"phasewatch/internal/core/chord"
	"phasewatch/internal/core/model"
	"phasewatch/internal/i18n"
	"phasewatch/internal/logs"
	"phasewatch/internal/ui/keys"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

type timerRow struct {
	initial   *widget.Entry
	red       *widget.Entry
	autoReset *widget.Check
}

// Window handles the settings UI: timer values, hotkey recording and the
// button that opens the overlay.
type Window struct {
	window  fyne.Window
	config  model.Config
	onStart func(model.Config)
	logger  *logrus.Logger

	timers  map[model.TimerName]*timerRow
	hotkeys map[model.Action]*widget.Entry
	records []*widget.Button
	start   *widget.Button
	status  *widget.Label

	keys    *chord.Broadcaster
	capture *chord.Capture
}

// New creates a settings window. onStart receives the edited config when
// the user opens the overlay.
func New(app fyne.App, config model.Config, onStart func(model.Config), logger *logrus.Logger) *Window {
	if logger == nil {
		logger = logs.Discard()
	}
	window := app.NewWindow("Phasewatch " + i18n.T("Settings"))

	prefs := &Window{
		window:  window,
		config:  config.Clone(),
		onStart: onStart,
		logger:  logger,
		timers:  make(map[model.TimerName]*timerRow, len(model.TimerNames)),
		hotkeys: make(map[model.Action]*widget.Entry, len(model.Actions)),
		status:  widget.NewLabel(""),
		keys:    chord.NewBroadcaster(),
	}
	prefs.capture = chord.NewCapture(prefs.keys, logger)

	timerGrid := container.NewGridWithColumns(4,
		widget.NewLabel(""),
		widget.NewLabelWithStyle(i18n.T("Initial"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(i18n.T("Red at"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(i18n.T("Auto reset"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, name := range model.TimerNames {
		row := &timerRow{
			initial:   widget.NewEntry(),
			red:       widget.NewEntry(),
			autoReset: widget.NewCheck("", nil),
		}
		prefs.timers[name] = row
		timerGrid.Add(widget.NewLabel(i18n.T(string(name))))
		timerGrid.Add(row.initial)
		timerGrid.Add(row.red)
		timerGrid.Add(row.autoReset)
	}

	hotkeyGrid := container.NewGridWithColumns(3)
	for _, action := range model.Actions {
		action := action
		entry := widget.NewEntry()
		prefs.hotkeys[action] = entry
		record := widget.NewButton(i18n.T("Record"), nil)
		record.OnTapped = func() { prefs.record(action) }
		prefs.records = append(prefs.records, record)
		hotkeyGrid.Add(widget.NewLabel(i18n.T(action.Label())))
		hotkeyGrid.Add(entry)
		hotkeyGrid.Add(record)
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Timers"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		timerGrid,
		widget.NewLabelWithStyle(i18n.T("Hotkeys"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		hotkeyGrid,
	)

	prefs.start = widget.NewButton(i18n.T("Start Overlay"), prefs.handleStart)
	prefs.start.Importance = widget.HighImportance
	buttons := container.NewHBox(prefs.status, layout.NewSpacer(), prefs.start)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(560, 640))
	window.SetCloseIntercept(prefs.Hide)
	if !keys.Attach(window.Canvas(), prefs.keys) {
		logger.Warn("settings canvas does not deliver key events, hotkey recording disabled")
	}

	prefs.fill(prefs.config)
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide cancels pending recordings and hides the window.
func (prefs *Window) Hide() {
	prefs.capture.CancelAll()
	prefs.window.Hide()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config.Clone()
	prefs.fill(prefs.config)
}

func (prefs *Window) fill(config model.Config) {
	for name, row := range prefs.timers {
		form := FormForTimer(config.Timers[name])
		row.initial.SetText(form.Initial)
		row.red.SetText(form.Red)
		row.autoReset.SetChecked(form.AutoReset)
	}
	for action, entry := range prefs.hotkeys {
		entry.SetText(config.Hotkeys[action])
	}
	prefs.status.SetText("")
}

// record starts a capture session for action and writes the chord into
// its entry once the user presses it.
func (prefs *Window) record(action model.Action) {
	entry := prefs.hotkeys[action]
	previous := entry.Text
	entry.SetText(i18n.T("Press keys…"))
	prefs.setRecording(true)
	prefs.window.Canvas().Unfocus()

	id := prefs.capture.Start()
	go func() {
		value, err := prefs.capture.Wait(context.Background(), id)
		fyne.Do(func() {
			prefs.setRecording(false)
			if err != nil {
				if !errors.Is(err, chord.ErrCancelled) {
					prefs.logger.Warnf("record hotkey for %s: %v", action, err)
				}
				entry.SetText(previous)
				return
			}
			entry.SetText(value)
		})
	}()
}

func (prefs *Window) setRecording(recording bool) {
	for _, button := range append(prefs.records, prefs.start) {
		if recording {
			button.Disable()
		} else {
			button.Enable()
		}
	}
}

func (prefs *Window) handleStart() {
	forms := make(map[model.TimerName]TimerForm, len(prefs.timers))
	for name, row := range prefs.timers {
		forms[name] = TimerForm{Initial: row.initial.Text, Red: row.red.Text, AutoReset: row.autoReset.Checked}
	}
	hotkeys := make(map[model.Action]string, len(prefs.hotkeys))
	for action, entry := range prefs.hotkeys {
		hotkeys[action] = entry.Text
	}

	config, err := Apply(prefs.config, forms, hotkeys)
	if err != nil {
		prefs.logger.Warnf("settings rejected: %v", err)
		prefs.status.SetText(i18n.T("Invalid value") + ": " + err.Error())
		return
	}
	prefs.config = config
	prefs.Hide()
	if prefs.onStart != nil {
		prefs.onStart(config.Clone())
	}
}

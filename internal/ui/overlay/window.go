package overlay

import (
	"context"
	"image/color"

	"phasewatch/internal/core/chord"
	"phasewatch/internal/core/countdown"
	"phasewatch/internal/core/encounter"
	"phasewatch/internal/core/model"
	"phasewatch/internal/i18n"
	"phasewatch/internal/ui/animation"
	"phasewatch/internal/ui/keys"
	"phasewatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// Config defines overlay visuals.
type Config struct {
	Opacity  float64
	Capacity int
}

type timerCell struct {
	caption *canvas.Text
	value   *canvas.Text
}

// Window renders an encounter event stream.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	phaseLabel *canvas.Text
	cells      map[model.TimerName]*timerCell
	dots       []*canvas.Image
	slots      []bool
	flash      *animation.Engine
	keys       *chord.Broadcaster
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden overlay window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Phasewatch")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	overlay := &Window{
		window:     window,
		config:     config,
		background: canvas.NewRectangle(color.NRGBA{R: 20, G: 22, B: 28, A: OpacityToAlpha(config.Opacity)}),
		cells:      make(map[model.TimerName]*timerCell, len(model.TimerNames)),
		slots:      make([]bool, config.Capacity),
		keys:       chord.NewBroadcaster(),
	}

	overlay.phaseLabel = canvas.NewText(PhaseLabel(0), color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	overlay.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	overlay.phaseLabel.TextSize = 22
	overlay.phaseLabel.Alignment = fyne.TextAlignCenter

	for _, name := range model.TimerNames {
		overlay.cells[name] = newTimerCell(name)
	}
	for index := 0; index < config.Capacity; index++ {
		dot := canvas.NewImageFromResource(resources.MustIcon(resources.DeviceOff))
		dot.FillMode = canvas.ImageFillContain
		dot.SetMinSize(fyne.NewSize(18, 18))
		overlay.dots = append(overlay.dots, dot)
	}
	overlay.flash = animation.New(animation.DefaultConfig(), func(lit bool) {
		fyne.Do(func() { overlay.renderFlash(lit) })
	})

	window.SetContent(container.NewStack(overlay.background, container.NewPadded(overlay.layout())))
	window.Resize(fyne.NewSize(400, 335))
	keys.Attach(window.Canvas(), overlay.keys)
	return overlay
}

func newTimerCell(name model.TimerName) *timerCell {
	caption := canvas.NewText(i18n.T(string(name)), color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	caption.TextSize = 13
	caption.Alignment = fyne.TextAlignCenter

	value := canvas.NewText("--", idleColor)
	value.TextSize = 36
	value.TextStyle = fyne.TextStyle{Bold: true}
	value.Alignment = fyne.TextAlignCenter
	return &timerCell{caption: caption, value: value}
}

func (cell *timerCell) object() fyne.CanvasObject {
	return container.NewVBox(cell.caption, cell.value)
}

func (overlay *Window) layout() fyne.CanvasObject {
	dots := make([]fyne.CanvasObject, 0, len(overlay.dots)+2)
	dots = append(dots, layout.NewSpacer())
	for _, dot := range overlay.dots {
		dots = append(dots, dot)
	}
	dots = append(dots, layout.NewSpacer())

	device := container.NewVBox(overlay.cells[model.TimerDevice].object(), container.NewHBox(dots...))
	small := container.NewGridWithRows(2,
		overlay.cells[model.TimerLaser].object(),
		overlay.cells[model.TimerArrow].object(),
	)
	return container.NewVBox(
		overlay.phaseLabel,
		container.NewGridWithColumns(2, device, small),
		container.NewGridWithColumns(2, overlay.cells[model.TimerFMA].object(), overlay.cells[model.TimerBreath].object()),
		container.NewGridWithColumns(2, overlay.cells[model.TimerBomb].object(), overlay.cells[model.TimerDive].object()),
	)
}

// KeySource returns the raw key events of the overlay canvas.
func (overlay *Window) KeySource() chord.Source {
	return overlay.keys
}

// SetOnClose runs handler when the user closes the window.
func (overlay *Window) SetOnClose(handler func()) {
	overlay.window.SetCloseIntercept(handler)
}

// Show displays the overlay.
func (overlay *Window) Show() {
	overlay.applyNativeOpacity(OpacityToAlpha(overlay.config.Opacity))
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide closes the overlay and stops the flash.
func (overlay *Window) Hide() {
	overlay.flash.Stop()
	overlay.window.Hide()
}

// Close stops the flash and destroys the window.
func (overlay *Window) Close() {
	overlay.flash.Stop()
	overlay.window.Close()
}

// Follow renders snapshot and then every event until the stream closes.
// It must be called from the UI goroutine.
func (overlay *Window) Follow(snapshot encounter.Snapshot, events <-chan encounter.Event) {
	overlay.applySnapshot(snapshot)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() { overlay.Apply(event) })
		}
	}()
}

// Apply renders a single event. It must be called from the UI goroutine.
func (overlay *Window) Apply(event encounter.Event) {
	switch event.Type {
	case encounter.EventTimer:
		overlay.setReading(event.Timer, event.Reading)
	case encounter.EventDevices:
		overlay.setSlots(event.Slots)
	case encounter.EventPhase:
		overlay.phaseLabel.Text = PhaseLabel(event.Phase)
		overlay.phaseLabel.Refresh()
	case encounter.EventCapacity:
		if event.Full {
			overlay.flash.Start(context.Background())
		} else {
			overlay.flash.Stop()
		}
	case encounter.EventClosed:
		overlay.Hide()
	}
}

func (overlay *Window) applySnapshot(snapshot encounter.Snapshot) {
	for name, reading := range snapshot.Timers {
		overlay.setReading(name, reading)
	}
	overlay.setSlots(snapshot.Slots)
	overlay.phaseLabel.Text = PhaseLabel(snapshot.Phase)
	overlay.phaseLabel.Refresh()
}

func (overlay *Window) setReading(name model.TimerName, reading countdown.Reading) {
	cell, ok := overlay.cells[name]
	if !ok {
		return
	}
	cell.value.Text = FormatReading(reading)
	cell.value.Color = ReadingColor(reading)
	cell.value.Refresh()
}

func (overlay *Window) setSlots(slots []bool) {
	overlay.slots = append(overlay.slots[:0], slots...)
	overlay.renderFlash(false)
}

func (overlay *Window) renderFlash(lit bool) {
	for index, dot := range overlay.dots {
		active := index < len(overlay.slots) && overlay.slots[index]
		switch {
		case lit && active:
			dot.Resource = resources.MustIcon(resources.DeviceAlert)
		case active:
			dot.Resource = resources.MustIcon(resources.DeviceOn)
		default:
			dot.Resource = resources.MustIcon(resources.DeviceOff)
		}
		dot.Refresh()
	}
}

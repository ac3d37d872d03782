package tray

import (
	"fmt"

	"phasewatch/internal/core/model"
	"phasewatch/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings func()
	OnAction   func(model.Action)
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	actionItems []*fyne.MenuItem
	callbacks   Callbacks
	active      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. Action items
// stay disabled until SetActive(true).
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "Phasewatch",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	for _, action := range model.Actions {
		action := action
		item := fyne.NewMenuItem(i18n.T(action.Label()), func() {
			if manager.callbacks.OnAction != nil {
				manager.callbacks.OnAction(action)
			}
		})
		item.Disabled = true
		manager.actionItems = append(manager.actionItems, item)
	}

	manager.refreshStatus()
	return manager
}

// StatusLabel formats the encounter summary shown at the top of the menu.
func StatusLabel(phase, devices, capacity int) string {
	return fmt.Sprintf("%s 2-%d · %s %d/%d", i18n.T("Phase"), phase+1, i18n.T("Devices"), devices, capacity)
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetActive enables or disables the action items.
func (manager *Manager) SetActive(active bool) {
	manager.active = active
	for _, item := range manager.actionItems {
		item.Disabled = !active
	}
	manager.refreshMenu()
}

// Active reports whether an overlay is running.
func (manager *Manager) Active() bool {
	return manager.active
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = manager.statusLabel
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	items := []*fyne.MenuItem{manager.statusItem, fyne.NewMenuItemSeparator()}
	items = append(items, manager.actionItems...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Settings"), func() {
			if manager.callbacks.OnSettings != nil {
				manager.callbacks.OnSettings()
			}
		}),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Phasewatch", items...))
}

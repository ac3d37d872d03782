package main

import (
	"context"
	"errors"

	"phasewatch/internal/audio"
	"phasewatch/internal/core/encounter"
	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/core/loop"
	"phasewatch/internal/core/model"
	"phasewatch/internal/i18n"
	"phasewatch/internal/logs"
	"phasewatch/internal/platform"
	"phasewatch/internal/platform/globalkeys"
	"phasewatch/internal/storage"
	"phasewatch/internal/ui/overlay"
	"phasewatch/internal/ui/preferences"
	"phasewatch/internal/ui/tray"
	"phasewatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appName = "Phasewatch"

func main() {
	logger := logs.NewLogger("main")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running, activated it")
			return
		}
		logger.WithError(err).Error("single instance")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, configPath, err := storage.Load(appName)
	if err != nil {
		logger.WithError(err).Warnf("config %s rejected, using defaults", configPath)
		config = model.DefaultConfig()
	}
	if err := logs.SetLevel(config.LogLevel); err != nil {
		logger.WithError(err).Warn("log level")
	}
	logger = logs.NewLogger("main")
	i18n.SetLang(i18n.Detect(config.Language))
	logger.Infof("config %s, language %s", configPath, i18n.Lang())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core := loop.New(64, logs.NewLogger("loop"))
	go core.Run(ctx)

	var alerter encounter.Alerter
	if config.Sound {
		player, err := audio.NewPlayer(logs.NewLogger("audio"))
		if err != nil {
			logger.WithError(err).Warn("alert tone")
		} else if err := player.Init(); err != nil {
			logger.WithError(err).Warn("audio output unavailable")
		} else {
			alerter = player
		}
	}

	fyneApp := app.NewWithID("com.phasewatch.app")
	fyneApp.SetIcon(resources.MustIcon(resources.Logo))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Phasewatch is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	registry := hotkey.NewRegistry(logs.NewLogger("hotkeys"))
	focused := hotkey.NewRegistry(logs.NewLogger("hotkeys"))
	global := globalkeys.NewManager(logs.NewLogger("globalkeys"))

	var (
		trayManager *tray.Manager
		prefsWindow *preferences.Window
	)

	// Every sessions method runs on the UI goroutine.
	tracker := &sessions{
		releaseShared: func() {
			global.UnregisterAll()
			registry.UnbindAll()
			focused.UnbindAll()
		},
		onIdle: func() {
			trayManager.SetActive(false)
			trayManager.SetStatus(appName)
		},
	}

	startSession := func(updated model.Config) {
		if previous := tracker.current; previous != nil {
			core.Do(previous.coordinator.Stop)
			tracker.end(previous)
		}
		config = updated

		s := &session{
			window: overlay.New(fyneApp, overlay.Config{Opacity: config.Opacity, Capacity: config.DeviceCapacity}),
		}
		s.release = func() {
			if s.listener != nil {
				s.listener.Detach()
			}
			s.window.Close()
		}
		var buildErr error
		core.Do(func() {
			s.coordinator, buildErr = encounter.New(config, core, encounter.Options{
				Logger:  logs.NewLogger("encounter"),
				Alerter: alerter,
				OnClose: func() {
					fyne.Do(func() { tracker.end(s) })
				},
			})
			if buildErr == nil {
				buildErr = s.coordinator.BindHotkeys(registry)
			}
		})
		if buildErr != nil {
			logger.WithError(buildErr).Error("start overlay")
			if s.coordinator != nil {
				core.Do(s.coordinator.Stop)
			}
			s.release()
			registry.UnbindAll()
			prefsWindow.Show()
			return
		}

		dispatch := func(value string) {
			core.Post(func() { registry.Dispatch(value) })
		}
		chords := registry.Chords()
		registered := global.RegisterAll(chords, dispatch)
		for _, value := range missing(chords, registered) {
			value := value
			if err := focused.Bind(value, func() { registry.Dispatch(value) }); err != nil {
				logger.WithError(err).Warnf("focused hotkey %s", value)
			}
		}
		s.listener = hotkey.NewListener(focused, core.Post)
		s.listener.Attach(s.window.KeySource())

		s.window.SetOnClose(func() {
			core.Post(s.coordinator.Close)
		})
		s.window.Follow(s.coordinator.Snapshot(), s.coordinator.Subscribe(128))
		go followStatus(s.coordinator.Subscribe(32), config.DeviceCapacity, trayManager)

		tracker.activate(s)
		trayManager.SetActive(true)
		trayManager.SetStatus(tray.StatusLabel(0, 0, config.DeviceCapacity))
		s.window.Show()
		logger.Infof("overlay started, %d global and %d focused hotkeys", len(registered), len(chords)-len(registered))
	}

	prefsWindow = preferences.New(fyneApp, config, startSession, logs.NewLogger("settings"))

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnSettings: func() {
			prefsWindow.UpdateConfig(config)
			prefsWindow.Show()
		},
		OnAction: func(action model.Action) {
			if tracker.current == nil {
				return
			}
			handler, err := tracker.current.coordinator.Handler(action)
			if err != nil {
				logger.WithError(err).Warn("tray action")
				return
			}
			core.Post(handler)
		},
		OnQuit: func() {
			if active := tracker.current; active != nil {
				core.Do(active.coordinator.Stop)
				tracker.end(active)
			}
			cancel()
			fyneApp.Quit()
		},
	})
	trayManager.SetStatus(appName)
	desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.Logo))

	guard.Serve(func() {
		fyne.Do(prefsWindow.Show)
	})

	prefsWindow.Show()
	fyneApp.Run()
}

// followStatus mirrors phase and device count into the tray until events closes.
func followStatus(events <-chan encounter.Event, capacity int, trayManager *tray.Manager) {
	phase, devices := 0, 0
	for event := range events {
		switch event.Type {
		case encounter.EventPhase:
			phase = event.Phase
		case encounter.EventDevices:
			devices = 0
			for _, active := range event.Slots {
				if active {
					devices++
				}
			}
		default:
			continue
		}
		label := tray.StatusLabel(phase, devices, capacity)
		fyne.Do(func() { trayManager.SetStatus(label) })
	}
}

func missing(all, registered []string) []string {
	found := make(map[string]bool, len(registered))
	for _, value := range registered {
		found[value] = true
	}
	var rest []string
	for _, value := range all {
		if !found[value] {
			rest = append(rest, value)
		}
	}
	return rest
}

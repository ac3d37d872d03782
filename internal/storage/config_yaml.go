package storage

import (
	"errors"
	"fmt"
	"os"

	"phasewatch/internal/core/model"
	"phasewatch/internal/platform"

	"gopkg.in/yaml.v3"
)

type yamlTimer struct {
	Initial      []int `yaml:"initial"`
	Red          *int  `yaml:"red"`
	AutoReset    *bool `yaml:"auto_reset"`
	PhaseIndexed *bool `yaml:"phase_indexed"`
}

type yamlConfig struct {
	LogLevel       string               `yaml:"log_level"`
	Language       string               `yaml:"language"`
	Sound          *bool                `yaml:"sound"`
	Opacity        float64              `yaml:"opacity"`
	CheckBonus     *int                 `yaml:"check_bonus"`
	DeviceCapacity int                  `yaml:"device_capacity"`
	WarningSeconds int                  `yaml:"warning_seconds"`
	StartTimers    []string             `yaml:"start_timers"`
	CheckTimers    []string             `yaml:"check_timers"`
	Timers         map[string]yamlTimer `yaml:"timers"`
	Hotkeys        map[string]string    `yaml:"hotkeys"`
}

// Load reads the config of appName from its standard location.
// If the config file does not exist, the default config is returned.
func Load(appName string) (model.Config, string, error) {
	configPath, err := platform.ConfigPath(appName)
	if err != nil {
		return model.DefaultConfig(), "", err
	}
	config, err := LoadFile(configPath)
	return config, configPath, err
}

// LoadFile reads an encounter config from a YAML file over the defaults.
func LoadFile(configPath string) (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}
	return Parse(rawData)
}

// Parse decodes YAML config data over the defaults and validates the result.
func Parse(rawData []byte) (model.Config, error) {
	config := model.DefaultConfig()

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := applyYamlConfig(&config, fileData); err != nil {
		return model.DefaultConfig(), err
	}
	if err := config.Validate(); err != nil {
		return model.DefaultConfig(), fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

func applyYamlConfig(config *model.Config, fileData yamlConfig) error {
	if fileData.LogLevel != "" {
		config.LogLevel = fileData.LogLevel
	}
	if fileData.Language != "" {
		config.Language = fileData.Language
	}
	if fileData.Sound != nil {
		config.Sound = *fileData.Sound
	}
	if fileData.Opacity >= 0.3 && fileData.Opacity <= 1 {
		config.Opacity = fileData.Opacity
	}
	if fileData.CheckBonus != nil {
		config.CheckBonus = *fileData.CheckBonus
	}
	if fileData.DeviceCapacity > 0 {
		config.DeviceCapacity = fileData.DeviceCapacity
	}
	if fileData.WarningSeconds > 0 {
		config.WarningSeconds = fileData.WarningSeconds
	}

	if fileData.StartTimers != nil {
		names, err := parseTimerNames(fileData.StartTimers)
		if err != nil {
			return fmt.Errorf("start_timers: %w", err)
		}
		config.StartTimers = names
	}
	if fileData.CheckTimers != nil {
		names, err := parseTimerNames(fileData.CheckTimers)
		if err != nil {
			return fmt.Errorf("check_timers: %w", err)
		}
		config.CheckTimers = names
	}

	for key, timerData := range fileData.Timers {
		name, err := model.ParseTimerName(key)
		if err != nil {
			return fmt.Errorf("timers: %w", err)
		}
		timerConfig := config.Timers[name]
		if len(timerData.Initial) > 0 {
			timerConfig.InitialValues = append([]int(nil), timerData.Initial...)
		}
		if timerData.Red != nil {
			timerConfig.RedThreshold = *timerData.Red
		}
		if timerData.AutoReset != nil {
			timerConfig.AutoReset = *timerData.AutoReset
		}
		if timerData.PhaseIndexed != nil {
			timerConfig.PhaseIndexed = *timerData.PhaseIndexed
		}
		config.Timers[name] = timerConfig
	}

	for key, value := range fileData.Hotkeys {
		action, err := model.ParseAction(key)
		if err != nil {
			return fmt.Errorf("hotkeys: %w", err)
		}
		config.Hotkeys[action] = value
	}
	return nil
}

func parseTimerNames(values []string) ([]model.TimerName, error) {
	names := make([]model.TimerName, 0, len(values))
	for _, value := range values {
		name, err := model.ParseTimerName(value)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

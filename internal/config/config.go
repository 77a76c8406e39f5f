package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

type Settings struct {
	Preset       string  `json:"preset"`
	Text         string  `json:"text"`
	Font         string  `json:"font"`
	OverlayAlpha float32 `json:"overlay_alpha"`
	FPS          int     `json:"fps"`
	Seed         int64   `json:"seed"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Preset:       "repel",
		Text:         "67",
		OverlayAlpha: 0.75,
		FPS:          60,
		Seed:         1,
	}
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".config", "glyphdust")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func GetSettingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

func GetPresetsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}

	defaultSettings := DefaultSettings()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := createDefaultSettings(settingsPath, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	settings.validate(defaultSettings)
	return settings, nil
}

func (s *Settings) validate(defaults *Settings) {
	if s.OverlayAlpha < 0.0 || s.OverlayAlpha > 1.0 {
		log.Printf("Invalid overlay_alpha value %.2f, must be between 0.0 and 1.0, using default %.2f",
			s.OverlayAlpha, defaults.OverlayAlpha)
		s.OverlayAlpha = defaults.OverlayAlpha
	}
	if s.FPS < 10 || s.FPS > 240 {
		log.Printf("Invalid fps value %d, must be between 10 and 240, using default %d",
			s.FPS, defaults.FPS)
		s.FPS = defaults.FPS
	}
	if s.Preset == "" {
		s.Preset = defaults.Preset
	}
	if s.Text == "" {
		s.Text = defaults.Text
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}

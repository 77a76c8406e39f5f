package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

var ErrPresetNotFound = errors.New("preset not found")

func loadUserPresets() ([]Preset, error) {
	presetsFile, err := GetPresetsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(presetsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []Preset{}, nil
		}
		return nil, err
	}

	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse %s: %w", presetsFile, err)
	}
	return presets, nil
}

func writeUserPresets(presets []Preset) error {
	presetsFile, err := GetPresetsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(presetsFile, data, 0644)
}

// LoadUserPresets returns only the presets stored in the user presets file.
func LoadUserPresets() ([]Preset, error) {
	return loadUserPresets()
}

// LoadPresets layers valid user presets over the built-in table.
func LoadPresets() (map[string]Preset, error) {
	presets := Builtin()
	user, err := loadUserPresets()
	if err != nil {
		return presets, err
	}
	for _, p := range user {
		if err := p.Validate(); err != nil {
			log.Printf("Skipping user preset: %v", err)
			continue
		}
		presets[p.Name] = p
	}
	return presets, nil
}

func Lookup(name string) (Preset, error) {
	presets, err := LoadPresets()
	if err != nil {
		log.Printf("Failed to load user presets: %v", err)
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return p, nil
}

// SavePreset adds or replaces a user preset by name.
func SavePreset(preset Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	presets, err := loadUserPresets()
	if err != nil {
		return err
	}

	found := false
	for i, p := range presets {
		if p.Name == preset.Name {
			presets[i] = preset
			found = true
			break
		}
	}
	if !found {
		presets = append(presets, preset)
	}

	return writeUserPresets(presets)
}

func RemovePreset(name string) error {
	presets, err := loadUserPresets()
	if err != nil {
		return err
	}

	found := false
	for i, p := range presets {
		if p.Name == name {
			presets = append(presets[:i], presets[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	return writeUserPresets(presets)
}

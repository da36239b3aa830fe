// Package settings persists the user's tone configuration.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"morsetrainer/morse"
)

// EnvPrefix prefixes every environment override, e.g. MORSE_WPM.
const EnvPrefix = "MORSE"

type Settings struct {
	WPM        int     `yaml:"wpm" envconfig:"WPM"`
	Frequency  int     `yaml:"frequency" envconfig:"FREQUENCY"`
	Fade       int     `yaml:"fade" envconfig:"FADE"`
	SampleRate int     `yaml:"sample_rate" envconfig:"SAMPLE_RATE"`
	Backend    string  `yaml:"backend" envconfig:"BACKEND"`
	Device     string  `yaml:"device" envconfig:"DEVICE"`
	Volume     float64 `yaml:"volume" envconfig:"VOLUME"` // 0 < volume <= 2; unset or 0 means 1
	Log        Log     `yaml:"log" envconfig:"LOG"`
}

type Log struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Pretty bool   `yaml:"pretty" envconfig:"PRETTY"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// Path returns the settings file location under the user config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}

	return filepath.Join(dir, "morsetrainer", "config.yaml"), nil
}

// Load reads path, applies MORSE_* environment overrides and fills in
// defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	// a .env file is optional
	_ = godotenv.Load()

	var s Settings
	if err := readFile(path, &s); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	s.setDefaults()

	return &s, nil
}

// ReadFile is Load without the environment overrides: what Save last wrote,
// plus defaults.
func ReadFile(path string) (*Settings, error) {
	var s Settings
	if err := readFile(path, &s); err != nil {
		return nil, err
	}

	s.setDefaults()

	return &s, nil
}

func readFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("reading settings file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), s); err != nil {
		return fmt.Errorf("parsing settings: %w", err)
	}

	return nil
}

// Save writes s to path, creating its directory.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

func (s *Settings) setDefaults() {
	if s.WPM == 0 {
		s.WPM = 20
	}
	if s.Frequency == 0 {
		s.Frequency = 450
	}
	if s.Fade == 0 {
		s.Fade = 2
	}
	if s.SampleRate == 0 {
		s.SampleRate = morse.DefaultSampleRate
	}
	if s.Backend == "" {
		s.Backend = "portaudio"
	}
	if s.Volume == 0 {
		s.Volume = 1.0
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}

// Validate checks the ranges the trainer accepts.
func (s *Settings) Validate() error {
	var errs []error

	if s.WPM < 1 {
		errs = append(errs, fmt.Errorf("wpm must be at least 1, got %d", s.WPM))
	}
	if s.Frequency < 20 || s.Frequency > 1600 {
		errs = append(errs, fmt.Errorf("frequency must be between 20 and 1600, got %d", s.Frequency))
	}
	if s.Fade < 1 || s.Fade > 10 {
		errs = append(errs, fmt.Errorf("tone fade must be between 1 and 10, got %d", s.Fade))
	}
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample rate must be between 8000 and 192000, got %d", s.SampleRate))
	}
	if s.Volume <= 0 || s.Volume > 2 {
		errs = append(errs, fmt.Errorf("volume must be above 0 and at most 2, got %v", s.Volume))
	}
	if s.Backend != "portaudio" && s.Backend != "beep" {
		errs = append(errs, fmt.Errorf("unknown audio backend %q", s.Backend))
	}

	return errors.Join(errs...)
}

// Context returns the tone context the renderer needs.
func (s *Settings) Context() morse.Context {
	return morse.Context{
		WPM:        s.WPM,
		Frequency:  s.Frequency,
		Fade:       s.Fade,
		SampleRate: s.SampleRate,
	}
}

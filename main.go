package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"morsetrainer/morse"
	"morsetrainer/settings"
)

// App carries what every command needs once flags are parsed.
type App struct {
	ConfigPath string
	LogLevel   string
	LogPretty  bool

	WPM       int
	Frequency int
	Fade      int

	Settings *settings.Settings
	Renderer *morse.Renderer
}

func newRootCmd() *cobra.Command {
	app := &App{Renderer: morse.NewRenderer(nil)}

	root := &cobra.Command{
		Use:           "morsetrainer",
		Short:         "Morse code tone generator and trainer",
		Long:          "Render text as Morse code tones, play it on a sound card, write it to WAV or raw PCM, and decode recordings back to text.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "settings file (default: user config dir)")
	pf.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&app.LogPretty, "log-pretty", false, "human readable logs on stderr")
	pf.IntVarP(&app.WPM, "wpm", "w", 0, "words per minute")
	pf.IntVarP(&app.Frequency, "freq", "f", 0, "tone frequency (Hz)")
	pf.IntVar(&app.Fade, "fade", 0, "fade in/out (ms)")

	root.AddCommand(
		playCmd(app),
		toneCmd(app),
		wavCmd(app),
		rawCmd(app),
		codeCmd(app),
		decodeCmd(app),
		verifyCmd(app),
		devicesCmd(app),
		settingsCmd(app),
	)

	return root
}

// setup loads settings, applies the flags that were given and starts logging.
func (app *App) setup(cmd *cobra.Command) error {
	if app.ConfigPath == "" {
		p, err := settings.Path()
		if err != nil {
			return err
		}
		app.ConfigPath = p
	}

	s, err := settings.Load(app.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("wpm") {
		s.WPM = app.WPM
	}
	if flags.Changed("freq") {
		s.Frequency = app.Frequency
	}
	if flags.Changed("fade") {
		s.Fade = app.Fade
	}
	if flags.Changed("log-level") {
		s.Log.Level = app.LogLevel
	}
	if flags.Changed("log-pretty") {
		s.Log.Pretty = app.LogPretty
	}

	initLogger(s.Log.Level, s.Log.Pretty)

	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	app.Settings = s

	log.Debug().
		Str("config", app.ConfigPath).
		Int("wpm", s.WPM).
		Int("frequency", s.Frequency).
		Int("fade", s.Fade).
		Int("sample_rate", s.SampleRate).
		Msg("settings loaded")

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("morsetrainer failed")
		os.Exit(1)
	}
}

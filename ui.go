package main

import (
	"errors"
	"fmt"
	"strconv"

	component "github.com/j-04/gocui-component"
	"github.com/jroimartin/gocui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"morsetrainer/device"
	"morsetrainer/settings"
)

var (
	FormSave   = errors.New("form-save")
	FormCancel = errors.New("form-cancel")
)

const (
	labelWPM       = "WPM:"
	labelFrequency = "Frequency:"
	labelFade      = "Fade (ms):"
	defaultDevice  = "(default)"
	statusView     = "status"
)

// formValues holds the raw text of the settings form.
type formValues struct {
	WPM       string
	Frequency string
	Fade      string
	Device    string
}

// fieldRanges are the limits the form accepts. They are tighter than
// Settings.Validate, which also serves the command line.
var fieldRanges = map[string][2]int{
	labelWPM:       {20, 99},
	labelFrequency: {20, 1600},
	labelFade:      {1, 10},
}

// apply returns a copy of s updated from the form, or the first problem found.
func (v formValues) apply(s *settings.Settings) (*settings.Settings, error) {
	out := *s

	for _, f := range []struct {
		label string
		text  string
		dst   *int
	}{
		{labelWPM, v.WPM, &out.WPM},
		{labelFrequency, v.Frequency, &out.Frequency},
		{labelFade, v.Fade, &out.Fade},
	} {
		n, err := strconv.Atoi(f.text)
		if err != nil {
			return nil, fmt.Errorf("%s %q is not a number", f.label, f.text)
		}
		if r := fieldRanges[f.label]; n < r[0] || n > r[1] {
			return nil, fmt.Errorf("%s must be between %d and %d", f.label, r[0], r[1])
		}
		*f.dst = n
	}

	out.Device = v.Device
	if out.Device == defaultDevice {
		out.Device = ""
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// deviceOptions lists the output devices with the current one first, so the
// select starts on it.
func deviceOptions(current string, list []device.Info) []string {
	if current == "" {
		current = defaultDevice
	}

	opts := []string{current}
	if current != defaultDevice {
		opts = append(opts, defaultDevice)
	}
	for _, d := range list {
		if d.Name != current {
			opts = append(opts, d.Name)
		}
	}

	return opts
}

func inRange(label string) (string, func(string) bool) {
	r := fieldRanges[label]
	return fmt.Sprintf("%d - %d", r[0], r[1]), func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n >= r[0] && n <= r[1]
	}
}

// showStatus writes msg to a line at the bottom of the screen.
func showStatus(g *gocui.Gui, msg string) error {
	maxX, maxY := g.Size()

	v, err := g.SetView(statusView, 0, maxY-3, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}

	v.Clear()
	fmt.Fprint(v, msg)
	return nil
}

// settingsForm edits WPM, frequency, fade and output device of the settings
// file. Test Tone plays the letter C with the values currently in the form.
func (app *App) settingsForm() error {
	list, err := device.List()
	if err != nil {
		log.Warn().Err(err).Msg("cannot list output devices")
	}

	// start from the file, not from flag or environment overrides
	s, err := settings.ReadFile(app.ConfigPath)
	if err != nil {
		return err
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()

	// the terminal belongs to gocui until MainLoop returns
	logger := log.Logger
	log.Logger = zerolog.Nop()
	defer func() { log.Logger = logger }()

	form := component.NewForm(g, "Morse settings", 4, 2, 0, 0)

	wpm := form.AddInputField(labelWPM, 12, 8).
		SetText(strconv.Itoa(s.WPM)).
		AddValidate(inRange(labelWPM))
	freq := form.AddInputField(labelFrequency, 12, 8).
		SetText(strconv.Itoa(s.Frequency)).
		AddValidate(inRange(labelFrequency))
	fade := form.AddInputField(labelFade, 12, 8).
		SetText(strconv.Itoa(s.Fade)).
		AddValidate(inRange(labelFade))
	dev := form.AddSelect("Device:", 12, 40).AddOptions(deviceOptions(s.Device, list)...)

	values := func() formValues {
		return formValues{
			WPM:       wpm.GetFieldText(),
			Frequency: freq.GetFieldText(),
			Fade:      fade.GetFieldText(),
			Device:    dev.GetSelected(),
		}
	}

	form.AddButton("Test Tone", func(g *gocui.Gui, v *gocui.View) error {
		ns, err := values().apply(s)
		if err != nil {
			return showStatus(g, err.Error())
		}

		go func() {
			msg := "test tone played"
			if err := app.testTone(ns); err != nil {
				msg = "test tone: " + err.Error()
			}
			g.Update(func(g *gocui.Gui) error {
				return showStatus(g, msg)
			})
		}()

		return showStatus(g, "playing test tone")
	})

	form.AddButton("Save", func(g *gocui.Gui, v *gocui.View) error {
		ns, err := values().apply(s)
		if err != nil {
			return showStatus(g, "not saved: "+err.Error())
		}

		if err := settings.Save(app.ConfigPath, ns); err != nil {
			return err
		}

		form.Close(g, v)
		return FormSave
	})

	form.AddButton("Cancel", func(g *gocui.Gui, v *gocui.View) error {
		form.Close(g, v)
		return FormCancel
	})

	form.Draw()

	err = g.MainLoop()
	log.Logger = logger

	switch err {
	case FormSave:
		log.Info().Str("file", app.ConfigPath).Msg("settings saved")
		return nil
	case FormCancel:
		return nil
	default:
		return err
	}
}

func (app *App) testTone(s *settings.Settings) error {
	buf, err := app.Renderer.Letter("C", s.Context())
	if err != nil {
		return err
	}

	out, err := openOutput(s)
	if err != nil {
		return err
	}
	defer out.Close()

	return out.Write(buf)
}

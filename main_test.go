package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"morsetrainer/device"
	"morsetrainer/morse"
	"morsetrainer/settings"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	config := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", config}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestCodeCmd(t *testing.T) {
	out, err := run(t, "code", "sos", "hi")
	if err != nil {
		t.Fatalf("code error: %v", err)
	}
	if want := "... --- ... / .... ..\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCodeCmd_Unsupported(t *testing.T) {
	_, err := run(t, "code", "a#")

	var unsupported *morse.UnsupportedCharacterError
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want UnsupportedCharacterError", err)
	}
	if unsupported.Char != '#' {
		t.Errorf("char: got %q", unsupported.Char)
	}
}

func TestRawCmd(t *testing.T) {
	out, err := run(t, "--wpm", "25", "raw", "E E")
	if err != nil {
		t.Fatalf("raw error: %v", err)
	}

	buf, err := morse.NewRenderer(nil).Phrase("E E", morse.Context{WPM: 25, Frequency: 450, Fade: 2, SampleRate: 48000})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal([]byte(out), morse.Bytes(buf)) {
		t.Errorf("raw output differs: got %d bytes, want %d", len(out), len(buf.Data)*4)
	}
}

func TestWavThenDecode(t *testing.T) {
	file := filepath.Join(t.TempDir(), "paris.wav")

	if _, err := run(t, "--freq", "700", "wav", "-o", file, "PARIS"); err != nil {
		t.Fatalf("wav error: %v", err)
	}

	out, err := run(t, "decode", file)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "PARIS" {
		t.Errorf("decoded %q, want %q", got, "PARIS")
	}

	out, err = run(t, "--freq", "700", "decode", "--filter", file)
	if err != nil {
		t.Fatalf("decode --filter error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "PARIS" {
		t.Errorf("filtered: decoded %q, want %q", got, "PARIS")
	}
}

func TestWavCmd_RequiresOutput(t *testing.T) {
	if _, err := run(t, "wav", "SOS"); err == nil {
		t.Error("expected an error without --output")
	}
}

func TestDecodeCmd_InvalidFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := settings.Save(file, settings.Default()); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "decode", file); err == nil {
		t.Error("expected an error for a non-wav file")
	}
}

func TestVerifyCmd(t *testing.T) {
	out, err := run(t, "verify", "hi", "there")
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if !strings.HasPrefix(out, "ok: HI THERE") {
		t.Errorf("got %q", out)
	}
}

func TestSlowSpeeds(t *testing.T) {
	for _, wpm := range []string{"1", "5", "10", "19"} {
		out, err := run(t, "--wpm", wpm, "raw", "E")
		if err != nil {
			t.Errorf("--wpm %s: %v", wpm, err)
			continue
		}
		if len(out) == 0 {
			t.Errorf("--wpm %s: no samples written", wpm)
		}
	}
}

func TestFlagsAreValidated(t *testing.T) {
	if _, err := run(t, "--wpm", "0", "code", "E"); err == nil {
		t.Error("expected an error for 0 wpm")
	}
	if _, err := run(t, "--fade", "11", "code", "E"); err == nil {
		t.Error("expected an error for an 11 ms fade")
	}
}

func TestFormValues_Apply(t *testing.T) {
	s := settings.Default()
	s.Device = "pulse"

	ns, err := formValues{WPM: "30", Frequency: "700", Fade: "3", Device: defaultDevice}.apply(s)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if ns.WPM != 30 || ns.Frequency != 700 || ns.Fade != 3 || ns.Device != "" {
		t.Errorf("got %+v", ns)
	}
	if s.WPM != 20 || s.Device != "pulse" {
		t.Error("apply modified its input")
	}

	bad := []formValues{
		{WPM: "fast", Frequency: "700", Fade: "3"},
		{WPM: "10", Frequency: "700", Fade: "3"},
		{WPM: "30", Frequency: "5000", Fade: "3"},
		{WPM: "30", Frequency: "700", Fade: "0"},
	}
	for _, v := range bad {
		if _, err := v.apply(s); err == nil {
			t.Errorf("%+v: expected an error", v)
		}
	}
}

func TestDeviceOptions(t *testing.T) {
	list := []device.Info{
		{Index: 1, Name: "hw:0"},
		{Index: 2, Name: "pulse"},
	}

	tests := []struct {
		current string
		want    []string
	}{
		{"", []string{defaultDevice, "hw:0", "pulse"}},
		{"pulse", []string{"pulse", defaultDevice, "hw:0"}},
	}

	for _, tt := range tests {
		got := deviceOptions(tt.current, list)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("deviceOptions(%q): got %v, want %v", tt.current, got, tt.want)
		}
	}
}

func TestInRange(t *testing.T) {
	msg, valid := inRange(labelWPM)
	if msg != "20 - 99" {
		t.Errorf("message: got %q", msg)
	}

	for v, want := range map[string]bool{"20": true, "99": true, "19": false, "100": false, "x": false} {
		if got := valid(v); got != want {
			t.Errorf("%q: got %v, want %v", v, got, want)
		}
	}
}

func TestSettingsFormStartsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	saved := settings.Default()
	saved.WPM = 25
	if err := settings.Save(path, saved); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MORSE_WPM", "40")

	s, err := settings.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	ns, err := formValues{WPM: strconv.Itoa(s.WPM), Frequency: "450", Fade: "2", Device: defaultDevice}.apply(s)
	if err != nil {
		t.Fatal(err)
	}
	if ns.WPM != 25 {
		t.Errorf("form would save wpm %d, want the file's 25", ns.WPM)
	}
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"morsetrainer/decode"
	"morsetrainer/device"
	"morsetrainer/morse"
	"morsetrainer/settings"
	"morsetrainer/sink"
)

func phrase(args []string) string {
	return strings.Join(args, " ")
}

func openOutput(s *settings.Settings) (device.Output, error) {
	return device.Open(device.Config{
		Backend:    s.Backend,
		Name:       s.Device,
		SampleRate: s.SampleRate,
		Volume:     s.Volume,
	})
}

// play writes segments to the configured output. An interrupt stops playback
// at the next segment boundary.
func (app *App) play(ctx context.Context, segments []*audio.Float32Buffer) error {
	out, err := openOutput(app.Settings)
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err = sink.Play(ctx, out, segments)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("playback stopped")
		return nil
	}

	return err
}

func playCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play PHRASE...",
		Short: "Play a phrase on the sound card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := phrase(args)

			segments, err := app.Renderer.Segments(text, app.Settings.Context())
			if err != nil {
				return err
			}

			log.Info().Str("phrase", text).Int("words", len(segments)).Msg("playing")
			return app.play(cmd.Context(), segments)
		},
	}
}

func toneCmd(app *App) *cobra.Command {
	var duration float64

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Play a plain test tone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 {
				return fmt.Errorf("duration must be positive, got %v", duration)
			}

			s := app.Settings
			buf := morse.Synthesize(s.Frequency, duration, s.Fade, s.SampleRate)
			return app.play(cmd.Context(), []*audio.Float32Buffer{buf})
		},
	}

	cmd.Flags().Float64VarP(&duration, "duration", "d", 1, "tone length (seconds)")
	return cmd
}

func wavCmd(app *App) *cobra.Command {
	var (
		output    string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "wav -o FILE PHRASE...",
		Short: "Write a phrase to a WAV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.Settings.Context()

			segments, err := app.Renderer.Segments(phrase(args), ctx)
			if err != nil {
				return err
			}
			if normalize {
				segments = []*audio.Float32Buffer{sink.Normalize(morse.Concat(ctx.Rate(), segments...))}
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			w := sink.NewWavSink(f, ctx.Rate())
			if err := sink.Play(cmd.Context(), w, segments); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("finishing %s: %w", output, err)
			}

			log.Info().Str("file", output).Msg("wav written")
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "scale the peak to full scale")
	cmd.MarkFlagRequired("output")
	return cmd
}

func rawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "raw PHRASE...",
		Short: "Write float32 little-endian mono samples to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := app.Renderer.Segments(phrase(args), app.Settings.Context())
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			if err := sink.Play(cmd.Context(), sink.NewRawSink(w), segments); err != nil {
				return err
			}
			return w.Flush()
		},
	}
}

func codeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "code PHRASE...",
		Short: "Print a phrase as dots and dashes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := morse.Code(morse.International, phrase(args))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func decodeCmd(app *App) *cobra.Command {
	var filter bool

	cmd := &cobra.Command{
		Use:   "decode FILE.wav",
		Short: "Decode a Morse recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			dec := wav.NewDecoder(f)
			if !dec.IsValidFile() {
				return fmt.Errorf("invalid WAV file: %s", args[0])
			}

			pcm, err := dec.FullPCMBuffer()
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			opts := decode.DefaultOptions(app.Settings.WPM)
			opts.Fade = app.Settings.Fade
			opts.Filter = filter
			if cmd.Flags().Changed("freq") {
				opts.Center = float64(app.Settings.Frequency)
			}

			fmt.Fprintln(cmd.OutOrStdout(), decode.Text(pcm.AsFloatBuffer(), opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&filter, "filter", false, "bandpass before decoding, around --freq when given or else the loudest tone in the recording")
	return cmd
}

func verifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify PHRASE...",
		Short: "Render a phrase and decode it back",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := phrase(args)

			buf, err := app.Renderer.Phrase(text, app.Settings.Context())
			if err != nil {
				return err
			}

			opts := decode.DefaultOptions(app.Settings.WPM)
			opts.Fade = app.Settings.Fade

			got := decode.Text(buf.AsFloatBuffer(), opts)
			want := strings.Join(strings.Fields(strings.ToUpper(text)), " ")

			if got != want {
				return fmt.Errorf("decoded %q, want %q", got, want)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%.2fs)\n", got, morse.Seconds(buf))
			return nil
		},
	}
}

func devicesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List output devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := device.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available output devices")
			for _, d := range list {
				fmt.Fprintln(out, "", d)
			}
			return nil
		},
	}
}

func settingsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit the tone settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.settingsForm()
		},
	}
}

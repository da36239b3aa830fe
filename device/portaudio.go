//go:build cgo

package device

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog/log"
)

// PortAudioWriter streams mono float32 frames to a portaudio device.
type PortAudioWriter struct {
	stream *portaudio.Stream
	out    *chunker
}

func openPortAudio(cfg Config) (Output, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	info, err := outputDevice(cfg.Name)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	const numChannels = 1

	p := portaudio.HighLatencyParameters(nil, info)
	p.Input.Channels = 0
	p.Output.Channels = numChannels
	p.SampleRate = float64(cfg.SampleRate)
	p.FramesPerBuffer = cfg.SampleRate * cfg.BufferMs / 1000

	buffer := make([]float32, p.FramesPerBuffer)

	stream, err := portaudio.OpenStream(p, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open output: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start output: %w", err)
	}

	log.Debug().
		Str("device", info.Name).
		Int("sample_rate", cfg.SampleRate).
		Int("frames_per_buffer", p.FramesPerBuffer).
		Msg("output stream started")

	return &PortAudioWriter{
		stream: stream,
		out: &chunker{
			buf:    buffer,
			volume: float32(cfg.Volume),
			emit:   stream.Write,
		},
	}, nil
}

// Write blocks until every full device buffer of buf has been handed to the
// device. The remainder waits for the next Write or Close.
func (w *PortAudioWriter) Write(buf *audio.Float32Buffer) error {
	return w.out.write(buf.Data)
}

func (w *PortAudioWriter) Close() error {
	defer portaudio.Terminate()

	flushErr := w.out.flush()

	if err := w.stream.Stop(); err != nil {
		w.stream.Close()
		return fmt.Errorf("stop output: %w", err)
	}
	if err := w.stream.Close(); err != nil {
		return err
	}

	return flushErr
}

func outputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return portaudio.DefaultOutputDevice()
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	d, err := match(outputs(devices), name)
	if err != nil {
		return nil, err
	}

	return devices[d.Index-1], nil
}

func outputs(devices []*portaudio.DeviceInfo) []Info {
	def, _ := portaudio.DefaultOutputDevice()

	var list []Info
	for i, d := range devices {
		if d.MaxOutputChannels == 0 { // input
			continue
		}

		list = append(list, Info{
			Index:    i + 1,
			Name:     d.Name,
			Channels: d.MaxOutputChannels,
			Default:  def != nil && def.Name == d.Name,
		})
	}

	return list
}

// List returns the output devices portaudio can see.
func List() ([]Info, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	return outputs(devices), nil
}

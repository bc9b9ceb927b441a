// SPDX-License-Identifier: MIT
/*
Package audio captures live input through PortAudio and feeds mono sample
chunks into the analysis pipeline.

The capture callback is the real-time edge of the system:
- It never blocks: chunks go through the pipeline's unbounded hand-off.
- Mono reduction takes the first channel of each interleaved frame.
- Chunk ownership transfers to the pipeline on send.
*/
package audio

import (
	"os"
	"runtime"
	"sync/atomic"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	"spectro/internal/config"
	applog "spectro/internal/log"
)

type Engine struct {
	// Core configuration and state.
	config *config.Config

	// Audio input handling.
	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream

	// Pipeline inlet; sends never wait on the analysis worker.
	sink chan<- []float64

	// Recording state and buffers.
	isRecording int32 // Atomic flag for thread-safe state
	outputFile  *os.File
	wavEncoder  *wav.Encoder
	sampleBuf   *goaudio.IntBuffer // Reusable buffer for format conversion
}

// NewEngine resolves the input device and prepares an engine that delivers
// captured chunks into sink.
func NewEngine(cfg *config.Config, sink chan<- []float64) (*Engine, error) {
	inputDevice, err := InputDevice(cfg.DeviceID)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:      cfg,
		inputDevice: inputDevice,
		sink:        sink,
	}

	if cfg.LowLatency {
		engine.inputLatency = inputDevice.DefaultLowInputLatency
	} else {
		engine.inputLatency = inputDevice.DefaultHighInputLatency
	}

	return engine, nil
}

// StartInputStream opens and starts the PortAudio input stream. From the
// first callback on, the hot path is live.
func (e *Engine) StartInputStream() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: e.config.Channels,
			Device:   e.inputDevice,
			Latency:  e.inputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0, // No output device
			Device:   nil,
		},
		FramesPerBuffer: e.config.FramesPerBuffer,
		SampleRate:      e.config.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, e.processInputStream)
	if err != nil {
		return err
	}
	e.inputStream = stream

	if err := e.inputStream.Start(); err != nil {
		e.inputStream.Close()
		return err
	}

	applog.Infof("Engine: input stream started (%s, %.0f Hz, %d ch)",
		e.inputDevice.Name, e.config.SampleRate, e.config.Channels)

	return nil
}

// StopInputStream stops and closes the input stream if one is running.
func (e *Engine) StopInputStream() error {
	if e.inputStream != nil {
		if err := e.inputStream.Stop(); err != nil {
			return err
		}

		if err := e.inputStream.Close(); err != nil {
			return err
		}

		e.inputStream = nil
	}

	return nil
}

// processInputStream is the capture callback. It runs on the PortAudio
// thread: mono-reduce, hand off, optionally append to the WAV recording.
// The chunk allocation is deliberate; the pipeline owns it after the send.
func (e *Engine) processInputStream(in []float32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	channels := e.config.Channels
	mono := make([]float64, 0, len(in)/channels)
	for i := 0; i < len(in); i += channels {
		mono = append(mono, float64(in[i]))
	}
	e.sink <- mono

	// Write to WAV file if recording
	if atomic.LoadInt32(&e.isRecording) == 1 && e.wavEncoder != nil {
		for i, sample := range in {
			e.sampleBuf.Data[i] = int(sample * 32767)
		}

		e.sampleBuf.Data = e.sampleBuf.Data[:len(in)]

		if err := e.wavEncoder.Write(e.sampleBuf); err != nil {
			applog.Errorf("Engine: error writing to WAV file: %v", err)
		}
	}
}

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"spectro/cmd"
	"spectro/internal/analysis"
	"spectro/internal/audio"
	applog "spectro/internal/log"
	"spectro/internal/render"
	"spectro/internal/transport"
	"spectro/internal/tui"
	"spectro/pkg/build"
)

// main is the entry point. The program flow has three phases:
//
// 1. Startup Phase (Cold Path):
//   - Initialize build information
//   - Configure runtime settings
//   - Initialize PortAudio
//   - Parse command line arguments
//   - Execute one-off commands if requested
//
// 2. Concurrent Phase (Hot Path):
//   - Start the analysis pipeline worker
//   - Start the capture input stream
//   - Begin recording if enabled
//   - Run the terminal viewer until quit
//
// 3. Shutdown Phase (Cold Path):
//   - Stop recording if active
//   - Stop the input stream and drain the pipeline
func main() {
	// ==================== STARTUP PHASE (Cold Path) ====================

	if err := build.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}

	// Limit OS threads to optimize for real-time audio processing:
	// one thread for the capture callback, one for analysis and UI.
	runtime.GOMAXPROCS(2)

	if err := audio.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}
	defer audio.Terminate()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if cfg.Verbose {
		applog.SetLevel(applog.LevelDebug)
	}

	// One-off commands run without the capture engine or pipeline.
	if cfg.Command != "" {
		if err := executeCommand(cfg.Command); err != nil {
			applog.Fatalf("%v", err)
		}
		return
	}

	if !cfg.TUIMode {
		return
	}

	// ==================== CONCURRENT PHASE (Hot Path) ====================

	var feed transport.Transport
	switch {
	case cfg.ServePort != "":
		feed = transport.NewWebSocketTransport(cfg.ServePort, transport.DefaultSendInterval)
	case cfg.Verbose:
		// No serving surface requested; trace frame flow in the logs.
		feed = transport.NewLoggingTransport()
	}

	pipeline, err := analysis.NewPipeline(cfg.FFTSize, cfg.HistoryWidth, cfg.SampleRate, feed)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	pipeline.Start()

	engine, err := audio.NewEngine(cfg, pipeline.In())
	if err != nil {
		applog.Fatalf("%v", err)
	}

	// CRITICAL: the first capture callback marks the start of the hot path.
	if err := engine.StartInputStream(); err != nil {
		applog.Fatalf("%v", err)
	}

	if cfg.RecordInputStream {
		if err := engine.StartRecording(cfg.OutputFile); err != nil {
			applog.Fatalf("%v", err)
		}
	}

	// The viewer owns the terminal until the user quits.
	axis := render.NewAxis(cfg.MinFreq, cfg.SampleRate, cfg.FFTSize/2)
	if err := tui.RunSpectrogram(pipeline.History(), axis); err != nil {
		applog.Errorf("Viewer error: %v", err)
	}

	// ==================== SHUTDOWN PHASE (Cold Path) ====================

	if cfg.RecordInputStream {
		if err := engine.StopRecording(); err != nil {
			applog.Errorf("Error stopping recording: %v", err)
		}
		fmt.Printf("\nRecording saved to: %s\n", cfg.OutputFile)
	}

	// Stopping the stream ends chunk production; closing the pipeline then
	// drains and discards any partial window.
	if err := engine.Close(); err != nil {
		applog.Errorf("Error closing audio engine: %v", err)
	}
	if err := pipeline.Close(); err != nil {
		applog.Errorf("Error closing pipeline: %v", err)
	}
	if feed != nil {
		if err := feed.Close(); err != nil {
			applog.Errorf("Error closing WebSocket feed: %v", err)
		}
	}
}

// executeCommand handles one-off commands that run without the engine.
func executeCommand(command string) error {
	switch command {
	case "list":
		// Piped output gets the plain listing instead of the TUI.
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return audio.ListDevices()
		}
		return tui.StartDeviceListUI()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

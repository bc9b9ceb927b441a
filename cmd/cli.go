// SPDX-License-Identifier: MIT
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"spectro/internal/config"
	"spectro/pkg/build"
)

// ParseArgs builds the runtime configuration: defaults, then the optional
// YAML config file and environment overrides, then command line flags.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()
	options := config.NewConfig()

	var configPath string

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Live microphone spectrogram in the terminal",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Parsed flags are already bound into options here, so the
			// file and environment load into a scratch config and only
			// fields without an explicit flag are taken from it.
			fileCfg := config.NewConfig()
			if err := fileCfg.LoadFile(configPath); err != nil {
				return err
			}

			flags := cmd.Flags()
			overlay := []struct {
				flag  string
				apply func()
			}{
				{"device", func() { options.DeviceID = fileCfg.DeviceID }},
				{"channels", func() { options.Channels = fileCfg.Channels }},
				{"sample-rate", func() { options.SampleRate = fileCfg.SampleRate }},
				{"frames-per-buffer", func() { options.FramesPerBuffer = fileCfg.FramesPerBuffer }},
				{"low-latency", func() { options.LowLatency = fileCfg.LowLatency }},
				{"fft-size", func() { options.FFTSize = fileCfg.FFTSize }},
				{"history", func() { options.HistoryWidth = fileCfg.HistoryWidth }},
				{"min-freq", func() { options.MinFreq = fileCfg.MinFreq }},
				{"record", func() { options.RecordInputStream = fileCfg.RecordInputStream }},
				{"output", func() { options.OutputFile = fileCfg.OutputFile }},
				{"serve", func() { options.ServePort = fileCfg.ServePort }},
				{"verbose", func() { options.Verbose = fileCfg.Verbose }},
			}
			for _, o := range overlay {
				if !flags.Changed(o.flag) {
					o.apply()
				}
			}
			options.Format = fileCfg.Format // no flag binds format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.TUIMode = true
			return options.Validate()
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "list"
			options.TUIMode = false
		},
	}
	rootCmd.AddCommand(listCmd)

	// Audio device configuration
	rootCmd.PersistentFlags().IntVarP(&options.DeviceID, "device", "d", config.DefaultDeviceID,
		"Specify input device ID. Use 'list' command to see available devices.")
	rootCmd.PersistentFlags().IntVarP(&options.Channels, "channels", "c", config.DefaultChannels,
		"Number of channels to capture (1=mono, 2=stereo; only the first is analyzed)")
	rootCmd.PersistentFlags().Float64VarP(&options.SampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate, measured in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&options.FramesPerBuffer, "frames-per-buffer", "b", config.DefaultFramesPerBuffer,
		"The number of frames per buffer (affects latency)")
	rootCmd.PersistentFlags().BoolVarP(&options.LowLatency, "low-latency", "l", config.DefaultLowLatency,
		"Use low latency mode for real-time processing")

	// Analysis configuration
	rootCmd.PersistentFlags().IntVarP(&options.FFTSize, "fft-size", "n", config.DefaultFFTSize,
		"Analysis window size in samples (power of 2)")
	rootCmd.PersistentFlags().IntVarP(&options.HistoryWidth, "history", "w", config.DefaultHistoryWidth,
		"Number of spectrogram frames kept for display")
	rootCmd.PersistentFlags().Float64Var(&options.MinFreq, "min-freq", config.DefaultMinFreq,
		"Bottom of the displayed frequency axis (Hz)")

	// Recording configuration
	rootCmd.PersistentFlags().BoolVarP(&options.RecordInputStream, "record", "r", config.DefaultRecordInputStream,
		"Record raw audio from the input device while analyzing")
	rootCmd.PersistentFlags().StringVarP(&options.OutputFile, "output", "o", config.DefaultOutputFile,
		"Output file name. Default is recording-DD-MM-YYYY-HHMMSS.wav")

	// Serving configuration
	rootCmd.PersistentFlags().StringVar(&options.ServePort, "serve", "",
		"Broadcast frames to WebSocket clients on this port (empty=off)")

	// Debug configuration
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if options.RecordInputStream && options.OutputFile == "" {
		options.OutputFile = "recording-" +
			time.Now().UTC().Format("02-01-2006-150405") +
			"." + options.Format
	}

	return options, nil
}

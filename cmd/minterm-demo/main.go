// Command minterm-demo renders a small animated scene with the minterm
// engine. It exists to exercise the full pipeline against a real terminal:
// capability detection, default-color probing, diffing, and resize.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minterm/minterm"
	"github.com/minterm/minterm/internal/logger"
)

var (
	duration time.Duration
	fps      int
	logFile  string
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:          "minterm-demo",
		Short:        "Animated demo of the minterm rendering engine",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	root.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to run the animation")
	root.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	root.Flags().StringVar(&logFile, "log-file", "", "write diagnostics to this file")
	root.Flags().StringVar(&logLevel, "log-level", "info", "diagnostic log level")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log, err := buildLogger()
	if err != nil {
		return err
	}

	backend := minterm.NewANSIBackend(os.Stdout, os.Stdin, minterm.WithBackendLogger(log))
	defaults := backend.QueryDefaultColors()

	screen := minterm.NewScreen(backend, minterm.WithLogger(log), minterm.WithUnderlineFallback())
	defer screen.Close()

	if err := backend.Clear(minterm.ClearAll); err != nil {
		return err
	}

	banner := minterm.NewGradient(
		minterm.RGBColor(0xff, 0x5f, 0x00),
		minterm.RGBColor(0xff, 0x00, 0xaa),
		minterm.RGBColor(0x5f, 0x5f, 0xff),
	)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()
	deadline := time.After(duration)

	frame := 0
	for {
		select {
		case <-interrupt:
			return nil
		case <-deadline:
			return nil
		case <-ticker.C:
		}

		frame++
		err := screen.Draw(func(f *minterm.Frame) {
			width, height := f.Size()

			f.SetStringGradient(2, 1, "minterm rendering engine", banner, minterm.NewStyle().Bold())
			f.SetString(2, 3, fmt.Sprintf("frame %d  size %dx%d", frame, width, height), minterm.NewStyle())
			f.SetString(2, 4, describeDefaults(defaults), minterm.NewStyle().Dim())

			// A marcher along the bottom row shows diff emission at work.
			f.SetSymbol(frame%max(width, 1), height-1, "●",
				minterm.NewStyle().Foreground(banner.At(float64(frame%60)/60)))
		})
		if err != nil {
			return fmt.Errorf("draw cycle failed: %w", err)
		}
	}
}

func buildLogger() (*logger.Logger, error) {
	if logFile == "" {
		return logger.Nop(), nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.New(logger.Options{Level: logLevel, HumanReadable: true, Writer: f})
}

func describeDefaults(d minterm.DefaultColors) string {
	if !d.Foreground.IsSet() && !d.Background.IsSet() {
		return "terminal default colors: not reported"
	}
	return fmt.Sprintf("terminal default colors: fg=%s bg=%s", d.Foreground, d.Background)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hmidash/internal/config"
	"hmidash/internal/logging"
	"hmidash/internal/sim"
)

var (
	replayInput      string
	replaySpeed      float64
	replayMode       string
	replayConfigPath string
	replaySchemaPath string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded frame log",
	Long:  "replay feeds frames from a recorded JSONL file back into the dashboard or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := config.Load(replayConfigPath, replaySchemaPath)
		if err != nil {
			return err
		}
		mode, err := resolveMode(replayMode, term.IsTerminal(int(os.Stdout.Fd())))
		if err != nil {
			return err
		}
		logger, closeLog, err := openLogger(mode, "", "info")
		if err != nil {
			return err
		}
		defer closeLog()

		writer, err := newWriters(cfg, mode, "", true, nil)
		if err != nil {
			return err
		}
		defer writer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		err = sim.ReplayLogFile(ctx, replayInput, writer, replaySpeed)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("replay finished", "input", replayInput)
		if mode == modeTUI {
			// keep the last frame on screen until the user quits
			<-ctx.Done()
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to recorded frame log")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 for no delay)")
	replayCmd.Flags().StringVar(&replayMode, "mode", modeAuto, "Output mode: auto, tui, color or json")
	replayCmd.Flags().StringVar(&replayConfigPath, "config", "", "Dashboard configuration used for layout and thresholds")
	replayCmd.Flags().StringVar(&replaySchemaPath, "schema", "", "Path to CUE schema file (embedded schema if empty)")
	replayCmd.MarkFlagRequired("input")
}

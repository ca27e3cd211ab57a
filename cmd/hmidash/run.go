package main

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hmidash/internal/admin"
	"hmidash/internal/config"
	"hmidash/internal/logging"
	"hmidash/internal/metrics"
	"hmidash/internal/sim"
)

var (
	runConfigPath string
	runSchemaPath string
	runTick       time.Duration
	runMode       string
	runRecord     string
	runAdminAddr  string
	runLogFile    string
	runLogLevel   string
	runSeed       int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the live dashboard",
	Long:  "run starts the simulator and renders every frame to the terminal, optionally recording frames and serving an admin API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}
		mode, err := resolveMode(runMode, term.IsTerminal(int(os.Stdout.Fd())))
		if err != nil {
			return err
		}
		logger, closeLog, err := openLogger(mode, runLogFile, runLogLevel)
		if err != nil {
			return err
		}
		defer closeLog()

		tickInterval := cfg.TickInterval
		if cmd.Flags().Changed("tick") {
			tickInterval = runTick
		}
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
			}
			tickInterval = d
		}
		if tickInterval <= 0 {
			return fmt.Errorf("tick interval must be positive, got %s", tickInterval)
		}

		adminAddr := runAdminAddr
		if env := os.Getenv("ADMIN_ADDR"); env != "" {
			adminAddr = env
		}

		var rnd *rand.Rand
		if runSeed != 0 {
			rnd = rand.New(rand.NewSource(runSeed))
		}

		rec := metrics.NewRecorder()
		writer, err := newWriters(cfg, mode, runRecord, false, rec)
		if err != nil {
			return err
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("closing writers failed", "err", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		simulator := sim.NewSimulator(os.Getenv("SESSION_ID"), cfg, writer, writer, tickInterval, rnd, nil)

		if adminAddr != "" {
			ln, err := net.Listen("tcp", adminAddr)
			if err != nil {
				return fmt.Errorf("admin listen on %s: %w", adminAddr, err)
			}
			srv := admin.NewServer(simulator, rec)
			writer.SetAdminStatus(true)
			go func() {
				if err := srv.Serve(ctx, ln); err != nil {
					logger.Error("admin server failed", "err", err)
				}
			}()
		}

		simulator.Run(ctx)
		logger.Info("dashboard stopped", "session_id", simulator.SessionID())
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to dashboard configuration YAML (stock profile if empty)")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "", "Path to CUE schema file (embedded schema if empty)")
	runCmd.Flags().DurationVar(&runTick, "tick", 500*time.Millisecond, "Simulation tick interval (e.g. 500ms, 1s)")
	runCmd.Flags().StringVar(&runMode, "mode", modeAuto, "Output mode: auto, tui, color or json")
	runCmd.Flags().StringVar(&runRecord, "record", "", "Path to record frames (JSONL); alert events go to <path>.alerts")
	runCmd.Flags().StringVar(&runAdminAddr, "admin-addr", "", "Listen address of the admin API (disabled if empty)")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to write logs (stderr if empty, discarded in tui mode)")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed for a reproducible session (time-based if 0)")
}

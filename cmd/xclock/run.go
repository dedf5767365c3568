package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nazgul72/xclock/internal/config"
	"github.com/nazgul72/xclock/internal/hookengine"
	"github.com/nazgul72/xclock/internal/logging"
	"github.com/nazgul72/xclock/internal/tooltip"
	"github.com/nazgul72/xclock/internal/winsys"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Install the clock hooks and pump events until interrupted",
		RunE:  runHook,
	}
}

func runHook(cmd *cobra.Command, args []string) error {
	// Low-level hooks deliver on the thread that installed them and pumps
	// messages; the goroutine running the pump must stay on that thread.
	runtime.LockOSThread()

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	loader := config.NewLoader(path)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags win over file and environment.
	if flagMode != "" {
		cfg.Engine.Mode = flagMode
	}
	if cmd.Flags().Changed("strict") {
		cfg.Engine.StrictTargets = flagStrict
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()
	logging.SetDefault(log)

	sys, err := winsys.New()
	if err != nil {
		return err
	}

	mode, err := tooltip.ParseMode(cfg.Engine.Mode)
	if err != nil {
		return err
	}

	mut := tooltip.New(sys, log.WithComponent("tooltip"), nil, tooltip.Options{
		Mode:           mode,
		Cooldown:       cfg.Engine.Cooldown(),
		OverlayTimeout: cfg.Engine.OverlayTimeout(),
		Labels:         tooltip.Labels{Uptime: cfg.Labels.Uptime, Week: cfg.Labels.Week},
	})
	engine := hookengine.New(sys, log.WithComponent("engine"), nil, mut, hookengine.Options{
		StrictTargets: cfg.Engine.StrictTargets,
		SettleDelay:   cfg.Engine.SettleDelay(),
		HoverDebounce: cfg.Engine.HoverDebounce(),
	})

	loader.OnChange(func(c *config.Config) {
		engine.SetDelays(c.Engine.SettleDelay(), c.Engine.HoverDebounce())
		mut.SetCooldown(c.Engine.Cooldown())
		log.Info("configuration reloaded", "path", path)
	})
	if err := loader.Watch(); err != nil {
		log.Warn("config watch unavailable", "error", err)
	}
	defer loader.Close()

	if err := engine.Start(); err != nil {
		return fmt.Errorf("start hook engine: %w", err)
	}
	defer engine.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Println("xclock running; hover over the taskbar clock for uptime and week number.")
	fmt.Println("Press Ctrl+C to exit.")

	for engine.IsRunning() {
		select {
		case <-sigCh:
			return nil
		default:
		}
		if !engine.PumpOne() {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = format
	lc.Output = cfg.Logging.Output
	if cfg.Logging.FilePath != "" {
		lc.FilePath = cfg.Logging.FilePath
	}
	return logging.New(lc)
}

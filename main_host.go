//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"colorbrowser/app"
	"colorbrowser/hal"
	"colorbrowser/internal/config"
	"colorbrowser/sparkos/services/publish"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var headless hal.HeadlessConfig
	var term hal.TerminalConfig
	var termMode, buttons bool
	var logPath string
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&headless.Script, "script", "", "Keys to play back in headless mode: u up, d down, s select, b back, . idle.")
	flag.BoolVar(&termMode, "term", false, "Render in the terminal.")
	flag.BoolVar(&buttons, "buttons", false, "Read push buttons from GPIO (pins from COLORBROWSER_BUTTON_*).")
	flag.StringVar(&logPath, "log", "", "Append log lines to this file instead of stdout.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	var host hal.HostConfig
	switch {
	case logPath != "":
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		host.Log = f
	case termMode:
		host.Log = io.Discard
	}
	if buttons {
		host.Buttons = &hal.ButtonPins{
			Up:     cfg.Buttons.UpPin,
			Select: cfg.Buttons.SelectPin,
			Down:   cfg.Buttons.DownPin,
			Poll:   cfg.Buttons.Poll,
		}
	}

	appCfg := app.Config{Topic: cfg.MQTT.Topic}
	if cfg.MQTT.Enabled() {
		client, err := publish.DialMQTT(cfg.MQTT.URL, cfg.MQTT.ClientID)
		if err != nil {
			return err
		}
		defer client.Close()
		appCfg.Publisher = client
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	switch {
	case headless.Enabled:
		err = hal.RunHeadless(ctx, newApp, headless, host)
	case termMode:
		term.Hz = headless.Hz
		err = hal.RunTerminal(ctx, newApp, term, host)
	default:
		err = hal.RunWindow(newApp, host)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

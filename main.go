package main

import (
	"flag"
	"fmt"
	"mcenroe/internal/config"
	"mcenroe/internal/fleet"
	"mcenroe/internal/probe"
	"mcenroe/internal/reporting"
	"mcenroe/internal/tui"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Config file (default $"+config.EnvVar+" or ~/"+config.FileName+")")
	format := flag.String("format", string(reporting.FormatANSI), "Output format: plain, ansi, zsh or bash")
	short := flag.Bool("short", false, "Only print the prompt line, without failure details")
	watch := flag.Duration("watch", 0, "Re-probe at this interval in a live table (e.g. 5s)")
	timeout := flag.Duration("timeout", 0, "Per-host timeout, overrides the config file")
	debug := flag.Bool("debug", false, "Log session details to stderr")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	outFormat, err := reporting.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	if *configPath == "" {
		if *configPath, err = config.Find(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	hosts, err := cfg.Hosts(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	logger := log.StandardLogger()
	dispatcher := fleet.NewDispatcher(probe.NewPinger(cfg.Probe(), logger), logger)
	dispatcher.Timeout = cfg.Timeout
	dispatcher.Limit = cfg.Concurrency

	if *watch > 0 {
		model := tui.NewStatusModel(hosts, dispatcher, *watch)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("Error running TUI: %v", err)
		}
		return
	}

	outcomes := dispatcher.Run(hosts)
	if err := reporting.Render(os.Stdout, outcomes, outFormat, *short); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
}

// Copyright 2025 The CodeServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the autocomplete server and CLI [DBG] application for
the code editor of the web tutorials.

Note: This is a BETA release. APIs and functionality may rapidly change.

CodeServe suggests HTML tags and attributes, CSS properties and values, and
JavaScript keywords, built-ins and the user's own declarations while a learner
types into the three-tab editor. It can operate as a MessagePack IPC server
behind an editor front-end, or as a CLI console for testing and debugging.

# Usage

Start the server with default settings:

	codeserve

Use a custom config file and enable debug mode:

	codeserve -config ./codeserve.toml -d

Run the CLI console on the CSS tab:

	codeserve -c -lang css

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_limit = 15
	empty_limit = 10
	min_prefix = 0
	max_prefix = 60
	watch = true

	[editor]
	char_width = 8
	line_height = 20
	anchor_gap = 5
	list_width = 320
	list_height = 320

	[symbols]
	dedupe = false

	[cli]
	default_language = "html"
	color = true

The config file is created with defaults if it doesn't exist. With watch set,
the server reloads it whenever it changes on disk.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. The front-end sends
its editor events and renders the dropdown state it gets back:

	{"id": "1", "op": "change", "lang": "css", "text": "disp", "cursor": 4}
	{"id": "1", "status": "ok", "visible": true, "sel": 0, "s": [{"w": "display", "r": 1, ...}], ...}

See package server for every op.

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run the CLI console instead of the server
	-config string
	    Path to a TOML config file
	-lang string
	    Starting tab: html, css or javascript (default from config)
	-limit int
	    Maximum suggestions per list (default from config)
	-rebuild-config
	    Write a fresh default config file and exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/codeserve/internal/cli"
	"github.com/bastiangx/codeserve/internal/logger"
	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/bastiangx/codeserve/pkg/server"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "codeserve"
	gh      = "https://github.com/bastiangx/codeserve"
)

// main only manages the flow; the server and CLI packages implement the logic.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a custom config file")
	langFlag := flag.String("lang", "", "Starting tab: html, css or javascript")
	limit := flag.Int("limit", 0, "Maximum suggestions per list")
	rebuild := flag.Bool("rebuild-config", false, "Write a fresh default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuild {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		path, _ := config.GetDefaultConfigPath()
		log.Printf("Default config written to %s", path)
		return
	}

	cfg, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *limit > 0 {
		if err := cfg.Update("", limit, nil, nil, nil, nil); err != nil {
			log.Fatalf("Failed to apply -limit: %v", err)
		}
	}
	if *langFlag != "" {
		if _, err := suggest.ParseLanguage(*langFlag); err != nil {
			log.Fatalf("Invalid -lang: %v", err)
		}
		cfg.CLI.DefaultLanguage = *langFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// CLI is mainly for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		runCLI(ctx, cfg)
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(cfg, configPath, server.WithVersion(Version))
	showStartupInfo(configPath, srv.Session())

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
	}
}

func runCLI(ctx context.Context, cfg *config.Config) {
	lang, err := suggest.ParseLanguage(cfg.CLI.DefaultLanguage)
	if err != nil {
		log.Warnf("%v, starting on html", err)
		lang = suggest.Markup
	}
	ranker := suggest.NewRanker(suggest.NewCorpus(), suggest.RankerOptions{
		Limit:         cfg.Server.MaxLimit,
		EmptyLimit:    cfg.Server.EmptyLimit,
		DedupeSymbols: cfg.Symbols.Dedupe,
	})
	log.Debug("Input info:", "lang", lang, "limit", cfg.Server.MaxLimit, "color", cfg.CLI.Color)

	handler := cli.NewInputHandler(ranker, lang, cfg.CLI.Color, os.Stdout)
	done := make(chan error, 1)
	go func() { done <- handler.Start(os.Stdin) }()

	select {
	case err := <-done:
		if err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case <-ctx.Done():
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ CodeServe ] Autocomplete for the tutorial code editor")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(configPath, session string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Infof("session: %s", session)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

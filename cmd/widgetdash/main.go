// ABOUTME: Entry point for the widgetdash demo server
// ABOUTME: Dispatches the serve, init, health and scripts subcommands

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/widgetdash/internal/config"
	"github.com/2389/widgetdash/internal/demo"
	"github.com/2389/widgetdash/internal/server"
)

// Version is set at build time.
var version = "dev"

const banner = `
          _     _            _       _           _
__      _(_) __| | __ _  ___| |_ __| | __ _ ___| |__
\ \ /\ / / |/ _' |/ _' |/ _ \ __/ _' |/ _' / __| '_ \
 \ V  V /| | (_| | (_| |  __/ || (_| | (_| \__ \ | | |
  \_/\_/ |_|\__,_|\__, |\___|\__\__,_|\__,_|___/_| |_|
                  |___/
`

// getConfigPath returns the path to the config file.
// Priority: WIDGETDASH_CONFIG env var > XDG_CONFIG_HOME/widgetdash/config.yaml > ~/.config/widgetdash/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("WIDGETDASH_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "widgetdash", "config.yaml")
}

// getDataPath returns the widgetdash data directory.
// Priority: XDG_DATA_HOME/widgetdash > ~/.local/share/widgetdash
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "widgetdash")
}

func usage() {
	fmt.Println("Usage: widgetdash <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Start the demo server")
	fmt.Println("  init     Create a new config file interactively")
	fmt.Println("  health   Check server health")
	fmt.Println("  scripts  List the demo pages")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin, os.Stdout, getConfigPath(), getDataPath())
	case "health":
		err = runHealth(ctx)
	case "scripts":
		runScripts()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     http://%s/\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	fmt.Printf("CSV out:  %s\n", cfg.Output.CSVPath)
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:  %s\n", cfg.Metrics.Path)
	}
	fmt.Println()

	logger.Info("starting widgetdash",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func runScripts() {
	registry := demo.NewRegistry(demo.FileSink{Path: config.DefaultCSVPath}, nil)
	for _, s := range registry.List() {
		fmt.Printf("  /app/%-10s %s\n", s.Name, s.Title)
	}
}

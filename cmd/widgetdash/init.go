// ABOUTME: Interactive config file generator for widgetdash init
// ABOUTME: Prompts for each setting with a default and writes YAML

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389/widgetdash/internal/config"
)

// initAnswers holds the settings collected by runInit
type initAnswers struct {
	HTTPAddr   string
	DBPath     string
	CSVPath    string
	SessionTTL string
	LogLevel   string
	LogFormat  string
	Metrics    bool
}

func runInit(in io.Reader, out io.Writer, defaultConfigPath, defaultDataPath string) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "widgetdash configuration setup")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)

	outputFile := prompt(reader, out, "Config file path", defaultConfigPath)

	if _, err := os.Stat(outputFile); err == nil {
		if !isYes(prompt(reader, out, "File exists. Overwrite?", "no")) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	var a initAnswers

	fmt.Fprintln(out, "\n--- Server ---")
	a.HTTPAddr = prompt(reader, out, "HTTP address", config.DefaultHTTPAddr)

	fmt.Fprintln(out, "\n--- Storage ---")
	a.DBPath = prompt(reader, out, "SQLite session database path", filepath.Join(defaultDataPath, "sessions.db"))
	a.CSVPath = prompt(reader, out, "People table CSV output path", config.DefaultCSVPath)
	a.SessionTTL = prompt(reader, out, "Session idle TTL", config.DefaultSessionTTL.String())

	fmt.Fprintln(out, "\n--- Logging ---")
	a.LogLevel = prompt(reader, out, "Log level (debug/info/warn/error)", "info")
	a.LogFormat = prompt(reader, out, "Log format (text/json)", "text")

	fmt.Fprintln(out, "\n--- Metrics ---")
	a.Metrics = isYes(prompt(reader, out, "Expose Prometheus metrics?", "no"))

	content := renderConfig(a)
	if _, err := config.Parse([]byte(content)); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	dataDir := filepath.Dir(a.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintf(out, "Data directory: %s\n", dataDir)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  widgetdash serve")

	return nil
}

func renderConfig(a initAnswers) string {
	var b strings.Builder
	b.WriteString("# widgetdash configuration\n")
	b.WriteString("# Generated by widgetdash init\n\n")

	b.WriteString("server:\n")
	fmt.Fprintf(&b, "  http_addr: %q\n\n", a.HTTPAddr)

	b.WriteString("database:\n")
	fmt.Fprintf(&b, "  path: %q\n\n", a.DBPath)

	b.WriteString("output:\n")
	fmt.Fprintf(&b, "  csv_path: %q\n\n", a.CSVPath)

	b.WriteString("sessions:\n")
	fmt.Fprintf(&b, "  ttl: %q\n\n", a.SessionTTL)

	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  level: %q\n", a.LogLevel)
	fmt.Fprintf(&b, "  format: %q\n\n", a.LogFormat)

	b.WriteString("metrics:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", a.Metrics)
	fmt.Fprintf(&b, "  path: %q\n", config.DefaultMetrics)

	return b.String()
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if err != nil && input == "" {
		// EOF without input takes the default
		fmt.Fprintln(out)
		return defaultVal
	}

	if input == "" {
		return defaultVal
	}
	return input
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "yes" || s == "y"
}

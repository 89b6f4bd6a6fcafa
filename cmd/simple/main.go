package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/qforge/qlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[qlog]
  level = -4 # Trace
  threading_policy = "queued"
  overflow_policy = "drop"
  queue_capacity = 1024
  directory = "./simple_logs"
  format = "txt"
  extension = "log"
  show_timestamp = true
  show_level = true
  flush_interval_ms = 100
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	// Create dummy config file
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults potentially
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
		// defer os.Remove(configFile) // Remove to keep the saved config file
	}

	cfg, err := qlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = qlog.DefaultConfig()
		cfg.Directory = "./simple_logs"
	}

	// --- Initialize Logger ---
	logger, err := qlog.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", cfg.Directory)

	// Install as the process-wide logger so other packages can use the
	// package-level helpers.
	if err := qlog.SetGlobal(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to install global logger: %v\n", err)
		os.Exit(1)
	}

	// --- Log Some Messages ---
	qlog.Trace("application starting", "pid", os.Getpid())
	qlog.Info("listening for work")
	qlog.Message("plain operator-facing message")
	qlog.Warn("disk usage above threshold", "pct", 81)
	qlog.Error("sample failure", "attempt", 3)

	// Concurrent producers through the shared queue.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				qlog.Info("worker progress", "worker", w, "step", i)
			}
		}(w)
	}
	wg.Wait()

	// Synchronous flush so everything is on disk before we read stats.
	if err := qlog.FlushWait(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush failed: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Processed: %d, Dropped: %d, Queue depth: %d\n",
		stats.Processed, stats.Dropped, stats.QueueDepth)

	// --- Shutdown ---
	if err := qlog.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger shutdown complete.")
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// Atomics Demonstration Driver - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Main Entry Point & Scenario Orchestration
//
// Description:
//   Runs the scenario suite over the lock-free primitives in phases.
//   Configure → Run Scenarios → Persist → Summarise
//
// Architecture:
//   - Phase 0: Flags, YAML config, log level, signal handling
//   - Phase 1: Scenario suite in fixed order, each outcome recorded
//   - Phase 2: JSON report (file or stdout) and SQLite run history
//   - Phase 3: Summary and exit status (1 when any scenario failed)
//
// SIGINT/SIGTERM request shutdown: the running scenario finishes or bails
// out, the rest are recorded as interrupted, and the report is still saved.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atomics/config"
	"atomics/control"
	"atomics/debug"
	"atomics/harness"
	"atomics/report"
)

// options are the command-line overrides.  Flags left unset defer to the
// config file.
type options struct {
	configPath string
	dbPath     string
	jsonPath   string
	history    int
}

func parseFlags(args []string) (options, map[string]bool, error) {
	var opts options
	fs := flag.NewFlagSet("atomics", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (defaults when empty)")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite run history file (empty disables history)")
	fs.StringVar(&opts.jsonPath, "json", "", "report output file (empty or - for stdout)")
	fs.IntVar(&opts.history, "history", 0, "print the N most recent stored runs and exit")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MAIN ORCHESTRATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main without the process exit, returning the exit status.
func run(args []string) int {
	// PHASE 0: Configuration
	opts, set, err := parseFlags(args)
	if err != nil {
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		debug.DropError("CONFIG", err)
		return 2
	}
	if set["db"] {
		cfg.Output.HistoryDB = opts.dbPath
	}
	if set["json"] {
		cfg.Output.ReportOut = opts.jsonPath
	}
	if err := debug.SetLevelName(cfg.Output.LogLevel); err != nil {
		debug.DropError("CONFIG", err)
		return 2
	}

	if opts.history > 0 {
		if err := printHistory(cfg.Output.HistoryDB, opts.history); err != nil {
			debug.DropError("HISTORY", err)
			return 1
		}
		return 0
	}

	suite, err := harness.Suite(cfg)
	if err != nil {
		debug.DropError("CONFIG", err)
		return 2
	}

	stopSignals := setupSignalHandling()
	defer stopSignals()

	// PHASE 1: Scenario execution
	r := report.New(time.Now())
	debug.Logger().Info().Str("run_id", r.RunID).Int("scenarios", len(suite)).Msg("starting run")
	harness.RunAll(suite, r)

	// PHASE 2: Persistence
	status := 0
	if err := writeReport(cfg.Output.ReportOut, r); err != nil {
		debug.DropError("REPORT", err)
		status = 1
	}
	if cfg.Output.HistoryDB != "" {
		if err := saveHistory(cfg.Output.HistoryDB, r); err != nil {
			debug.DropError("HISTORY", err)
			status = 1
		}
	}

	// PHASE 3: Summary
	if !r.Passed() {
		debug.Logger().Error().Strs("failed", r.Failed()).Str("run_id", r.RunID).Msg("run failed")
		return 1
	}
	debug.DropMessage("DONE", "all scenarios passed")
	return status
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PERSISTENCE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// writeReport writes the JSON report to path, or stdout for "" and "-".
func writeReport(path string, r *report.Report) error {
	b, err := report.Encode(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func saveHistory(path string, r *report.Report) error {
	store, err := report.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return store.Save(ctx, r)
}

func printHistory(path string, n int) error {
	if path == "" {
		return fmt.Errorf("history requested but no database configured")
	}
	store, err := report.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), n)
	if err != nil {
		return err
	}
	for _, r := range runs {
		verdict := "PASS"
		if !r.Passed() {
			verdict = "FAIL"
		}
		fmt.Printf("%s  %s  %s  %d scenarios  %v\n",
			r.StartedAt.Format(time.RFC3339), r.RunID, verdict, len(r.Scenarios), r.Failed())
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SIGNAL HANDLING
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// setupSignalHandling turns SIGINT/SIGTERM into control.Shutdown.  The
// returned function detaches the handler.
func setupSignalHandling() func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	quit := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			debug.DropMessage("SIGNAL", "received "+sig.String()+", shutting down")
			control.Shutdown()
		case <-quit:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(quit)
	}
}

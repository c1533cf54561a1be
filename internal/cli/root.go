// Package cli implements the command-line interface for cubetimer.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cubetimer"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubetimer",
	Short: "Speedsolving timer and solve history",
	Long: `cubetimer - a speedcubing timer with CFOP phase analysis.

Time solves, keep per-type sessions with WCA-style statistics, and break
recorded solves down by solving phase (cross, F2L pairs, OLL, PLL).`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database directory (default: ~/.cubetimer/history)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// defaultDBPath returns the default database directory in the user's home.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubetimer", "history"), nil
}

// openHistory opens the history database from the --db flag or the
// default path. Partial load failures are reported as warnings; the
// successfully loaded history is still returned.
func openHistory() (*cubetimer.History, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = defaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	var opts []cubetimer.Option
	if verbose {
		opts = append(opts, cubetimer.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	history := cubetimer.NewHistory(cubetimer.NewUUIDGenerator(), opts...)
	err := history.OpenDatabase(path, nil)
	if err != nil {
		if !history.IsDatabaseOpen() {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "warning: some records could not be loaded: %v\n", err)
	}
	return history, nil
}

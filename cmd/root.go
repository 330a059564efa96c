package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-stats/internal/nflverse"
	"github.com/pable/go-nfl-stats/internal/season"
)

var (
	dbPath   string
	cacheDir string
)

var rootCmd = &cobra.Command{
	Use:   "nflstats",
	Short: "NFL play-by-play stat tool",
	Long:  "Fetch nflverse play-by-play data and compute player/team stat summaries.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	home := mustUserHome()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db",
		filepath.Join(home, ".nflstats", "stats.db"), "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache",
		filepath.Join(home, ".nflstats", "cache"), "directory for downloaded nflverse assets")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dropCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func newClient() *nflverse.Client {
	return nflverse.New(cacheDir)
}

// parseSeasons resolves positional season arguments, defaulting to the
// most recent season when none are given.
func parseSeasons(args []string) ([]int, error) {
	if len(args) == 0 {
		return []int{season.MostRecent(time.Now(), false)}, nil
	}
	var seasons []int
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid season %q", part)
			}
			seasons = append(seasons, s)
		}
	}
	return seasons, nil
}

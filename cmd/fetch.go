package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [seasons...]",
	Short: "Download nflverse assets into the local cache",
	Long: `Download the play-by-play and play stat CSV assets for the given
seasons so later runs work offline. Already cached assets are skipped.

Examples:
  # Most recent season
  nflstats fetch

  # A range of seasons
  nflstats fetch 2020 2021 2022`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	seasons, err := parseSeasons(args)
	if err != nil {
		return err
	}

	client := newClient()
	for _, s := range seasons {
		if err := client.Fetch(cmd.Context(), s); err != nil {
			return fmt.Errorf("fetching season %d: %w", s, err)
		}
		fmt.Fprintf(os.Stdout, "Season %d cached.\n", s)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/aggregator"
	"github.com/mkoval/go-lol-metrics/internal/logging"
	"github.com/mkoval/go-lol-metrics/internal/model"
	"github.com/mkoval/go-lol-metrics/internal/report"
)

var buildsVersion string

// buildsCmd prints the most popular item per role and build slot.
var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Show the most popular item builds per role for a game version",
	RunE:  runBuilds,
}

func init() {
	buildsCmd.Flags().StringVar(&buildsVersion, "version", "", "exact short game version (default: current)")
}

func runBuilds(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	version := buildsVersion
	if version == "" {
		client, err := newRiotClient()
		if err != nil {
			return err
		}
		current, err := client.CurrentVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("current version: %w", err)
		}
		version = model.ShortVersion(current)
	}

	matches, err := db.MatchesByVersion(version)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("No matches stored for version %s\n", version)
		return nil
	}

	fmt.Printf("Version %s: %d matches\n\n", version, len(matches))
	builds := aggregator.MostPopularItemsByRoleAndSlot(matches, logging.New())
	report.PrintPopularBuilds(os.Stdout, builds)
	return nil
}

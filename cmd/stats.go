package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/aggregator"
	"github.com/mkoval/go-lol-metrics/internal/model"
	"github.com/mkoval/go-lol-metrics/internal/report"
)

var statsVersion string

// statsCmd prints per-role performance for one game version.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-role performance for a game version",
	Long: `Aggregates stored matches into per-role stats: game count, win
ratio, KDA, most frequent lane opponent, average game length and CS per
minute. The version is a short game version (e.g. 14.23) and matches by
prefix, so '14' covers a whole season. Defaults to the current version.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsVersion, "version", "", "short game version prefix (default: current)")
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	version := statsVersion
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

	matches, err := db.MatchesByVersionPrefix(version)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("No matches stored for version %s\n", version)
		return nil
	}

	fmt.Printf("Version %s: %d matches\n\n", version, len(matches))
	report.PrintRoleStats(os.Stdout, aggregator.RoleStats(matches))

	fmt.Println()
	report.PrintRolePercentages(os.Stdout, aggregator.RolePercentage(matches))
	return nil
}

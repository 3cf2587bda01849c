package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listVersion string

// listCmd prints the stored match history, newest first.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listVersion, "version", "", "restrict to a short game version prefix")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.MatchesByVersionPrefix(listVersion)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches stored.")
		return nil
	}

	fmt.Printf("%-18s %-12s %-16s %-8s %-6s %-9s %s\n",
		"MATCH", "DATE", "CHAMPION", "ROLE", "WIN", "K/D/A", "VERSION")
	for _, m := range matches {
		result := "loss"
		if m.Win {
			result = "win"
		}
		fmt.Printf("%-18s %-12s %-16s %-8s %-6s %-9s %s\n",
			m.MatchID,
			m.MatchDate.Format("2006-01-02"),
			m.Champion,
			m.Role,
			result,
			fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists),
			m.GameVersion,
		)
	}
	fmt.Printf("\n%d matches\n", len(matches))
	return nil
}

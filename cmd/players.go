package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/report"
)

// playersCmd lists the tracked player roster.
var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List tracked players",
	RunE:  runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	players, err := db.Players()
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Println("No players tracked yet. Use 'lolmetrics addplayer <gameName#tagLine>'.")
		return nil
	}

	report.PrintPlayers(os.Stdout, players)
	return nil
}

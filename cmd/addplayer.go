package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/model"
)

// addPlayerCmd resolves a Riot ID to a PUUID and stores the player for
// tracking.
var addPlayerCmd = &cobra.Command{
	Use:   "addplayer <gameName#tagLine>",
	Short: "Start tracking a player by Riot ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddPlayer,
}

func runAddPlayer(cmd *cobra.Command, args []string) error {
	gameName, tagLine, err := splitRiotID(args[0])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	existing, err := db.PlayerByRiotID(gameName, tagLine)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("%s is already tracked\n", existing.RiotID())
		return nil
	}

	client, err := newRiotClient()
	if err != nil {
		return err
	}

	account, err := client.Account(cmd.Context(), gameName, tagLine)
	if err != nil {
		return fmt.Errorf("lookup account %s#%s: %w", gameName, tagLine, err)
	}

	// Prefer the canonical casing the API reports over the user's input.
	player := model.Player{
		UniquePlayerID: account.PUUID,
		GameName:       account.GameName,
		TagLine:        account.TagLine,
		Region:         region,
	}
	if player.GameName == "" {
		player.GameName = gameName
	}
	if player.TagLine == "" {
		player.TagLine = tagLine
	}

	if err := db.SavePlayer(&player); err != nil {
		return err
	}
	fmt.Printf("Tracking %s (region=%s)\n", player.RiotID(), player.Region)
	return nil
}

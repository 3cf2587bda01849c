package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/catalog"
	"github.com/mkoval/go-lol-metrics/internal/logging"
	"github.com/mkoval/go-lol-metrics/internal/rebuild"
	"github.com/mkoval/go-lol-metrics/internal/riot"
)

// ingest command flags.
var (
	// ingestPlayer is the Riot ID (gameName#tagLine) of the tracked player.
	ingestPlayer string
	// ingestCount is the number of recent matches to consider.
	ingestCount int
)

// ingestCmd is the cobra command for rebuilding and storing recent matches.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch, rebuild and store recent matches for a tracked player",
	Long: `Syncs the item catalog if stale, fetches the player's recent match
ids, keeps the supported queues (draft, ranked solo, ranked flex), rebuilds
each new match from its timeline and end-state, and stores the result.

Examples:
  lolmetrics ingest --player Faker#KR1 --count 20`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestPlayer, "player", "", "Riot ID of a tracked player (required)")
	ingestCmd.Flags().IntVar(&ingestCount, "count", 10, "number of recent matches to consider")
	_ = ingestCmd.MarkFlagRequired("player")
}

func runIngest(cmd *cobra.Command, args []string) error {
	gameName, tagLine, err := splitRiotID(ingestPlayer)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := newRiotClient()
	if err != nil {
		return err
	}
	log := logging.New()
	ctx := cmd.Context()

	player, err := db.PlayerByRiotID(gameName, tagLine)
	if err != nil {
		return err
	}
	if player == nil {
		return fmt.Errorf("player %s#%s is not tracked: run 'lolmetrics addplayer %s#%s' first",
			gameName, tagLine, gameName, tagLine)
	}

	version, err := client.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("current version: %w", err)
	}

	// Keep the catalog fresh so item names resolve for the new patch.
	syncer := catalog.NewSyncer(client, db)
	syncResult, err := syncer.SyncIfStale(ctx, version, catalog.ItemExceptions, catalog.ExcludedItems)
	if err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}
	if syncResult.Changed {
		fmt.Printf("Catalog synced for %s: %d items upserted\n", version, syncResult.ItemsUpserted)
	}

	runeNames, err := client.Runes(ctx, version)
	if err != nil {
		return fmt.Errorf("rune data: %w", err)
	}

	ids, err := client.DraftMatchIDs(ctx, player.UniquePlayerID, ingestCount)
	if err != nil {
		return fmt.Errorf("match history: %w", err)
	}
	fmt.Printf("Player: %s  candidates=%d\n", player.RiotID(), len(ids))

	// In-run guard against the upstream list repeating an id; the database
	// primary key remains the durable dedup authority.
	seen := bloom.NewWithEstimates(uint(ingestCount)*4+64, 0.001)

	reconstructor := rebuild.New(client, db)

	stored, skipped := 0, 0
	for i, id := range ids {
		if seen.TestString(id) {
			continue
		}
		seen.AddString(id)

		exists, err := db.MatchExists(id)
		if err != nil {
			return err
		}
		if exists {
			fmt.Printf("  [skip] %s: already stored\n", id)
			skipped++
			continue
		}

		match, err := reconstructor.Reconstruct(ctx, id, runeNames, player.UniquePlayerID)
		if err != nil {
			switch {
			case errors.Is(err, rebuild.ErrPlayerNotInMatch), errors.Is(err, rebuild.ErrZeroDuration):
				fmt.Fprintf(os.Stderr, "  [skip] %s: %v\n", id, err)
				skipped++
				continue
			case riot.IsTransient(err):
				log.Warn("transient failure, match left for a later run", "match", id, "err", err)
				skipped++
				continue
			default:
				return fmt.Errorf("rebuild %s: %w", id, err)
			}
		}

		if err := db.SaveMatch(match); err != nil {
			return err
		}
		fmt.Printf("[%d/%d] %s  %s  %s  win=%v\n",
			i+1, len(ids), id, match.Champion, match.Role, match.Win)
		stored++
	}

	fmt.Printf("\nDone: %d stored, %d skipped (of %d candidates)\n", stored, skipped, len(ids))
	return nil
}

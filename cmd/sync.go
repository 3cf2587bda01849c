package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/catalog"
)

// syncCmd reconciles the local item catalog against the current game version.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the item catalog against the current game version",
	Long: `Checks the current game version on Data Dragon and, if the local
catalog was synced against an older version, refreshes the tracked item set:
new items are inserted and renamed items updated in place.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := newRiotClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	version, err := client.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("current version: %w", err)
	}

	syncer := catalog.NewSyncer(client, db)
	result, err := syncer.SyncIfStale(ctx, version, catalog.ItemExceptions, catalog.ExcludedItems)
	if err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	if !result.Changed {
		fmt.Printf("Catalog already synced for %s\n", version)
		return nil
	}
	fmt.Printf("Catalog synced for %s: %d items upserted\n", version, result.ItemsUpserted)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mkoval/go-lol-metrics/internal/riot"
	"github.com/mkoval/go-lol-metrics/internal/storage"
)

var (
	dbPath string
	region string
)

var rootCmd = &cobra.Command{
	Use:   "lolmetrics",
	Short: "League of Legends match analytics tool",
	Long: `Tracks players by Riot ID, rebuilds their recent matches from the
match-v5 timeline and end-state, and reports per-role performance and the
most popular item builds per patch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional; flags and real env always win over .env values.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".lolmetrics", "metrics.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&region, "region", "europe",
		"regional routing value (americas, asia, europe, sea)")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(buildsCmd)
	rootCmd.AddCommand(listCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openDB creates the database directory if needed and opens the store.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newRiotClient builds an API client from the configured region and the Riot
// API key found in the environment or the key file.
func newRiotClient() (*riot.Client, error) {
	key, err := loadRiotAPIKey()
	if err != nil {
		return nil, err
	}
	return riot.NewClient(riot.Config{APIKey: key, Region: region}), nil
}

// loadRiotAPIKey returns the Riot API key from the RIOT_API_KEY environment
// variable or ~/.lolmetrics/riot_api_key file.
func loadRiotAPIKey() (string, error) {
	if key := os.Getenv("RIOT_API_KEY"); key != "" {
		return key, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(home, ".lolmetrics", "riot_api_key"))
	if err != nil {
		return "", fmt.Errorf("Riot API key not found: set RIOT_API_KEY or create ~/.lolmetrics/riot_api_key")
	}
	return strings.TrimSpace(string(data)), nil
}

// splitRiotID parses a "gameName#tagLine" argument.
func splitRiotID(arg string) (string, string, error) {
	name, tag, ok := strings.Cut(arg, "#")
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("invalid Riot ID %q: expected gameName#tagLine", arg)
	}
	return name, tag, nil
}

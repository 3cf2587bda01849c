package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mkoval/go-lol-metrics/internal/model"
)

// MatchExists returns true if a match with the given id is already stored.
// This is the sole dedup authority: callers must check it before spending
// upstream calls on reconstruction.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch inserts a reconstructed match. The match_id primary key makes a
// duplicate insert fail loudly rather than silently overwrite.
func (db *DB) SaveMatch(m *model.Match) error {
	_, err := db.conn.Exec(`
		INSERT INTO matches(
			match_id, player_unique_id, match_date, role, win, opponent,
			summoner_spells, champion, game_version, game_duration, rune_details,
			kills, deaths, assists, total_minions_killed, minions_per_minute,
			q_skill_usage, w_skill_usage, e_skill_usage, r_skill_usage,
			all_in_pings, assist_me_pings, command_pings, enemy_missing_pings,
			enemy_vision_pings, get_back_pings, need_vision_pings, on_my_way_pings,
			push_pings, gold_earned, gold_spent, build
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.MatchID, m.PlayerUniqueID, m.MatchDate.UnixMilli(), m.Role, boolInt(m.Win), m.Opponent,
		m.SummonerSpells, m.Champion, m.GameVersion, m.GameDuration, m.RuneDetails,
		m.Kills, m.Deaths, m.Assists, m.TotalMinionsKilled, m.MinionsPerMinute,
		m.QSkillUsage, m.WSkillUsage, m.ESkillUsage, m.RSkillUsage,
		m.AllInPings, m.AssistMePings, m.CommandPings, m.EnemyMissingPings,
		m.EnemyVisionPings, m.GetBackPings, m.NeedVisionPings, m.OnMyWayPings,
		m.PushPings, m.GoldEarned, m.GoldSpent, m.Build,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", m.MatchID, err)
	}
	return nil
}

const matchColumns = `match_id, player_unique_id, match_date, role, win, opponent,
	summoner_spells, champion, game_version, game_duration, rune_details,
	kills, deaths, assists, total_minions_killed, minions_per_minute,
	q_skill_usage, w_skill_usage, e_skill_usage, r_skill_usage,
	all_in_pings, assist_me_pings, command_pings, enemy_missing_pings,
	enemy_vision_pings, get_back_pings, need_vision_pings, on_my_way_pings,
	push_pings, gold_earned, gold_spent, build`

// MatchesByVersionPrefix returns matches whose short game version starts with
// the given prefix, ordered by match date descending.
func (db *DB) MatchesByVersionPrefix(prefix string) ([]model.Match, error) {
	rows, err := db.conn.Query(
		"SELECT "+matchColumns+" FROM matches WHERE game_version LIKE ? ORDER BY match_date DESC",
		prefix+"%")
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

// MatchesByVersion returns matches recorded under the exact short game
// version, ordered by match date descending.
func (db *DB) MatchesByVersion(version string) ([]model.Match, error) {
	rows, err := db.conn.Query(
		"SELECT "+matchColumns+" FROM matches WHERE game_version = ? ORDER BY match_date DESC",
		version)
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]model.Match, error) {
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var dateMs int64
		var winInt int
		if err := rows.Scan(
			&m.MatchID, &m.PlayerUniqueID, &dateMs, &m.Role, &winInt, &m.Opponent,
			&m.SummonerSpells, &m.Champion, &m.GameVersion, &m.GameDuration, &m.RuneDetails,
			&m.Kills, &m.Deaths, &m.Assists, &m.TotalMinionsKilled, &m.MinionsPerMinute,
			&m.QSkillUsage, &m.WSkillUsage, &m.ESkillUsage, &m.RSkillUsage,
			&m.AllInPings, &m.AssistMePings, &m.CommandPings, &m.EnemyMissingPings,
			&m.EnemyVisionPings, &m.GetBackPings, &m.NeedVisionPings, &m.OnMyWayPings,
			&m.PushPings, &m.GoldEarned, &m.GoldSpent, &m.Build,
		); err != nil {
			return nil, err
		}
		m.MatchDate = time.UnixMilli(dateMs).UTC()
		m.Win = winInt != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// ItemsByIDs returns the catalog items for the given ids. Ids missing from
// the catalog are simply absent from the result, not an error.
func (db *DB) ItemsByIDs(ids []int) (map[int]model.Item, error) {
	out := make(map[int]model.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.Query("SELECT id, name FROM items WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		out[item.ID] = item
	}
	return out, rows.Err()
}

// ItemByID returns one catalog item. Absence is an error here: this lookup is
// only used where the id is expected to exist.
func (db *DB) ItemByID(id int) (*model.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("item id must be positive, got %d", id)
	}
	var item model.Item
	err := db.conn.QueryRow("SELECT id, name FROM items WHERE id = ?", id).Scan(&item.ID, &item.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d not found in catalog", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemName returns the display name for an item id, or "Unknown Item" when
// the id is not in the catalog.
func (db *DB) ItemName(id int) (string, error) {
	var name string
	err := db.conn.QueryRow("SELECT name FROM items WHERE id = ?", id).Scan(&name)
	if err == sql.ErrNoRows {
		return "Unknown Item", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// InsertItems batch-inserts new catalog items in one transaction.
func (db *DB) InsertItems(items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO items(id, name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.Exec(item.ID, item.Name); err != nil {
			return fmt.Errorf("insert item %d: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// UpdateItemName renames an existing catalog item in place.
func (db *DB) UpdateItemName(id int, name string) error {
	_, err := db.conn.Exec("UPDATE items SET name = ? WHERE id = ?", name, id)
	return err
}

// SyncedVersion returns the last fully-synced catalog version, or "" if no
// sync has ever completed. Absence is a normal state, not an error.
func (db *DB) SyncedVersion() (string, error) {
	var version string
	err := db.conn.QueryRow("SELECT version FROM game_version WHERE id = 1").Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version, nil
}

// RecordSyncedVersion upserts the singleton version record. Idempotent.
func (db *DB) RecordSyncedVersion(version string) error {
	_, err := db.conn.Exec(`
		INSERT INTO game_version(id, version) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version`, version)
	return err
}

// SavePlayer stores a tracked player. Saving the same PUUID twice fails on
// the unique constraint.
func (db *DB) SavePlayer(p *model.Player) error {
	res, err := db.conn.Exec(`
		INSERT INTO players(unique_player_id, game_name, tag_line, region)
		VALUES (?, ?, ?, ?)`,
		p.UniquePlayerID, p.GameName, p.TagLine, p.Region)
	if err != nil {
		return fmt.Errorf("insert player %s#%s: %w", p.GameName, p.TagLine, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		p.ID = id
	}
	return nil
}

// Players returns all tracked players.
func (db *DB) Players() ([]model.Player, error) {
	rows, err := db.conn.Query(
		"SELECT id, unique_player_id, game_name, tag_line, region FROM players ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.UniquePlayerID, &p.GameName, &p.TagLine, &p.Region); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PlayerByRiotID finds a tracked player by game name and tag line. Returns
// nil when no such player is stored.
func (db *DB) PlayerByRiotID(gameName, tagLine string) (*model.Player, error) {
	var p model.Player
	err := db.conn.QueryRow(`
		SELECT id, unique_player_id, game_name, tag_line, region
		FROM players WHERE game_name = ? AND tag_line = ?`, gameName, tagLine).
		Scan(&p.ID, &p.UniquePlayerID, &p.GameName, &p.TagLine, &p.Region)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

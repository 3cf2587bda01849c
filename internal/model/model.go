package model

import (
	"strings"
	"time"
)

// Item is one entry of the local item catalog. The ID is the upstream
// Data Dragon item id and is never regenerated locally.
type Item struct {
	ID   int
	Name string
}

// Player is a tracked account identified by its upstream PUUID.
type Player struct {
	ID             int64
	UniquePlayerID string // PUUID
	GameName       string
	TagLine        string
	Region         string
}

// RiotID returns the player's display id in "GameName#TagLine" form.
func (p *Player) RiotID() string {
	return p.GameName + "#" + p.TagLine
}

// Match is one reconstructed match for a tracked player. Created exactly once
// per MatchID and never mutated afterwards.
type Match struct {
	MatchID        string
	PlayerUniqueID string
	MatchDate      time.Time
	Role           string
	Win            bool
	Opponent       string
	SummonerSpells string
	Champion       string
	GameVersion    string // short form, "major.minor"
	GameDuration   int    // seconds
	RuneDetails    string

	Kills   int
	Deaths  int
	Assists int

	TotalMinionsKilled int // lane + neutral minions
	MinionsPerMinute   float64

	QSkillUsage int
	WSkillUsage int
	ESkillUsage int
	RSkillUsage int

	AllInPings        int
	AssistMePings     int
	CommandPings      int
	EnemyMissingPings int
	EnemyVisionPings  int
	GetBackPings      int
	NeedVisionPings   int
	OnMyWayPings      int
	PushPings         int

	GoldEarned int
	GoldSpent  int

	// Build is the ordered final item load-out, up to 6 names joined by ", ".
	Build string
}

// RoleStat is a derived per-role summary over a set of matches. It is
// recomputed on demand and never persisted.
type RoleStat struct {
	Role                 string
	GameCount            int
	WinRatio             float64 // mean of win=1 / loss=0, in [0,1]
	KDA                  float64
	MostFrequentOpponent string
	AverageGameDuration  string // "h:mm:ss"
	MinionsPerMinute     float64
}

// SyncResult reports the outcome of one item-catalog sync attempt.
type SyncResult struct {
	Changed       bool
	ItemsUpserted int
}

// NormalizeRole maps the upstream "UTILITY" team position to "SUPPORT".
// Every other role label passes through unchanged. Applied at both
// ingestion and aggregation so a raw UTILITY role can never be stored
// or reported.
func NormalizeRole(role string) string {
	if role == "UTILITY" {
		return "SUPPORT"
	}
	return role
}

// ShortVersion reduces a full game version like "14.10.589.1234" to its
// "major.minor" prefix. Shorter inputs are returned as-is.
func ShortVersion(full string) string {
	parts := strings.SplitN(full, ".", 3)
	if len(parts) < 2 {
		return full
	}
	return parts[0] + "." + parts[1]
}

// ParseBuild splits a stored build string back into its ordered item names.
// Empty segments are dropped.
func ParseBuild(build string) []string {
	var items []string
	for _, part := range strings.Split(build, ", ") {
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

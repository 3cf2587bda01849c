// Package aggregator computes per-role summaries and item-build popularity
// tables over persisted match history.
package aggregator

import (
	"fmt"
	"log/slog"

	"github.com/mkoval/go-lol-metrics/internal/model"
)

// EmptySlotName fills a build slot for which no item was ever observed.
// Slots are always reported, never omitted.
const EmptySlotName = "No item"

// RoleStats groups matches by role and computes the per-role summary:
// game count, win ratio, KDA, most frequent lane opponent, average game
// duration and minions per minute. Any raw UTILITY label left in stored
// data is renamed to SUPPORT as a defensive re-application of the
// ingestion-time invariant.
func RoleStats(matches []model.Match) []model.RoleStat {
	groups := make(map[string][]model.Match)
	var order []string
	for _, m := range matches {
		if _, seen := groups[m.Role]; !seen {
			order = append(order, m.Role)
		}
		groups[m.Role] = append(groups[m.Role], m)
	}

	stats := make([]model.RoleStat, 0, len(order))
	for _, role := range order {
		group := groups[role]

		var kills, deaths, assists, wins, durationSum int
		var minionsSum float64
		for _, m := range group {
			kills += m.Kills
			deaths += m.Deaths
			assists += m.Assists
			if m.Win {
				wins++
			}
			durationSum += m.GameDuration
			minionsSum += m.MinionsPerMinute
		}

		// Zero deaths across the group count as one so the ratio stays finite.
		kdaDeaths := deaths
		if kdaDeaths == 0 {
			kdaDeaths = 1
		}

		n := len(group)
		stats = append(stats, model.RoleStat{
			Role:                 model.NormalizeRole(role),
			GameCount:            n,
			WinRatio:             float64(wins) / float64(n),
			KDA:                  float64(kills+assists) / float64(kdaDeaths),
			MostFrequentOpponent: mostFrequentOpponent(group),
			AverageGameDuration:  formatDuration(float64(durationSum) / float64(n)),
			MinionsPerMinute:     minionsSum / float64(n),
		})
	}
	return stats
}

// RolePercentage returns each role's share of the given match set.
func RolePercentage(matches []model.Match) map[string]float64 {
	counts := make(map[string]int)
	for _, m := range matches {
		counts[model.NormalizeRole(m.Role)]++
	}

	out := make(map[string]float64, len(counts))
	total := len(matches)
	for role, count := range counts {
		out[role] = float64(count) / float64(total)
	}
	return out
}

// MostPopularItemsByRoleAndSlot parses every stored build back into its
// ordered item sequence and, per role, picks the most purchased item for
// each of the six build slots. Ties go to the first-encountered item; a
// slot with no observations gets EmptySlotName. A malformed build with
// more than six slots is logged and the excess skipped, never fatal.
func MostPopularItemsByRoleAndSlot(matches []model.Match, log *slog.Logger) map[string]map[int]string {
	type slotTally struct {
		counts map[string]int
		order  []string // first-encounter order, for deterministic ties
	}

	tallies := make(map[string]*[6]slotTally)
	for _, m := range matches {
		role := model.NormalizeRole(m.Role)
		roleTally, ok := tallies[role]
		if !ok {
			roleTally = new([6]slotTally)
			for i := range roleTally {
				roleTally[i].counts = make(map[string]int)
			}
			tallies[role] = roleTally
		}

		items := model.ParseBuild(m.Build)
		for slot := 1; slot <= len(items); slot++ {
			if slot > 6 {
				log.Warn("build exceeds six slots, skipping overflow",
					"match", m.MatchID, "slot", slot, "build", m.Build)
				continue
			}
			t := &roleTally[slot-1]
			name := items[slot-1]
			if _, seen := t.counts[name]; !seen {
				t.order = append(t.order, name)
			}
			t.counts[name]++
		}
	}

	out := make(map[string]map[int]string, len(tallies))
	for role, roleTally := range tallies {
		slots := make(map[int]string, 6)
		for i := range roleTally {
			best := EmptySlotName
			bestCount := 0
			for _, name := range roleTally[i].order {
				if c := roleTally[i].counts[name]; c > bestCount {
					best, bestCount = name, c
				}
			}
			slots[i+1] = best
		}
		out[role] = slots
	}
	return out
}

// mostFrequentOpponent returns the opponent champion seen most often in the
// group. Ties resolve to the earliest-encountered champion; a group with no
// recorded opponents yields "Unknown".
func mostFrequentOpponent(group []model.Match) string {
	counts := make(map[string]int)
	var order []string
	for _, m := range group {
		if m.Opponent == "" {
			continue
		}
		if _, seen := counts[m.Opponent]; !seen {
			order = append(order, m.Opponent)
		}
		counts[m.Opponent]++
	}

	best := "Unknown"
	bestCount := 0
	for _, opponent := range order {
		if c := counts[opponent]; c > bestCount {
			best, bestCount = opponent, c
		}
	}
	return best
}

// formatDuration renders a duration in seconds as h:mm:ss.
func formatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

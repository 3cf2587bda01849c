// Package report renders aggregated statistics as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mkoval/go-lol-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRoleStats prints the per-role summary table, largest group first.
func PrintRoleStats(w io.Writer, stats []model.RoleStat) {
	sorted := make([]model.RoleStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].GameCount != sorted[j].GameCount {
			return sorted[i].GameCount > sorted[j].GameCount
		}
		return sorted[i].Role < sorted[j].Role
	})

	table := newTable(w)
	table.Header("ROLE", "GAMES", "WIN%", "KDA", "TOP OPPONENT", "AVG LENGTH", "CS/MIN")
	for _, s := range sorted {
		table.Append(
			s.Role,
			strconv.Itoa(s.GameCount),
			fmt.Sprintf("%.0f%%", s.WinRatio*100),
			fmt.Sprintf("%.2f", s.KDA),
			s.MostFrequentOpponent,
			s.AverageGameDuration,
			fmt.Sprintf("%.1f", s.MinionsPerMinute),
		)
	}
	table.Render()
}

// PrintRolePercentages prints each role's share of the match set, largest first.
func PrintRolePercentages(w io.Writer, percentages map[string]float64) {
	roles := make([]string, 0, len(percentages))
	for role := range percentages {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		if percentages[roles[i]] != percentages[roles[j]] {
			return percentages[roles[i]] > percentages[roles[j]]
		}
		return roles[i] < roles[j]
	})

	table := newTable(w)
	table.Header("ROLE", "SHARE")
	for _, role := range roles {
		table.Append(role, fmt.Sprintf("%.1f%%", percentages[role]*100))
	}
	table.Render()
}

// PrintPopularBuilds prints the most popular item per role and build slot.
func PrintPopularBuilds(w io.Writer, builds map[string]map[int]string) {
	roles := make([]string, 0, len(builds))
	for role := range builds {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	table := newTable(w)
	table.Header("ROLE", "SLOT 1", "SLOT 2", "SLOT 3", "SLOT 4", "SLOT 5", "SLOT 6")
	for _, role := range roles {
		slots := builds[role]
		table.Append(role, slots[1], slots[2], slots[3], slots[4], slots[5], slots[6])
	}
	table.Render()
}

// PrintPlayers prints the tracked player roster.
func PrintPlayers(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("RIOT ID", "REGION", "PUUID")
	for i := range players {
		p := &players[i]
		puuid := p.UniquePlayerID
		if len(puuid) > 16 {
			puuid = puuid[:16] + "…"
		}
		table.Append(p.RiotID(), p.Region, puuid)
	}
	table.Render()
}

// Package rebuild derives a player's realized match record by joining the
// match event timeline with the end-of-game snapshot.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkoval/go-lol-metrics/internal/model"
	"github.com/mkoval/go-lol-metrics/internal/riot"
)

// ErrPlayerNotInMatch means the tracked PUUID was not among the match
// participants. Permanent for that match: matches sourced from the player's
// own id list should never hit it, but the check is mandatory defense.
var ErrPlayerNotInMatch = errors.New("player not in match")

// ErrZeroDuration means the match reports a zero game duration, which would
// make the minions-per-minute stat non-finite. The match is unusable.
var ErrZeroDuration = errors.New("match has zero game duration")

// MatchSource fetches the end-state summary and event timeline for a match.
type MatchSource interface {
	Match(ctx context.Context, matchID string) (*riot.MatchResponse, error)
	Timeline(ctx context.Context, matchID string) (*riot.TimelineResponse, error)
}

// ItemCatalog resolves item ids against the locally synced catalog.
type ItemCatalog interface {
	ItemsByIDs(ids []int) (map[int]model.Item, error)
}

// Reconstructor turns a match id into a persisted-ready model.Match for one
// tracked player.
type Reconstructor struct {
	source  MatchSource
	catalog ItemCatalog
}

// New returns a Reconstructor reading match data from source and item names
// from catalog.
func New(source MatchSource, catalog ItemCatalog) *Reconstructor {
	return &Reconstructor{source: source, catalog: catalog}
}

// Reconstruct fetches the summary and timeline for matchID concurrently and
// derives the tracked player's match record: realized item build, normalized
// role, opponent, rune names, and per-match rates. No partial result is ever
// produced; any fetch failure fails the whole reconstruction.
func (r *Reconstructor) Reconstruct(ctx context.Context, matchID string, runeNames map[int]string, playerUniqueID string) (*model.Match, error) {
	var (
		match    *riot.MatchResponse
		timeline *riot.TimelineResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = r.source.Match(gctx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		timeline, err = r.source.Timeline(gctx, matchID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	player := findParticipant(match, playerUniqueID)
	if player == nil {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrPlayerNotInMatch)
	}
	if match.Info.GameDuration == 0 {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrZeroDuration)
	}

	purchases := purchaseOrder(timeline, player.ParticipantID)

	endState := make(map[int]bool)
	for _, slot := range player.EquipmentSlots() {
		if slot != 0 {
			endState[slot] = true
		}
	}

	build, err := r.resolveBuild(purchases, endState)
	if err != nil {
		return nil, fmt.Errorf("match %s: resolve build: %w", matchID, err)
	}

	totalMinions := player.TotalMinionsKilled + player.NeutralMinionsKilled

	m := &model.Match{
		MatchID:        matchID,
		PlayerUniqueID: playerUniqueID,
		MatchDate:      time.UnixMilli(match.Info.GameCreation).UTC(),
		Role:           model.NormalizeRole(player.TeamPosition),
		Win:            player.Win,
		Opponent:       opponentChampion(match, player),
		SummonerSpells: fmt.Sprintf("Summoner1: %d, Summoner2: %d", player.Summoner1ID, player.Summoner2ID),
		Champion:       player.ChampionName,
		GameVersion:    model.ShortVersion(match.Info.GameVersion),
		GameDuration:   match.Info.GameDuration,
		RuneDetails:    strings.Join(runeDetails(player, runeNames), ", "),

		Kills:   player.Kills,
		Deaths:  player.Deaths,
		Assists: player.Assists,

		TotalMinionsKilled: totalMinions,
		MinionsPerMinute:   float64(totalMinions) / (float64(match.Info.GameDuration) / 60.0),

		QSkillUsage: player.Spell1Casts,
		WSkillUsage: player.Spell2Casts,
		ESkillUsage: player.Spell3Casts,
		RSkillUsage: player.Spell4Casts,

		AllInPings:        player.AllInPings,
		AssistMePings:     player.AssistMePings,
		CommandPings:      player.CommandPings,
		EnemyMissingPings: player.EnemyMissingPings,
		EnemyVisionPings:  player.EnemyVisionPings,
		GetBackPings:      player.GetBackPings,
		NeedVisionPings:   player.NeedVisionPings,
		OnMyWayPings:      player.OnMyWayPings,
		PushPings:         player.PushPings,

		GoldEarned: player.GoldEarned,
		GoldSpent:  player.GoldSpent,

		Build: strings.Join(build, ", "),
	}
	return m, nil
}

// findParticipant locates the participant with the given PUUID, or nil.
func findParticipant(match *riot.MatchResponse, puuid string) *riot.Participant {
	for i := range match.Info.Participants {
		if match.Info.Participants[i].PUUID == puuid {
			return &match.Info.Participants[i]
		}
	}
	return nil
}

// purchaseOrder collects every ITEM_PURCHASED event for the participant,
// ordered by event timestamp ascending. The sort is stable so ties keep
// event-stream order.
func purchaseOrder(timeline *riot.TimelineResponse, participantID int) []int {
	type purchase struct {
		ts     int64
		itemID int
	}
	var purchases []purchase
	for _, frame := range timeline.Info.Frames {
		for _, ev := range frame.Events {
			if ev.Type == riot.EventItemPurchased && ev.ParticipantID == participantID {
				purchases = append(purchases, purchase{ts: ev.Timestamp, itemID: ev.ItemID})
			}
		}
	}
	sort.SliceStable(purchases, func(i, j int) bool { return purchases[i].ts < purchases[j].ts })

	ids := make([]int, len(purchases))
	for i, p := range purchases {
		ids[i] = p.itemID
	}
	return ids
}

// resolveBuild filters the purchase-ordered id sequence to purchases that
// survived to the end state and resolve to a known catalog name, capped at
// the six equipment slots. Ids missing from the catalog are dropped, not
// treated as build-breaking.
func (r *Reconstructor) resolveBuild(purchases []int, endState map[int]bool) ([]string, error) {
	lookup := make([]int, 0, len(purchases)+len(endState))
	lookup = append(lookup, purchases...)
	for id := range endState {
		lookup = append(lookup, id)
	}

	items, err := r.catalog.ItemsByIDs(lookup)
	if err != nil {
		return nil, err
	}

	var build []string
	for _, id := range purchases {
		if !endState[id] {
			continue
		}
		item, known := items[id]
		if !known {
			continue
		}
		build = append(build, item.Name)
		if len(build) == 6 {
			break
		}
	}
	return build, nil
}

// opponentChampion returns the champion of the opposing-team participant
// holding the same team-position label, or "Unknown" when no lane opponent
// can be identified.
func opponentChampion(match *riot.MatchResponse, player *riot.Participant) string {
	for i := range match.Info.Participants {
		op := &match.Info.Participants[i]
		if op.TeamID != player.TeamID && op.TeamPosition == player.TeamPosition {
			return op.ChampionName
		}
	}
	return "Unknown"
}

// runeDetails resolves each selected rune id to its name. Unresolved ids get
// a "Rune ID: n" placeholder instead of failing the reconstruction.
func runeDetails(player *riot.Participant, runeNames map[int]string) []string {
	var details []string
	for _, style := range player.Perks.Styles {
		for _, sel := range style.Selections {
			if name, ok := runeNames[sel.Perk]; ok {
				details = append(details, name)
			} else {
				details = append(details, fmt.Sprintf("Rune ID: %d", sel.Perk))
			}
		}
	}
	return details
}

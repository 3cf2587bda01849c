package riot

// Supported match-mode queue ids. Everything else (ARAM, arena, bots, ...)
// is discarded before reconstruction.
const (
	QueueDraft      = 400
	QueueRankedSolo = 420
	QueueRankedFlex = 440
)

// IsSupportedQueue reports whether a queue id belongs to one of the three
// tracked match modes.
func IsSupportedQueue(queueID int) bool {
	return queueID == QueueDraft || queueID == QueueRankedSolo || queueID == QueueRankedFlex
}

// AccountResponse is the response from /riot/account/v1/accounts/by-riot-id.
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchResponse is the response from /lol/match/v5/matches/{matchId}.
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // unix ms
	GameDuration int           `json:"gameDuration"` // seconds
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// Participant holds the per-player fields of a match summary that the
// reconstructor consumes.
type Participant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
	ChampionName  string `json:"championName"`
	TeamID        int    `json:"teamId"`
	TeamPosition  string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Win           bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	Summoner1ID int `json:"summoner1Id"`
	Summoner2ID int `json:"summoner2Id"`

	Spell1Casts int `json:"spell1Casts"`
	Spell2Casts int `json:"spell2Casts"`
	Spell3Casts int `json:"spell3Casts"`
	Spell4Casts int `json:"spell4Casts"`

	AllInPings        int `json:"allInPings"`
	AssistMePings     int `json:"assistMePings"`
	CommandPings      int `json:"commandPings"`
	EnemyMissingPings int `json:"enemyMissingPings"`
	EnemyVisionPings  int `json:"enemyVisionPings"`
	GetBackPings      int `json:"getBackPings"`
	NeedVisionPings   int `json:"needVisionPings"`
	OnMyWayPings      int `json:"onMyWayPings"`
	PushPings         int `json:"pushPings"`

	GoldEarned int `json:"goldEarned"`
	GoldSpent  int `json:"goldSpent"`

	// End-state equipment slots. Item6 is the trinket slot and is not part
	// of the six-item build.
	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	Perks Perks `json:"perks"`
}

// EquipmentSlots returns the six end-state item slots. Empty slots hold 0.
func (p *Participant) EquipmentSlots() [6]int {
	return [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

type Perks struct {
	Styles []PerkStyle `json:"styles"`
}

type PerkStyle struct {
	Selections []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
}

// TimelineResponse is the response from /lol/match/v5/matches/{matchId}/timeline.
type TimelineResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     TimelineInfo  `json:"info"`
}

type TimelineInfo struct {
	FrameInterval int             `json:"frameInterval"`
	Frames        []TimelineFrame `json:"frames"`
}

type TimelineFrame struct {
	Timestamp int64           `json:"timestamp"`
	Events    []TimelineEvent `json:"events"`
}

// TimelineEvent is one typed event from the match timeline. Only
// ITEM_PURCHASED events carry ParticipantID and ItemID.
type TimelineEvent struct {
	Type          string `json:"type"`
	Timestamp     int64  `json:"timestamp"`
	ParticipantID int    `json:"participantId,omitempty"`
	ItemID        int    `json:"itemId,omitempty"`
}

// EventItemPurchased is the timeline event type for an item purchase.
const EventItemPurchased = "ITEM_PURCHASED"

// ItemDef is one upstream item catalog entry after typed decoding. Into
// lists the ids this item upgrades into; a non-empty list means the item
// has a further upgrade path.
type ItemDef struct {
	ID   int
	Name string
	Into []string
}

// HasUpgradePath reports whether the item builds into something else.
func (d *ItemDef) HasUpgradePath() bool {
	return len(d.Into) > 0
}

// Package game defines the read-only view of a Shadow Government match that
// decision engines consume. Nothing in this package resolves card effects;
// the authoritative resolver lives with the turn-execution layer.
package game

// CardType identifies how a card is played
type CardType string

const (
	CardZone      CardType = "ZONE"      // Adds pressure to a target state
	CardMedia     CardType = "MEDIA"     // Moves the truth meter
	CardAttack    CardType = "ATTACK"    // Damages the opponent's resources
	CardDefensive CardType = "DEFENSIVE" // Protects held states or counters attacks
)

// Valid reports whether t is one of the four playable card types
func (t CardType) Valid() bool {
	switch t {
	case CardZone, CardMedia, CardAttack, CardDefensive:
		return true
	default:
		return false
	}
}

// Rarity of a card
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Faction is one of the two sides of the truth meter
type Faction string

const (
	FactionTruth      Faction = "truth"
	FactionGovernment Faction = "government"
)

// Opposite returns the other faction. Unknown factions map to truth.
func (f Faction) Opposite() Faction {
	if f == FactionTruth {
		return FactionGovernment
	}
	return FactionTruth
}

// Owner of a state on the map
type Owner string

const (
	OwnerNeutral Owner = "neutral"
	OwnerPlayer  Owner = "player"
	OwnerAI      Owner = "ai"
)

// Actor identifies who made a play this round
type Actor string

const (
	ActorHuman Actor = "human"
	ActorAI    Actor = "ai"
)

// Card tags recognised by the engine
const (
	TagDefensive = "defensive"
	TagCounter   = "counter"
)

// Effects are the declared effects of a card. Deltas are from the playing
// side's point of view: IPDelta credits the player of the card and
// OpponentIPDelta is the amount removed from the other side.
type Effects struct {
	TruthDelta      int `json:"truthDelta,omitempty"`
	PressureDelta   int `json:"pressureDelta,omitempty"`
	IPDelta         int `json:"ipDelta,omitempty"`
	OpponentIPDelta int `json:"opponentIpDelta,omitempty"`
	Draw            int `json:"draw,omitempty"`
	DiscardOpponent int `json:"discardOpponent,omitempty"`
	DefenseDelta    int `json:"defenseDelta,omitempty"`
}

// Card is a single card, either in hand or as catalog metadata
type Card struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    CardType `json:"type"`
	Faction Faction  `json:"faction,omitempty"`
	Rarity  Rarity   `json:"rarity,omitempty"`
	Cost    int      `json:"cost"`
	Effects Effects  `json:"effects"`
	Tags    []string `json:"tags,omitempty"`
}

// HasTag reports whether the card carries the given tag
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// State is a single map territory
type State struct {
	ID        string `json:"id"`        // Abbreviation, e.g. "CA"
	Name      string `json:"name"`      // Display name
	BaseIP    int    `json:"baseIP"`    // Income granted to the owner
	Defense   int    `json:"defense"`   // Pressure needed to capture
	Pressure  int    `json:"pressure"`  // Accumulated pressure against the current owner
	Owner     Owner  `json:"owner"`     // neutral, player or ai
	Contested bool   `json:"contested"` // Both sides have pressure in play
}

// Remaining returns the pressure still needed to flip the state
func (s State) Remaining() int {
	return max(0, s.Defense-s.Pressure)
}

// PlayRecord is one card played earlier in the current round
type PlayRecord struct {
	Player      Actor  `json:"player"`
	Card        Card   `json:"card"`
	TargetState string `json:"targetState,omitempty"`
}

// Agenda is a secret win condition
type Agenda struct {
	ID       string `json:"id"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
}

// Snapshot is the engine's read-only view of a match, taken from the AI's
// perspective. Missing fields are treated as zero values everywhere.
type Snapshot struct {
	Round            int          `json:"round"`
	Turn             int          `json:"turn"`
	Truth            int          `json:"truth"`            // 0-100
	AIFaction        Faction      `json:"aiFaction"`        // The opponent holds the other side
	AIIP             int          `json:"aiIP"`             // Influence points held by the AI
	PlayerIP         int          `json:"playerIP"`         // Influence points held by the human
	Hand             []Card       `json:"hand"`             // AI hand
	OpponentHandSize int          `json:"opponentHandSize"` // Cards held by the human
	States           []State      `json:"states"`
	AIAgenda         *Agenda      `json:"aiAgenda,omitempty"`
	PlayerAgenda     *Agenda      `json:"playerAgenda,omitempty"`
	PlaysThisRound   []PlayRecord `json:"cardsPlayedThisRound"`
}

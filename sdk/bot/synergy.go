package bot

import "github.com/lox/shadowgov/sdk/game"

// SynergyType classifies how two cards work together
type SynergyType string

const (
	SynergyCombo    SynergyType = "combo"
	SynergySequence SynergyType = "sequence"
	SynergyCounter  SynergyType = "counter"
)

// Synergy is a static pairing between two cards
type Synergy struct {
	CardIDs     [2]string   `json:"cardIds"`
	Type        SynergyType `json:"type"`
	Bonus       float64     `json:"bonusValue"`
	Description string      `json:"description"`
}

var synergyTable = []Synergy{
	{
		CardIDs:     [2]string{"social-media-campaign", "viral-conspiracy"},
		Type:        SynergyCombo,
		Bonus:       0.3,
		Description: "Social media amplification combo",
	},
	{
		CardIDs:     [2]string{"classified-leak", "whistleblower-protection"},
		Type:        SynergySequence,
		Bonus:       0.4,
		Description: "Protected leak sequence",
	},
	{
		CardIDs:     [2]string{"surveillance-network", "data-mining-operation"},
		Type:        SynergyCombo,
		Bonus:       0.25,
		Description: "Intelligence gathering combo",
	},
	{
		CardIDs:     [2]string{"counter-intelligence", "disinformation-campaign"},
		Type:        SynergyCounter,
		Bonus:       0.35,
		Description: "Counter-narrative defense",
	},
}

// Synergies returns a copy of the built-in synergy table
func Synergies() []Synergy {
	return append([]Synergy(nil), synergyTable...)
}

// partner returns the other card of the pair, if cardID is a member
func (s Synergy) partner(cardID string) (string, bool) {
	switch cardID {
	case s.CardIDs[0]:
		return s.CardIDs[1], true
	case s.CardIDs[1]:
		return s.CardIDs[0], true
	default:
		return "", false
	}
}

// findSynergies returns every table entry that links cardID to another card
// currently in hand. Matches stack; there is no cap.
func findSynergies(table []Synergy, cardID string, hand []game.Card) []Synergy {
	var out []Synergy
	for _, syn := range table {
		other, ok := syn.partner(cardID)
		if !ok {
			continue
		}
		for _, c := range hand {
			if c.ID == other {
				out = append(out, syn)
				break
			}
		}
	}
	return out
}

func synergyBonus(list []Synergy) float64 {
	total := 0.0
	for _, s := range list {
		total += s.Bonus
	}
	return total
}

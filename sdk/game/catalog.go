package game

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Catalog is a read-only card metadata lookup. Implementations must not
// fail on unknown ids; they simply report ok=false.
type Catalog interface {
	Lookup(id string) (Card, bool)
}

// MapCatalog is an in-memory Catalog keyed by card id
type MapCatalog map[string]Card

// NewMapCatalog indexes cards by id. Later duplicates win.
func NewMapCatalog(cards ...Card) MapCatalog {
	m := make(MapCatalog, len(cards))
	for _, c := range cards {
		m[c.ID] = c
	}
	return m
}

// Lookup implements Catalog
func (m MapCatalog) Lookup(id string) (Card, bool) {
	c, ok := m[id]
	return c, ok
}

// Cards returns all cards sorted by id
func (m MapCatalog) Cards() []Card {
	out := make([]Card, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve returns catalog metadata for card, falling back to the in-hand copy
func Resolve(cat Catalog, card Card) Card {
	if cat == nil {
		return card
	}
	if meta, ok := cat.Lookup(card.ID); ok {
		if meta.ID == "" {
			meta.ID = card.ID
		}
		return meta
	}
	return card
}

type catalogFile struct {
	Cards []cardBlock `hcl:"card,block"`
}

type cardBlock struct {
	ID      string       `hcl:"id,label"`
	Name    string       `hcl:"name,optional"`
	Type    string       `hcl:"type"`
	Faction string       `hcl:"faction,optional"`
	Rarity  string       `hcl:"rarity,optional"`
	Cost    int          `hcl:"cost,optional"`
	Tags    []string     `hcl:"tags,optional"`
	Effects *effectBlock `hcl:"effects,block"`
}

type effectBlock struct {
	Truth           int `hcl:"truth,optional"`
	Pressure        int `hcl:"pressure,optional"`
	IP              int `hcl:"ip,optional"`
	OpponentIP      int `hcl:"opponent_ip,optional"`
	Draw            int `hcl:"draw,optional"`
	DiscardOpponent int `hcl:"discard_opponent,optional"`
	Defense         int `hcl:"defense,optional"`
}

// LoadCatalogFile parses an HCL card catalog from disk
func LoadCatalogFile(filename string) (MapCatalog, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(src, filename)
}

// ParseCatalog parses HCL source made of card "id" { ... } blocks
func ParseCatalog(src []byte, filename string) (MapCatalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cf catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cat := make(MapCatalog, len(cf.Cards))
	for _, b := range cf.Cards {
		card, err := b.toCard()
		if err != nil {
			return nil, err
		}
		if _, dup := cat[card.ID]; dup {
			return nil, fmt.Errorf("card %s: duplicate id", card.ID)
		}
		cat[card.ID] = card
	}
	return cat, nil
}

func (b cardBlock) toCard() (Card, error) {
	card := Card{
		ID:      b.ID,
		Name:    b.Name,
		Type:    CardType(b.Type),
		Faction: Faction(b.Faction),
		Rarity:  Rarity(b.Rarity),
		Cost:    b.Cost,
		Tags:    b.Tags,
	}
	if !card.Type.Valid() {
		return Card{}, fmt.Errorf("card %s: invalid type %q", b.ID, b.Type)
	}
	if card.Cost < 0 {
		return Card{}, fmt.Errorf("card %s: cost cannot be negative", b.ID)
	}
	if card.Name == "" {
		card.Name = b.ID
	}
	if card.Rarity == "" {
		card.Rarity = RarityCommon
	}
	if b.Effects != nil {
		card.Effects = Effects{
			TruthDelta:      b.Effects.Truth,
			PressureDelta:   b.Effects.Pressure,
			IPDelta:         b.Effects.IP,
			OpponentIPDelta: b.Effects.OpponentIP,
			Draw:            b.Effects.Draw,
			DiscardOpponent: b.Effects.DiscardOpponent,
			DefenseDelta:    b.Effects.Defense,
		}
	}
	return card, nil
}

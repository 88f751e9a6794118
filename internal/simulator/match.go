package simulator

import (
	"slices"

	"github.com/lox/shadowgov/internal/statistics"
	"github.com/lox/shadowgov/sdk/game"
)

// side indexes the two seats of a match
type side int

const (
	sideA side = iota
	sideB
)

func (s side) other() side { return 1 - s }

func (s side) outcome() statistics.Outcome {
	if s == sideA {
		return statistics.WinA
	}
	return statistics.WinB
}

// Rules are the board and win conditions of a self-play match
type Rules struct {
	StateCount     int
	InitialControl int
	StartingIP     int
	StartingTruth  int
	HandSize       int
	MaxTurns       int
	BaseIncome     int
	StateGoal      int
	IPGoal         int
	TruthHigh      int
	TruthLow       int
}

// DefaultRules returns the standard self-play rules
func DefaultRules() Rules {
	return Rules{
		StateCount:     20,
		InitialControl: 3,
		StartingIP:     40,
		StartingTruth:  50,
		HandSize:       5,
		MaxTurns:       60,
		BaseIncome:     5,
		StateGoal:      10,
		IPGoal:         300,
		TruthHigh:      95,
		TruthLow:       5,
	}
}

type play struct {
	by     side
	card   game.Card
	target string
}

// match is the authoritative state of one game. Ownership is stored as
// OwnerPlayer for seat A and OwnerAI for seat B and is remapped per viewer
// in snapshot.
type match struct {
	rules    Rules
	rng      RNG
	deck     []game.Card
	truth    int
	ip       [2]int
	hands    [2][]game.Card
	factions [2]game.Faction
	states   []game.State
	round    int
	turn     int
	plays    []play
}

// RNG is the randomness the match draws deals and discards from
type RNG interface {
	IntN(n int) int
}

var seatOwner = [2]game.Owner{game.OwnerPlayer, game.OwnerAI}

func newMatch(rules Rules, deck []game.Card, rng RNG, factionA game.Faction) *match {
	m := &match{
		rules:    rules,
		rng:      rng,
		deck:     deck,
		truth:    rules.StartingTruth,
		ip:       [2]int{rules.StartingIP, rules.StartingIP},
		factions: [2]game.Faction{factionA, factionA.Opposite()},
		round:    1,
		turn:     1,
	}

	board := slices.Clone(usaStates)
	for i := len(board) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		board[i], board[j] = board[j], board[i]
	}
	count := min(max(rules.StateCount, 1), len(board))
	for _, st := range board[:count] {
		m.states = append(m.states, st.toState())
	}

	control := min(rules.InitialControl, count/3)
	for i := 0; i < control; i++ {
		m.states[i].Owner = seatOwner[sideA]
		m.states[control+i].Owner = seatOwner[sideB]
	}

	m.refill(sideA)
	m.refill(sideB)
	return m
}

func (m *match) owner(s side) game.Owner { return seatOwner[s] }

func (m *match) draw(s side, n int) {
	if len(m.deck) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		m.hands[s] = append(m.hands[s], m.deck[m.rng.IntN(len(m.deck))])
	}
}

func (m *match) refill(s side) {
	m.draw(s, m.rules.HandSize-len(m.hands[s]))
}

func (m *match) controlled(s side) int {
	n := 0
	for _, st := range m.states {
		if st.Owner == m.owner(s) {
			n++
		}
	}
	return n
}

// income is the IP a side collects at the start of its turn
func (m *match) income(s side) int {
	total := m.rules.BaseIncome
	for _, st := range m.states {
		if st.Owner == m.owner(s) {
			total += st.BaseIP
		}
	}
	return total
}

// snapshot is the match as seen by s: s is the AI, the other seat the player
func (m *match) snapshot(s side) *game.Snapshot {
	o := s.other()
	snap := &game.Snapshot{
		Round:            m.round,
		Turn:             m.turn,
		Truth:            m.truth,
		AIFaction:        m.factions[s],
		AIIP:             m.ip[s],
		PlayerIP:         m.ip[o],
		Hand:             slices.Clone(m.hands[s]),
		OpponentHandSize: len(m.hands[o]),
		States:           slices.Clone(m.states),
	}
	for i := range snap.States {
		switch snap.States[i].Owner {
		case m.owner(s):
			snap.States[i].Owner = game.OwnerAI
		case m.owner(o):
			snap.States[i].Owner = game.OwnerPlayer
		}
	}
	for _, p := range m.plays {
		actor := game.ActorHuman
		if p.by == s {
			actor = game.ActorAI
		}
		snap.PlaysThisRound = append(snap.PlaysThisRound, game.PlayRecord{Player: actor, Card: p.card, TargetState: p.target})
	}
	return snap
}

// apply resolves one card for s. It reports false, changing nothing, when
// the card is not in hand or cannot be paid for.
func (m *match) apply(s side, card game.Card, target string) bool {
	idx := slices.IndexFunc(m.hands[s], func(c game.Card) bool { return c.ID == card.ID })
	if idx < 0 || card.Cost > m.ip[s] {
		return false
	}
	m.hands[s] = slices.Delete(m.hands[s], idx, idx+1)

	o := s.other()
	fx := card.Effects
	m.ip[s] = max(0, m.ip[s]-card.Cost+fx.IPDelta)
	m.truth = min(100, max(0, m.truth+fx.TruthDelta))

	switch card.Type {
	case game.CardZone:
		if i := slices.IndexFunc(m.states, func(st game.State) bool { return st.ID == target }); i >= 0 {
			st := &m.states[i]
			if st.Owner != m.owner(s) {
				st.Pressure += max(1, fx.PressureDelta)
				if st.Pressure >= st.Defense {
					st.Owner = m.owner(s)
					st.Pressure = 0
				}
			}
		}
	case game.CardAttack:
		m.ip[o] = max(0, m.ip[o]-fx.OpponentIPDelta)
		for n := fx.DiscardOpponent; n > 0 && len(m.hands[o]) > 0; n-- {
			i := m.rng.IntN(len(m.hands[o]))
			m.hands[o] = slices.Delete(m.hands[o], i, i+1)
		}
	case game.CardDefensive:
		worst := -1
		for i, st := range m.states {
			if st.Owner == m.owner(s) && st.Pressure > 0 && (worst < 0 || st.Pressure > m.states[worst].Pressure) {
				worst = i
			}
		}
		if worst >= 0 {
			m.states[worst].Pressure = max(0, m.states[worst].Pressure-max(1, fx.DefenseDelta))
		}
	}

	if fx.Draw > 0 {
		m.draw(s, fx.Draw)
	}
	m.plays = append(m.plays, play{by: s, card: card, target: target})
	return true
}

// winner reports a side that has met a win condition. When both or neither
// have, there is no winner yet.
func (m *match) winner() (side, string, bool) {
	var wins [2]string
	for _, s := range []side{sideA, sideB} {
		switch {
		case m.controlled(s) >= m.rules.StateGoal:
			wins[s] = statistics.ReasonStates
		case m.ip[s] >= m.rules.IPGoal:
			wins[s] = statistics.ReasonIP
		case m.factions[s] == game.FactionTruth && m.truth >= m.rules.TruthHigh:
			wins[s] = statistics.ReasonTruth
		case m.factions[s] == game.FactionGovernment && m.truth <= m.rules.TruthLow:
			wins[s] = statistics.ReasonTruth
		}
	}
	switch {
	case wins[sideA] != "" && wins[sideB] == "":
		return sideA, wins[sideA], true
	case wins[sideB] != "" && wins[sideA] == "":
		return sideB, wins[sideB], true
	default:
		return 0, "", false
	}
}

// tiebreak compares states, then IP, then how far truth leans each way
func (m *match) tiebreak() (side, bool) {
	if a, b := m.controlled(sideA), m.controlled(sideB); a != b {
		return pick(a > b), true
	}
	if m.ip[sideA] != m.ip[sideB] {
		return pick(m.ip[sideA] > m.ip[sideB]), true
	}
	score := func(s side) int {
		if m.factions[s] == game.FactionTruth {
			return m.truth
		}
		return 100 - m.truth
	}
	if a, b := score(sideA), score(sideB); a != b {
		return pick(a > b), true
	}
	return 0, false
}

func pick(aWins bool) side {
	if aWins {
		return sideA
	}
	return sideB
}

// endTurn passes play to the other seat, starting a new round when play
// returns to first
func (m *match) endTurn(first, active side) side {
	next := active.other()
	m.turn++
	if next == first {
		m.round++
		m.plays = nil
	}
	return next
}

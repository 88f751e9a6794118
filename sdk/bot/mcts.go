package bot

import (
	"math"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/shadowgov/sdk/game"
)

const (
	rolloutPlies        = 10
	terminalStateCount  = 10
	simCaptureThreshold = 2
)

// searcher layers Monte Carlo tree search on top of a heuristic strategist
type searcher struct {
	*heuristic
	iterations int
	clock      quartz.Clock
	budget     time.Duration
}

var _ Strategist = (*searcher)(nil)

// node lives in a tree arena; parent and children are arena indices
type node struct {
	state      *game.Snapshot
	move       CardPlay
	parent     int
	children   []int
	visits     int
	wins       float64
	unexplored []CardPlay
}

type tree struct {
	nodes []node
}

func (t *tree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) root() *node { return &t.nodes[0] }

// searchResult reports what one search did
type searchResult struct {
	tree       *tree
	iterations int
	timedOut   bool
}

func (m *searcher) SelectPlay(s *game.Snapshot, ev Evaluation) *CardPlay {
	res := m.search(s, ev)
	root := res.tree.root()
	if len(root.children) == 0 {
		m.logger.Info("No search moves, falling back to heuristic")
		return m.heuristic.SelectPlay(s, ev)
	}

	best := root.children[0]
	for _, c := range root.children[1:] {
		if res.tree.nodes[c].visits > res.tree.nodes[best].visits {
			best = c
		}
	}
	bn := res.tree.nodes[best]
	play := m.enhance(bn.move, s, ev)

	if res.timedOut {
		m.logger.Warn("Search stopped at time budget",
			"iterations", res.iterations,
			"planned", m.iterations,
			"budget", m.budget)
	}
	m.logger.Debug("Search selection",
		"iterations", res.iterations,
		"candidates", len(root.children),
		"chosen", play.CardID,
		"target", play.TargetState,
		"visits", bn.visits,
		"priority", play.Priority)
	return &play
}

// search runs up to m.iterations select/expand/simulate/backpropagate
// rounds. Every round backpropagates to the root, so root visits equal the
// number of rounds run.
func (m *searcher) search(s *game.Snapshot, ev Evaluation) searchResult {
	t := &tree{}
	t.add(node{
		state:      s.Clone(),
		parent:     -1,
		unexplored: m.GenerateMoves(s, ev),
	})

	var deadline time.Time
	if m.budget > 0 && m.clock != nil {
		deadline = m.clock.Now().Add(m.budget)
	}

	res := searchResult{tree: t}
	if len(t.root().unexplored) == 0 {
		return res
	}
	for i := 0; i < m.iterations; i++ {
		if i > 0 && !deadline.IsZero() && !m.clock.Now().Before(deadline) {
			res.timedOut = true
			break
		}
		leaf := m.selectLeaf(t)
		leaf = m.expand(t, leaf)
		reward := m.rollout(t.nodes[leaf].state)
		t.backpropagate(leaf, reward)
		res.iterations++
	}
	return res
}

func (m *searcher) selectLeaf(t *tree) int {
	i := 0
	for len(t.nodes[i].unexplored) == 0 && len(t.nodes[i].children) > 0 {
		i = t.bestUCB(i)
	}
	return i
}

// bestUCB picks the child with the highest UCB1 score; ties go to the
// earliest child
func (t *tree) bestUCB(parent int) int {
	p := &t.nodes[parent]
	logN := math.Log(float64(max(1, p.visits)))
	best, bestScore := -1, math.Inf(-1)
	for _, c := range p.children {
		child := &t.nodes[c]
		score := math.Inf(1)
		if child.visits > 0 {
			v := float64(child.visits)
			score = child.wins/v + math.Sqrt(2*logN/v)
		}
		if best < 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func (m *searcher) expand(t *tree, i int) int {
	n := &t.nodes[i]
	if len(n.unexplored) == 0 {
		return i
	}
	last := len(n.unexplored) - 1
	move := n.unexplored[last]
	n.unexplored = n.unexplored[:last]

	next := m.simulateMove(n.state, move)
	childEval := m.Evaluate(next)
	child := t.add(node{
		state:      next,
		move:       move,
		parent:     i,
		unexplored: m.GenerateMoves(next, childEval),
	})
	// t.nodes may have been reallocated by add
	t.nodes[i].children = append(t.nodes[i].children, child)
	return child
}

func (t *tree) backpropagate(i int, reward float64) {
	for i >= 0 {
		n := &t.nodes[i]
		n.visits++
		n.wins += reward
		i = n.parent
	}
}

// rollout plays random legal moves from state and scores the result
func (m *searcher) rollout(state *game.Snapshot) float64 {
	cur := state
	for ply := 0; ply < rolloutPlies && !isTerminal(cur); ply++ {
		moves := m.quickMoves(cur)
		if len(moves) == 0 {
			break
		}
		cur = m.simulateMove(cur, moves[m.rng.IntN(len(moves))])
	}
	return m.Evaluate(cur).OverallScore
}

// quickMoves lists legal plays without scoring them
func (m *searcher) quickMoves(s *game.Snapshot) []CardPlay {
	var out []CardPlay
	for _, c := range s.Hand {
		card := game.Resolve(m.moves.catalog, c)
		if card.Cost > s.AIIP || !card.Type.Valid() {
			continue
		}
		if card.Type != game.CardZone {
			out = append(out, CardPlay{CardID: card.ID, CardType: card.Type, card: card})
			continue
		}
		for _, st := range s.States {
			if game.OwnerOf(st) != game.OwnerAI {
				out = append(out, CardPlay{CardID: card.ID, CardType: card.Type, TargetState: st.ID, card: card})
			}
		}
	}
	return out
}

func isTerminal(s *game.Snapshot) bool {
	return s.CountOwned(game.OwnerAI) >= terminalStateCount ||
		s.CountOwned(game.OwnerPlayer) >= terminalStateCount ||
		s.Truth <= 0 || s.Truth >= 100
}

// simulateMove applies a coarse version of the card rules to a copy of s
func (m *searcher) simulateMove(s *game.Snapshot, play CardPlay) *game.Snapshot {
	next := s.Clone()

	card := play.card
	for i, c := range next.Hand {
		if c.ID == play.CardID {
			card = game.Resolve(m.moves.catalog, c)
			next.Hand = append(next.Hand[:i], next.Hand[i+1:]...)
			break
		}
	}

	next.AIIP = max(0, next.AIIP-card.Cost) + card.Effects.IPDelta

	switch card.Type {
	case game.CardZone:
		if idx := next.StateByID(play.TargetState); idx >= 0 {
			st := &next.States[idx]
			st.Pressure++
			if st.Pressure >= simCaptureThreshold {
				st.Owner = game.OwnerAI
				st.Pressure = 0
			}
		}
	case game.CardMedia:
		next.Truth = min(100, max(0, next.Truth+card.Effects.TruthDelta))
	case game.CardAttack:
		next.PlayerIP = max(0, next.PlayerIP-card.Effects.OpponentIPDelta)
		next.OpponentHandSize = max(0, next.OpponentHandSize-card.Effects.DiscardOpponent)
	case game.CardDefensive:
		worst := -1
		for i, st := range next.States {
			if game.OwnerOf(st) != game.OwnerAI || st.Pressure <= 0 {
				continue
			}
			if worst < 0 || st.Pressure > next.States[worst].Pressure {
				worst = i
			}
		}
		if worst >= 0 {
			next.States[worst].Pressure--
		}
	}

	next.PlaysThisRound = append(next.PlaysThisRound, game.PlayRecord{
		Player:      game.ActorAI,
		Card:        card,
		TargetState: play.TargetState,
	})
	return next
}

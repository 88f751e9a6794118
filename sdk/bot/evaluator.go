package bot

import (
	"math"
	"sort"

	"github.com/lox/shadowgov/sdk/game"
)

// CaptureInsight describes how close one state is to changing hands
type CaptureInsight struct {
	StateID      string     `json:"stateId"`
	Name         string     `json:"name"`
	Owner        game.Owner `json:"owner"`
	Pressure     int        `json:"pressure"`
	Defense      int        `json:"defense"`
	Remaining    float64    `json:"remaining"`
	CaptureRatio float64    `json:"captureRatio"`
}

// PressureSignals partitions the map by who is pushing where. Each list is
// sorted by Remaining ascending, then by StateID.
type PressureSignals struct {
	AITargets       []CaptureInsight `json:"aiTargets"`
	OpponentTargets []CaptureInsight `json:"opponentTargets"`
	Contested       []CaptureInsight `json:"contested"`
}

// DangerSignals are the urgent parts of the evaluation
type DangerSignals struct {
	ImminentCapture    []CaptureInsight `json:"imminentCapture"`
	ImminentLoss       []CaptureInsight `json:"imminentLoss"`
	TruthCrisis        float64          `json:"truthCrisis"`
	OpponentAggression float64          `json:"opponentAggression"`
	ResourceCrunch     float64          `json:"resourceCrunch"`
}

// Weights is the per-signal weighting of OverallScore. Evaluate always
// returns weights that sum to 1.
type Weights struct {
	Territorial     float64 `json:"territorial"`
	Resource        float64 `json:"resource"`
	Hand            float64 `json:"hand"`
	Threat          float64 `json:"threat"`
	Agenda          float64 `json:"agenda"`
	Pressure        float64 `json:"pressure"`
	Truth           float64 `json:"truth"`
	OpponentEconomy float64 `json:"opponentEconomy"`
	OpponentHand    float64 `json:"opponentHand"`
}

func (w *Weights) fields() []*float64 {
	return []*float64{
		&w.Territorial, &w.Resource, &w.Hand, &w.Threat, &w.Agenda,
		&w.Pressure, &w.Truth, &w.OpponentEconomy, &w.OpponentHand,
	}
}

// Sum adds all weights
func (w Weights) Sum() float64 {
	total := 0.0
	for _, f := range w.fields() {
		total += *f
	}
	return total
}

func (w Weights) normalized() Weights {
	fields := w.fields()
	total := 0.0
	for _, f := range fields {
		*f = math.Max(0, orZero(*f))
		total += *f
	}
	if total <= 0 || !finite(total) {
		for _, f := range fields {
			*f = 1 / float64(len(fields))
		}
		return w
	}
	for _, f := range fields {
		*f /= total
	}
	return w
}

// Evaluation is the full set of signals computed for one snapshot
type Evaluation struct {
	TerritorialControl     float64         `json:"territorialControl"`
	ResourceAdvantage      float64         `json:"resourceAdvantage"`
	HandQuality            float64         `json:"handQuality"`
	ThreatLevel            float64         `json:"threatLevel"`
	AgendaProgress         float64         `json:"agendaProgress"`
	PressureMomentum       float64         `json:"pressureMomentum"`
	TruthObjective         float64         `json:"truthObjective"`
	OpponentResourceThreat float64         `json:"opponentResourceThreat"`
	OpponentHandThreat     float64         `json:"opponentHandThreat"`
	Pressure               PressureSignals `json:"pressureSignals"`
	Danger                 DangerSignals   `json:"dangerSignals"`
	Weights                Weights         `json:"dynamicWeights"`
	OverallScore           float64         `json:"overallScore"`
}

// Evaluate scores a snapshot from the AI's point of view. It never mutates
// the snapshot and never returns NaN or infinities.
func Evaluate(s *game.Snapshot, p Personality, t Tuning) Evaluation {
	return evaluator{personality: p, tuning: t}.evaluate(s)
}

type evaluator struct {
	personality Personality
	tuning      Tuning
	catalog     game.Catalog
}

func (e evaluator) evaluate(s *game.Snapshot) Evaluation {
	if s == nil {
		s = &game.Snapshot{}
	}
	aiStates := float64(s.CountOwned(game.OwnerAI))
	playerStates := float64(s.CountOwned(game.OwnerPlayer))
	aiIP := float64(s.AIIP)
	playerIP := float64(s.PlayerIP)

	oppResources := 0.5*safeTanh(playerIP/150) + 0.5*math.Max(0, safeTanh((playerIP-aiIP)/100))

	ev := Evaluation{
		TerritorialControl:     safeTanh((aiStates - playerStates) / 5),
		ResourceAdvantage:      safeTanh((aiIP - playerIP) / 120),
		HandQuality:            e.handQuality(s),
		ThreatLevel:            e.threatLevel(s),
		TruthObjective:         safeTanh((desiredTruth(s) - float64(s.Truth)) / 25),
		OpponentResourceThreat: clamp01(oppResources),
		OpponentHandThreat:     clamp01(safeTanh(float64(s.OpponentHandSize) / 6)),
	}
	if s.AIAgenda != nil {
		ev.AgendaProgress = clamp01(safeDiv(float64(s.AIAgenda.Progress), float64(s.AIAgenda.Target)))
	}

	ev.Pressure = pressureSignals(s)
	ev.PressureMomentum = safeTanh((sumRatios(ev.Pressure.AITargets) - sumRatios(ev.Pressure.OpponentTargets)) / 3)
	ev.Danger = e.dangerSignals(s, ev.Pressure)
	ev.Weights = e.weights()

	w := ev.Weights
	ev.OverallScore = orZero(
		w.Territorial*ev.TerritorialControl +
			w.Resource*ev.ResourceAdvantage +
			w.Hand*ev.HandQuality +
			w.Threat*(1-ev.ThreatLevel) +
			w.Agenda*ev.AgendaProgress +
			w.Pressure*ev.PressureMomentum +
			w.Truth*(1-2*math.Abs(ev.TruthObjective)) +
			w.OpponentEconomy*(1-ev.OpponentResourceThreat) +
			w.OpponentHand*(1-ev.OpponentHandThreat),
	)
	return ev
}

// aiFaction defaults to government when the snapshot leaves it unset
func aiFaction(s *game.Snapshot) game.Faction {
	if s.AIFaction == game.FactionTruth {
		return game.FactionTruth
	}
	return game.FactionGovernment
}

func desiredTruth(s *game.Snapshot) float64 {
	if aiFaction(s) == game.FactionTruth {
		return 80
	}
	return 20
}

func rarityBonus(r game.Rarity) float64 {
	switch r {
	case game.RarityRare:
		return 0.2
	case game.RarityLegendary:
		return 0.4
	default:
		return 0
	}
}

func (e evaluator) typeAffinity(t game.CardType) float64 {
	p := e.personality
	switch t {
	case game.CardAttack:
		return p.Aggressiveness
	case game.CardDefensive:
		return p.Defensiveness
	case game.CardZone:
		return p.Territorial
	case game.CardMedia:
		return 1 - p.Territorial
	default:
		return 0
	}
}

func (e evaluator) handQuality(s *game.Snapshot) float64 {
	if len(s.Hand) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range s.Hand {
		card := game.Resolve(e.catalog, c)
		total += float64(card.Cost)*0.1 + rarityBonus(card.Rarity) + e.typeAffinity(card.Type)*0.3
	}
	return safeTanh(total / float64(len(s.Hand)))
}

func difficultyThreatMultiplier(d Difficulty) float64 {
	switch d {
	case Easy:
		return 0.8
	case Hard:
		return 1.2
	case Legendary:
		return 1.5
	default:
		return 1.0
	}
}

// threatLevel accumulates every bracket the opponent has reached, each scaled
// by the difficulty multiplier. The hard-tier combo terms are added unscaled.
func (e evaluator) threatLevel(s *game.Snapshot) float64 {
	d := e.personality.Difficulty
	m := difficultyThreatMultiplier(d)
	playerStates := s.CountOwned(game.OwnerPlayer)
	deficit := s.PlayerIP - s.AIIP
	threat := 0.0

	for _, b := range []struct {
		hit bool
		add float64
	}{
		{playerStates >= 5, 0.2},
		{playerStates >= 7, 0.3},
		{playerStates >= 9, 0.4},
		{deficit >= 100, 0.3},
		{deficit >= 150, 0.4},
		{deficit >= 200, 0.6},
	} {
		if b.hit {
			threat += b.add * m
		}
	}

	// The opponent holds the faction the AI does not
	if aiFaction(s).Opposite() == game.FactionTruth {
		if s.Truth >= 70 {
			threat += 0.3 * m
		}
		if s.Truth >= 85 {
			threat += 0.5 * m
		}
	} else {
		if s.Truth <= 30 {
			threat += 0.3 * m
		}
		if s.Truth <= 15 {
			threat += 0.5 * m
		}
	}

	if d == Hard || d == Legendary {
		if playerStates >= 6 && deficit >= 100 {
			threat += 0.3
		}
		for _, rec := range s.PlaysBy(game.ActorHuman) {
			card := game.Resolve(e.catalog, rec.Card)
			if card.Rarity == game.RarityRare || card.Rarity == game.RarityLegendary {
				threat += 0.2
				break
			}
		}
	}

	return clamp01(threat)
}

func captureInsight(st game.State) CaptureInsight {
	ratio := 1.0
	if st.Defense > 0 {
		ratio = clamp01(float64(st.Pressure) / float64(st.Defense))
	}
	return CaptureInsight{
		StateID:      st.ID,
		Name:         st.Name,
		Owner:        game.OwnerOf(st),
		Pressure:     st.Pressure,
		Defense:      st.Defense,
		Remaining:    float64(st.Remaining()),
		CaptureRatio: ratio,
	}
}

func sortInsights(list []CaptureInsight) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Remaining != list[j].Remaining {
			return list[i].Remaining < list[j].Remaining
		}
		return list[i].StateID < list[j].StateID
	})
}

func pressureSignals(s *game.Snapshot) PressureSignals {
	var ps PressureSignals
	for _, st := range s.States {
		owner := game.OwnerOf(st)
		if owner != game.OwnerAI && st.Defense > 0 {
			ps.AITargets = append(ps.AITargets, captureInsight(st))
		}
		if owner == game.OwnerAI && st.Pressure > 0 {
			ps.OpponentTargets = append(ps.OpponentTargets, captureInsight(st))
		}
		if st.Contested || (owner == game.OwnerNeutral && st.Pressure > 0) {
			ps.Contested = append(ps.Contested, captureInsight(st))
		}
	}
	sortInsights(ps.AITargets)
	sortInsights(ps.OpponentTargets)
	sortInsights(ps.Contested)
	return ps
}

func sumRatios(list []CaptureInsight) float64 {
	total := 0.0
	for _, ci := range list {
		total += ci.CaptureRatio
	}
	return total
}

func (e evaluator) dangerSignals(s *game.Snapshot, ps PressureSignals) DangerSignals {
	var ds DangerSignals

	for _, ci := range ps.AITargets {
		if ci.Remaining <= 1 {
			ds.ImminentCapture = append(ds.ImminentCapture, ci)
		}
	}
	for _, ci := range ps.OpponentTargets {
		if ci.Remaining > 1 {
			continue
		}
		// Deeper planners assume they can shore the state up in time
		if e.personality.PlanningDepth >= 3 {
			ci.Remaining = math.Max(0, ci.Remaining-0.25)
		}
		ds.ImminentLoss = append(ds.ImminentLoss, ci)
	}

	truth := float64(s.Truth)
	if aiFaction(s) == game.FactionGovernment {
		ds.TruthCrisis = clamp01((truth - 60) / 35)
	} else {
		ds.TruthCrisis = clamp01((40 - truth) / 35)
	}

	attacks, zonePushes := 0, 0
	for _, rec := range s.PlaysBy(game.ActorHuman) {
		card := game.Resolve(e.catalog, rec.Card)
		switch card.Type {
		case game.CardAttack:
			attacks++
		case game.CardZone:
			if idx := s.StateByID(rec.TargetState); idx >= 0 && game.OwnerOf(s.States[idx]) == game.OwnerAI {
				zonePushes++
			}
		}
	}
	ds.OpponentAggression = clamp01(0.3*float64(attacks) + 0.2*float64(zonePushes))

	if len(s.Hand) > 0 {
		unaffordable := 0
		for _, c := range s.Hand {
			if game.Resolve(e.catalog, c).Cost > s.AIIP {
				unaffordable++
			}
		}
		ds.ResourceCrunch = float64(unaffordable) / float64(len(s.Hand))
	}
	return ds
}

func (e evaluator) weights() Weights {
	p := e.personality
	dw := e.tuning.DynamicWeights
	m := e.tuning.Evaluate
	plan := p.planningRatio()

	w := Weights{
		Territorial:     (dw.TerritorialBase + p.Territorial*dw.TerritorialPersonality) * m.Territorial,
		Resource:        (dw.ResourceBase + p.Economical*dw.ResourcePersonality) * m.Resource,
		Hand:            (dw.HandBase + plan*dw.HandPlanning) * m.Hand,
		Threat:          (dw.ThreatBase + p.Defensiveness*dw.ThreatDefensiveness) * m.Threat,
		Agenda:          (dw.AgendaBase + plan*dw.AgendaPlanning) * m.Agenda,
		Pressure:        (dw.PressureBase + p.Territorial*dw.PressureTerritorial) * m.Pressure,
		Truth:           (dw.TruthBase + (1-p.Territorial)*dw.TruthTerritorial) * m.Truth,
		OpponentEconomy: (dw.OpponentEconomyBase + p.Defensiveness*dw.OpponentEconomyDefense) * m.OpponentEconomy,
		OpponentHand:    (dw.OpponentHandBase + plan*dw.OpponentHandPlanning) * m.OpponentHand,
	}
	return w.normalized()
}

package bot

import (
	"fmt"
	"sort"
)

// Tuning holds every adjustable weight used by the evaluator and the move
// generator. The zero value is not useful; start from DefaultTuning.
type Tuning struct {
	Evaluate       EvaluateWeights
	DynamicWeights DynamicWeights
	Zone           ZoneTuning
	Media          MediaTuning
	Attack         AttackTuning
	Defensive      DefensiveTuning
}

// EvaluateWeights scale each signal's dynamic weight before normalisation
type EvaluateWeights struct {
	Territorial     float64
	Resource        float64
	Hand            float64
	Threat          float64
	Agenda          float64
	Pressure        float64
	Truth           float64
	OpponentEconomy float64
	OpponentHand    float64
}

// DynamicWeights are base + trait*scale pairs for every signal
type DynamicWeights struct {
	TerritorialBase        float64
	TerritorialPersonality float64
	ResourceBase           float64
	ResourcePersonality    float64
	HandBase               float64
	HandPlanning           float64
	ThreatBase             float64
	ThreatDefensiveness    float64
	AgendaBase             float64
	AgendaPlanning         float64
	PressureBase           float64
	PressureTerritorial    float64
	TruthBase              float64
	TruthTerritorial       float64
	OpponentEconomyBase    float64
	OpponentEconomyDefense float64
	OpponentHandBase       float64
	OpponentHandPlanning   float64
}

// ZoneTuning multiplies the ZONE priority terms
type ZoneTuning struct {
	Base            float64
	Chain           float64
	Faction         float64
	HighValue       float64
	Location        float64
	SpecialBonus    float64
	OwnerAggression float64
	SignalCapture   float64
	DangerResponse  float64
}

// MediaTuning multiplies the MEDIA priority terms
type MediaTuning struct {
	Base           float64
	Chain          float64
	Faction        float64
	TruthObjective float64
	ResourceSwing  float64
	Discard        float64
	Draw           float64
}

// AttackTuning multiplies the ATTACK priority terms
type AttackTuning struct {
	Base               float64
	Chain              float64
	Faction            float64
	Comeback           float64
	ResourceThreat     float64
	AggressionResponse float64
	IPDamage           float64
	Discard            float64
	AheadPenalty       float64
	PresetAggression   float64
}

// DefensiveTuning multiplies the DEFENSIVE priority terms
type DefensiveTuning struct {
	Base             float64
	Chain            float64
	Faction          float64
	ThreatResponse   float64
	TruthCrisis      float64
	RecentAttack     float64
	ImminentLoss     float64
	PresetAggression float64
}

// DefaultTuning returns weights that reproduce the stock engine behaviour
func DefaultTuning() Tuning {
	return Tuning{
		Evaluate: EvaluateWeights{
			Territorial: 1, Resource: 1, Hand: 1, Threat: 1, Agenda: 1,
			Pressure: 1, Truth: 1, OpponentEconomy: 1, OpponentHand: 1,
		},
		DynamicWeights: DynamicWeights{
			TerritorialBase:        0.2,
			TerritorialPersonality: 0.25,
			ResourceBase:           0.15,
			ResourcePersonality:    0.25,
			HandBase:               0.15,
			HandPlanning:           0.2,
			ThreatBase:             0.18,
			ThreatDefensiveness:    0.3,
			AgendaBase:             0.12,
			AgendaPlanning:         0.25,
			PressureBase:           0.15,
			PressureTerritorial:    0.2,
			TruthBase:              0.1,
			TruthTerritorial:       0.2,
			OpponentEconomyBase:    0.1,
			OpponentEconomyDefense: 0.15,
			OpponentHandBase:       0.08,
			OpponentHandPlanning:   0.15,
		},
		Zone: ZoneTuning{
			Base: 1, Chain: 1, Faction: 1, HighValue: 1, Location: 1,
			SpecialBonus: 1, OwnerAggression: 1, SignalCapture: 1, DangerResponse: 1,
		},
		Media: MediaTuning{
			Base: 1, Chain: 1, Faction: 1, TruthObjective: 1, ResourceSwing: 1, Discard: 1, Draw: 1,
		},
		Attack: AttackTuning{
			Base: 1, Chain: 1, Faction: 1, Comeback: 1, ResourceThreat: 1,
			AggressionResponse: 1, IPDamage: 1, Discard: 1, AheadPenalty: 1, PresetAggression: 1,
		},
		Defensive: DefensiveTuning{
			Base: 1, Chain: 1, Faction: 1, ThreatResponse: 1, TruthCrisis: 1, RecentAttack: 1, ImminentLoss: 1,
			PresetAggression: 1,
		},
	}
}

// Tuning section names, as used in configuration files
const (
	SectionEvaluate       = "evaluate"
	SectionDynamicWeights = "dynamic_weights"
	SectionZone           = "zone"
	SectionMedia          = "media"
	SectionAttack         = "attack"
	SectionDefensive      = "defensive"
)

func (t *Tuning) section(name string) (map[string]*float64, bool) {
	switch name {
	case SectionEvaluate:
		e := &t.Evaluate
		return map[string]*float64{
			"territorial":      &e.Territorial,
			"resource":         &e.Resource,
			"hand":             &e.Hand,
			"threat":           &e.Threat,
			"agenda":           &e.Agenda,
			"pressure":         &e.Pressure,
			"truth":            &e.Truth,
			"opponent_economy": &e.OpponentEconomy,
			"opponent_hand":    &e.OpponentHand,
		}, true
	case SectionDynamicWeights:
		d := &t.DynamicWeights
		return map[string]*float64{
			"territorial_base":         &d.TerritorialBase,
			"territorial_personality":  &d.TerritorialPersonality,
			"resource_base":            &d.ResourceBase,
			"resource_personality":     &d.ResourcePersonality,
			"hand_base":                &d.HandBase,
			"hand_planning":            &d.HandPlanning,
			"threat_base":              &d.ThreatBase,
			"threat_defensiveness":     &d.ThreatDefensiveness,
			"agenda_base":              &d.AgendaBase,
			"agenda_planning":          &d.AgendaPlanning,
			"pressure_base":            &d.PressureBase,
			"pressure_territorial":     &d.PressureTerritorial,
			"truth_base":               &d.TruthBase,
			"truth_territorial":        &d.TruthTerritorial,
			"opponent_economy_base":    &d.OpponentEconomyBase,
			"opponent_economy_defense": &d.OpponentEconomyDefense,
			"opponent_hand_base":       &d.OpponentHandBase,
			"opponent_hand_planning":   &d.OpponentHandPlanning,
		}, true
	case SectionZone:
		z := &t.Zone
		return map[string]*float64{
			"base":             &z.Base,
			"chain":            &z.Chain,
			"faction":          &z.Faction,
			"high_value":       &z.HighValue,
			"location":         &z.Location,
			"special_bonus":    &z.SpecialBonus,
			"owner_aggression": &z.OwnerAggression,
			"signal_capture":   &z.SignalCapture,
			"danger_response":  &z.DangerResponse,
		}, true
	case SectionMedia:
		m := &t.Media
		return map[string]*float64{
			"base":            &m.Base,
			"chain":           &m.Chain,
			"faction":         &m.Faction,
			"truth_objective": &m.TruthObjective,
			"resource_swing":  &m.ResourceSwing,
			"discard":         &m.Discard,
			"draw":            &m.Draw,
		}, true
	case SectionAttack:
		a := &t.Attack
		return map[string]*float64{
			"base":                &a.Base,
			"chain":               &a.Chain,
			"faction":             &a.Faction,
			"comeback":            &a.Comeback,
			"resource_threat":     &a.ResourceThreat,
			"aggression_response": &a.AggressionResponse,
			"ip_damage":           &a.IPDamage,
			"discard":             &a.Discard,
			"ahead_penalty":       &a.AheadPenalty,
			"preset_aggression":   &a.PresetAggression,
		}, true
	case SectionDefensive:
		d := &t.Defensive
		return map[string]*float64{
			"base":              &d.Base,
			"chain":             &d.Chain,
			"faction":           &d.Faction,
			"threat_response":   &d.ThreatResponse,
			"truth_crisis":      &d.TruthCrisis,
			"recent_attack":     &d.RecentAttack,
			"imminent_loss":     &d.ImminentLoss,
			"preset_aggression": &d.PresetAggression,
		}, true
	default:
		return nil, false
	}
}

// Set overrides one tuning value. Non-finite and negative values are stored
// as 0; unknown sections or keys are an error.
func (t *Tuning) Set(section, key string, value float64) error {
	fields, ok := t.section(section)
	if !ok {
		return fmt.Errorf("unknown tuning section %q", section)
	}
	ptr, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown tuning key %q in section %q", key, section)
	}
	if !finite(value) || value < 0 {
		value = 0
	}
	*ptr = value
	return nil
}

// Keys lists the keys accepted by a section, sorted
func (t *Tuning) Keys(section string) []string {
	fields, ok := t.section(section)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TuningSections lists the configurable sections
func TuningSections() []string {
	return []string{
		SectionEvaluate, SectionDynamicWeights, SectionZone,
		SectionMedia, SectionAttack, SectionDefensive,
	}
}

package game

// Clone returns a deep copy so search code can mutate freely
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}

	c := *s
	c.Hand = cloneCards(s.Hand)
	c.States = append([]State(nil), s.States...)

	if s.AIAgenda != nil {
		a := *s.AIAgenda
		c.AIAgenda = &a
	}
	if s.PlayerAgenda != nil {
		a := *s.PlayerAgenda
		c.PlayerAgenda = &a
	}

	if s.PlaysThisRound != nil {
		c.PlaysThisRound = make([]PlayRecord, len(s.PlaysThisRound))
		for i, rec := range s.PlaysThisRound {
			rec.Card = cloneCard(rec.Card)
			c.PlaysThisRound[i] = rec
		}
	}
	return &c
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, card := range cards {
		out[i] = cloneCard(card)
	}
	return out
}

func cloneCard(c Card) Card {
	c.Tags = append([]string(nil), c.Tags...)
	return c
}

// StatesOwnedBy returns the IDs of states held by owner, in map order
func (s *Snapshot) StatesOwnedBy(owner Owner) []string {
	if s == nil {
		return nil
	}
	var ids []string
	for _, st := range s.States {
		if normalizeOwner(st.Owner) == owner {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// CountOwned returns how many states owner holds
func (s *Snapshot) CountOwned(owner Owner) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, st := range s.States {
		if normalizeOwner(st.Owner) == owner {
			n++
		}
	}
	return n
}

// StateByID returns the index of the state with id, or -1
func (s *Snapshot) StateByID(id string) int {
	if s == nil || id == "" {
		return -1
	}
	for i, st := range s.States {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// PlaysBy returns this round's plays made by actor, oldest first
func (s *Snapshot) PlaysBy(actor Actor) []PlayRecord {
	if s == nil {
		return nil
	}
	var out []PlayRecord
	for _, rec := range s.PlaysThisRound {
		if rec.Player == actor {
			out = append(out, rec)
		}
	}
	return out
}

// CountPlays counts plays by actor this round, optionally filtered by type
func (s *Snapshot) CountPlays(actor Actor, cardType CardType) int {
	n := 0
	for _, rec := range s.PlaysBy(actor) {
		if cardType == "" || rec.Card.Type == cardType {
			n++
		}
	}
	return n
}

// LastPlayBy returns the most recent play by actor this round
func (s *Snapshot) LastPlayBy(actor Actor) (PlayRecord, bool) {
	plays := s.PlaysBy(actor)
	if len(plays) == 0 {
		return PlayRecord{}, false
	}
	return plays[len(plays)-1], true
}

// OwnerOf returns the owner of state, with unknown owners reported as neutral
func OwnerOf(st State) Owner {
	return normalizeOwner(st.Owner)
}

func normalizeOwner(o Owner) Owner {
	switch o {
	case OwnerAI, OwnerPlayer:
		return o
	default:
		return OwnerNeutral
	}
}

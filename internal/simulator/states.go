package simulator

import "github.com/lox/shadowgov/sdk/game"

type mapState struct {
	id, name        string
	baseIP, defense int
}

// usaStates is the full board; each match draws Rules.StateCount of them
var usaStates = []mapState{
	{"CA", "California", 4, 4},
	{"TX", "Texas", 4, 4},
	{"NY", "New York", 5, 5},
	{"FL", "Florida", 2, 2},
	{"IL", "Illinois", 3, 3},
	{"PA", "Pennsylvania", 3, 3},
	{"OH", "Ohio", 3, 3},
	{"GA", "Georgia", 3, 3},
	{"NC", "North Carolina", 3, 3},
	{"MI", "Michigan", 3, 3},
	{"DC", "Washington DC", 5, 5},
	{"WA", "Washington", 3, 3},
	{"NV", "Nevada", 2, 2},
	{"CO", "Colorado", 2, 2},
	{"VA", "Virginia", 3, 3},
	{"MD", "Maryland", 3, 3},
	{"LA", "Louisiana", 2, 2},
	{"TN", "Tennessee", 2, 2},
	{"AL", "Alabama", 2, 2},
	{"KY", "Kentucky", 2, 2},
	{"SC", "South Carolina", 2, 2},
	{"AR", "Arkansas", 2, 2},
	{"MS", "Mississippi", 2, 2},
	{"AZ", "Arizona", 2, 2},
	{"UT", "Utah", 2, 2},
	{"NM", "New Mexico", 2, 2},
	{"WI", "Wisconsin", 2, 2},
	{"MN", "Minnesota", 2, 2},
	{"MO", "Missouri", 2, 2},
	{"IN", "Indiana", 2, 2},
	{"CT", "Connecticut", 3, 3},
	{"OR", "Oregon", 2, 2},
	{"AK", "Alaska", 1, 1},
	{"HI", "Hawaii", 1, 1},
	{"WY", "Wyoming", 1, 1},
	{"VT", "Vermont", 1, 1},
	{"DE", "Delaware", 2, 2},
	{"NH", "New Hampshire", 1, 1},
	{"RI", "Rhode Island", 1, 1},
	{"ME", "Maine", 1, 1},
	{"MA", "Massachusetts", 3, 3},
	{"NJ", "New Jersey", 3, 3},
	{"NE", "Nebraska", 1, 1},
	{"KS", "Kansas", 1, 1},
	{"ND", "North Dakota", 1, 1},
	{"SD", "South Dakota", 1, 1},
	{"IA", "Iowa", 1, 1},
	{"OK", "Oklahoma", 2, 2},
	{"MT", "Montana", 1, 1},
	{"ID", "Idaho", 1, 1},
	{"WV", "West Virginia", 1, 1},
}

func (m mapState) toState() game.State {
	return game.State{
		ID:      m.id,
		Name:    m.name,
		BaseIP:  m.baseIP,
		Defense: m.defense,
		Owner:   game.OwnerNeutral,
	}
}

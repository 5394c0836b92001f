package holdem

import (
	"encoding/json"
)

// Street represents the phase of a hand
type Street int

// constants for Street
const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
	StreetSettled
)

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown"
	case StreetSettled:
		return "settled"
	}

	return ""
}

// isBetting returns true if the street accepts betting actions
func (s Street) isBetting() bool {
	return s >= StreetPreflop && s <= StreetRiver
}

// MarshalJSON encodes JSON
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

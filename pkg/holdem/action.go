package holdem

import (
	"strings"
)

// ActionType is the type of betting action a player can take
type ActionType string

// the three inbound actions; a call with nothing owed is a check
const (
	ActionFold  ActionType = "fold"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

// Action is a betting action submitted by a player.
// Amount is only meaningful for raises and is the increment above the
// current street bet.
type Action struct {
	Type   ActionType `json:"action"`
	Amount int        `json:"amount"`
}

// ActionTypeFromString parses an action type
func ActionTypeFromString(s string) (ActionType, error) {
	switch ActionType(strings.ToLower(s)) {
	case ActionFold:
		return ActionFold, nil
	case ActionCall:
		return ActionCall, nil
	case ActionRaise:
		return ActionRaise, nil
	}

	return "", ErrInvalidAction
}

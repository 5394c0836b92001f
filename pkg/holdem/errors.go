package holdem

// RejectionError is a user-correctable rejection: the action was refused, no
// state changed, and the caller may retry with a corrected action.
type RejectionError string

func (r RejectionError) Error() string {
	return string(r)
}

// rejections returned by Apply
const (
	// ErrMatchOver is returned for any action after the match has ended
	ErrMatchOver = RejectionError("the match has ended")

	// ErrNotBettingRound is returned when no betting action is expected
	ErrNotBettingRound = RejectionError("not in a betting round")

	// ErrNotYourTurn is returned when the sender is not the current turn-holder
	ErrNotYourTurn = RejectionError("it is not your turn")

	// ErrCannotAct is returned when the sender has folded or is all-in
	ErrCannotAct = RejectionError("you cannot act in this hand")

	// ErrRaiseBelowMinimum is returned for a non-all-in raise below one big blind
	ErrRaiseBelowMinimum = RejectionError("raise is below the minimum increment")

	// ErrInsufficientChips is returned when a raise would cost more than the stack
	ErrInsufficientChips = RejectionError("not enough chips for that raise")

	// ErrInvalidAction is returned for an unknown action type
	ErrInvalidAction = RejectionError("invalid action")
)

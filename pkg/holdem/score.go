package holdem

import (
	"encoding/json"
)

// Category is the category of a five-card poker hand
type Category int

// hand categories, weakest first
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "high-card"
	case OnePair:
		return "one-pair"
	case TwoPair:
		return "two-pair"
	case ThreeOfAKind:
		return "three-of-a-kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full-house"
	case FourOfAKind:
		return "four-of-a-kind"
	case StraightFlush:
		return "straight-flush"
	case RoyalFlush:
		return "royal-flush"
	}

	return ""
}

// MarshalJSON encodes JSON
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(c),
		Name: c.String(),
	})
}

// Score is an ordered hand score: the category followed by its tiebreak ranks.
// A higher category always outranks a lower one; within a category the tiebreaks
// compare lexicographically, with missing trailing elements treated as zero.
type Score []int

// Category returns the hand category the score encodes
func (s Score) Category() Category {
	if len(s) == 0 {
		return HighCard
	}

	return Category(s[0])
}

// Compare returns 1 if s beats other, -1 if other beats s, and 0 on a draw
func (s Score) Compare(other Score) int {
	n := len(s)
	if len(other) > n {
		n = len(other)
	}

	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(s) {
			a = s[i]
		}
		if i < len(other) {
			b = other[i]
		}

		if a > b {
			return 1
		} else if a < b {
			return -1
		}
	}

	return 0
}

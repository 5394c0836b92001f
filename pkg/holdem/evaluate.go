package holdem

import (
	"fmt"
	"sort"

	"headsupholdem-server/pkg/deck"
)

// HandResult is the best five-card hand found for a player along with its score
type HandResult struct {
	Cards []*deck.Card `json:"cards"`
	Score Score        `json:"score"`
}

// Category returns the category of the best hand
func (h *HandResult) Category() Category {
	return h.Score.Category()
}

// Evaluate5 scores exactly five cards
func Evaluate5(cards []*deck.Card) Score {
	if len(cards) != 5 {
		panic(fmt.Sprintf("Evaluate5 requires 5 cards, got %d", len(cards)))
	}

	ranks := make([]int, 5)
	suitCounts := make(map[deck.Suit]int)
	rankCounts := make(map[int]int)
	for i, card := range cards {
		ranks[i] = card.Rank
		suitCounts[card.Suit]++
		rankCounts[card.Rank]++
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isFlush := len(suitCounts) == 1
	straightHigh := straightHighCard(ranks)

	if isFlush && straightHigh > 0 {
		if straightHigh == deck.Ace {
			return Score{int(RoyalFlush), deck.Ace}
		}

		return Score{int(StraightFlush), straightHigh}
	}

	if quad := rankWithCount(rankCounts, 4); quad > 0 {
		kicker := 0
		for _, r := range ranks {
			if r != quad {
				kicker = r
				break
			}
		}

		return Score{int(FourOfAKind), quad, kicker}
	}

	trips := rankWithCount(rankCounts, 3)
	pairs := ranksWithCount(rankCounts, 2)

	if trips > 0 && len(pairs) > 0 {
		return Score{int(FullHouse), trips, pairs[0]}
	}

	if isFlush {
		return append(Score{int(Flush)}, ranks...)
	}

	if straightHigh > 0 {
		return Score{int(Straight), straightHigh}
	}

	if trips > 0 {
		kickers := kickerRanks(ranks, 2, trips)
		return append(Score{int(ThreeOfAKind), trips}, kickers...)
	}

	if len(pairs) == 2 {
		kickers := kickerRanks(ranks, 1, pairs[0], pairs[1])
		return append(Score{int(TwoPair), pairs[0], pairs[1]}, kickers...)
	}

	if len(pairs) == 1 {
		kickers := kickerRanks(ranks, 3, pairs[0])
		return append(Score{int(OnePair), pairs[0]}, kickers...)
	}

	return append(Score{int(HighCard)}, ranks...)
}

// BestHand finds the best five-card hand from two hole cards plus the full board.
// It enumerates all C(7,5)=21 subsets and keeps the maximum by Score.Compare.
func BestHand(hole, community []*deck.Card) *HandResult {
	all := make([]*deck.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)

	if len(all) < 5 {
		panic(fmt.Sprintf("BestHand requires at least 5 cards, got %d", len(all)))
	}

	var best *HandResult
	forEachCombination(all, 5, func(combo []*deck.Card) {
		score := Evaluate5(combo)
		if best == nil || score.Compare(best.Score) > 0 {
			cards := make([]*deck.Card, 5)
			copy(cards, combo)
			best = &HandResult{Cards: cards, Score: score}
		}
	})

	return best
}

// straightHighCard returns the high card of a straight formed by the five
// descending-sorted ranks, or 0 if they do not form one. The wheel
// (A,5,4,3,2) is checked first and scores as a 5-high straight.
func straightHighCard(sorted []int) int {
	if sorted[0] == deck.Ace && sorted[1] == 5 && sorted[2] == 4 && sorted[3] == 3 && sorted[4] == 2 {
		return 5
	}

	for i := 0; i < 4; i++ {
		if sorted[i]-sorted[i+1] != 1 {
			return 0
		}
	}

	return sorted[0]
}

func rankWithCount(rankCounts map[int]int, want int) int {
	for rank, count := range rankCounts {
		if count == want {
			return rank
		}
	}

	return 0
}

func ranksWithCount(rankCounts map[int]int, want int) []int {
	var ranks []int
	for rank, count := range rankCounts {
		if count == want {
			ranks = append(ranks, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// kickerRanks returns up to n of the highest ranks not in exclude
func kickerRanks(sorted []int, n int, exclude ...int) []int {
	kickers := make([]int, 0, n)
	for _, rank := range sorted {
		skip := false
		for _, ex := range exclude {
			if rank == ex {
				skip = true
				break
			}
		}

		if skip {
			continue
		}

		kickers = append(kickers, rank)
		if len(kickers) == n {
			break
		}
	}

	return kickers
}

// forEachCombination calls fn with each k-combination of cards.
// The slice passed to fn is reused between calls.
func forEachCombination(cards []*deck.Card, k int, fn func([]*deck.Card)) {
	combo := make([]*deck.Card, 0, k)

	var recurse func(start int)
	recurse = func(start int) {
		if len(combo) == k {
			fn(combo)
			return
		}

		for i := start; i <= len(cards)-(k-len(combo)); i++ {
			combo = append(combo, cards[i])
			recurse(i + 1)
			combo = combo[:len(combo)-1]
		}
	}

	recurse(0)
}

package stats

import (
	"lightningbowl-sync/models"
	"sort"
)

// neighbours lists the pins touching each pin on the deck.
var neighbours = map[int][]int{
	1:  {2, 3},
	2:  {1, 3, 4, 5},
	3:  {1, 2, 5, 6},
	4:  {2, 5, 7, 8},
	5:  {2, 3, 4, 6, 8, 9},
	6:  {3, 5, 9, 10},
	7:  {4, 8},
	8:  {4, 5, 7, 9},
	9:  {5, 6, 8, 10},
	10: {6, 9},
}

// lane is the lateral board position of each pin, left to right.
var lane = map[int]int{7: 0, 4: 1, 2: 2, 8: 2, 1: 3, 5: 3, 3: 4, 9: 4, 6: 5, 10: 6}

// IsSplit reports whether the leave is a split: the head pin is down and the
// standing pins do not form one connected group.
func IsSplit(standing []int) bool {
	if len(standing) < 2 {
		return false
	}
	up := map[int]bool{}
	for _, p := range standing {
		up[p] = true
	}
	if up[1] {
		return false
	}

	seen := map[int]bool{standing[0]: true}
	queue := []int{standing[0]}
	for len(queue) > 0 {
		pin := queue[0]
		queue = queue[1:]
		for _, n := range neighbours[pin] {
			if up[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) < len(up)
}

// IsMakeableSplit reports whether no two laterally adjacent standing pins
// are more than two board positions apart.
func IsMakeableSplit(standing []int) bool {
	if !IsSplit(standing) {
		return false
	}
	positions := make([]int, 0, len(standing))
	for _, p := range standing {
		positions = append(positions, lane[p])
	}
	sort.Ints(positions)
	for i := 1; i < len(positions); i++ {
		if positions[i]-positions[i-1] > 2 {
			return false
		}
	}
	return true
}

// isPocketHit is a first ball that took out the head pin and one of the pins behind it.
func isPocketHit(standing []int) bool {
	up := map[int]bool{}
	for _, p := range standing {
		up[p] = true
	}
	return !up[1] && (!up[2] || !up[3])
}

// countPins fills the pin-mode statistics from the first ball of each frame.
func countPins(st *models.Stats, g models.Game) {
	for _, f := range g.Frames {
		if len(f.Throws) == 0 {
			continue
		}
		first := f.Throws[0]
		if first.PinsLeftStanding == nil && first.Value != allPins {
			continue
		}

		st.TotalFirstBalls++
		if first.Value == allPins || isPocketHit(first.PinsLeftStanding) {
			st.PocketHits++
		}
		if first.Value == allPins || len(first.PinsLeftStanding) == 0 {
			continue
		}

		second, _ := throwValue(f, 1)
		converted := first.Value+second == allPins
		leave := first.PinsLeftStanding

		if len(leave) == 1 {
			st.SinglePinSpareOpportunities++
			if converted {
				st.SinglePinSpares++
			}
		} else {
			st.MultiPinSpareOpportunities++
			if converted {
				st.MultiPinSpares++
			}
		}

		if IsSplit(leave) {
			st.SplitOpportunities++
			if converted {
				st.Splits++
			}
			if IsMakeableSplit(leave) {
				st.MakeableSplitOpportunities++
				if converted {
					st.MakeableSplits++
				}
			}
		} else {
			st.NonSplitSpareOpportunities++
			if converted {
				st.NonSplitSpares++
			}
		}
	}
}

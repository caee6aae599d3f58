package stats

import (
	"lightningbowl-sync/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGame turns per-frame throw values into a game. Scores are supplied by the caller.
func buildGame(id string, score int, frames ...[]int) models.Game {
	g := models.Game{GameID: id, TotalScore: score, Date: time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC).UnixMilli()}
	for i, throws := range frames {
		f := models.Frame{FrameIndex: i + 1}
		for j, v := range throws {
			f.Throws = append(f.Throws, models.Throw{Value: v, ThrowIndex: j + 1})
		}
		g.Frames = append(g.Frames, f)
	}
	return g
}

func repeat(n int, frame []int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = frame
	}
	return out
}

func perfectGame() models.Game {
	frames := append(repeat(9, []int{10}), []int{10, 10, 10})
	g := buildGame("perfect", 300, frames...)
	g.IsPerfect = true
	return g
}

func TestCompute_Empty(t *testing.T) {
	st := Compute(nil)

	assert.Equal(t, 0, st.TotalGames)
	assert.Len(t, st.PinCounts, 11)
	assert.NotNil(t, st.SeriesAverages)
}

func TestCompute_PerfectGame(t *testing.T) {
	st := Compute([]models.Game{perfectGame()})

	assert.Equal(t, 1, st.TotalGames)
	assert.Equal(t, 1, st.PerfectGameCount)
	assert.Equal(t, 300, st.HighGame)
	assert.Equal(t, 12, st.TotalStrikes)
	assert.Equal(t, 12, st.LongestStrikeStreak)
	assert.Equal(t, 1, st.StrikeoutCount)
	assert.Equal(t, 0, st.TurkeyCount)
	assert.Equal(t, [12]int{}, st.BaggerCounts)
	assert.InDelta(t, 100.0, st.StrikePercentage, 0.001)
	assert.InDelta(t, 100.0, st.StrikeToStrikePercentage, 0.001)
	assert.Equal(t, 0, st.TotalSpares+st.TotalSparesMissed)
}

func TestCompute_SparesAndOpens(t *testing.T) {
	// nine frames of 7/3 (spare, 3 left) and a tenth of 8/1 (open, 2 left)
	frames := append(repeat(9, []int{7, 3}), []int{8, 1})
	g := buildGame("spares", 0, frames...)

	st := Compute([]models.Game{g})

	assert.Equal(t, 9, st.TotalSpares)
	assert.Equal(t, 1, st.TotalSparesMissed)
	assert.Equal(t, 9, st.PinCounts[3])
	assert.Equal(t, 1, st.MissedCounts[2])
	assert.InDelta(t, 100.0, st.SpareRates[3], 0.001)
	assert.InDelta(t, 0.0, st.SpareRates[2], 0.001)
	assert.InDelta(t, 90.0, st.SpareConversionPercentage, 0.001)
	assert.InDelta(t, 10.0, st.OverallMissedRate, 0.001)
	assert.InDelta(t, 90.0, st.MarkPercentage, 0.001)
	assert.InDelta(t, 7.1, st.AverageFirstCount, 0.001)
	assert.Equal(t, 0, st.AllSparesGameCount)
}

func TestCompute_Streaks(t *testing.T) {
	// X X X 9/ X X X X 9- then 10th 9/9
	frames := [][]int{{10}, {10}, {10}, {9, 1}, {10}, {10}, {10}, {10}, {9, 0}, {9, 1, 9}}
	st := Compute([]models.Game{buildGame("streaks", 0, frames...)})

	assert.Equal(t, 1, st.TurkeyCount)
	assert.Equal(t, 1, st.BaggerCounts[4])
	assert.Equal(t, 4, st.LongestStrikeStreak)
	assert.Equal(t, 7, st.TotalStrikes)
}

func TestCompute_Dutch200AndAllSpares(t *testing.T) {
	var dutch [][]int
	for i := 0; i < 9; i++ {
		if i%2 == 0 {
			dutch = append(dutch, []int{10})
		} else {
			dutch = append(dutch, []int{5, 5})
		}
	}
	dutch = append(dutch, []int{5, 5, 10})

	allSpares := append(repeat(9, []int{9, 1}), []int{9, 1, 9})

	st := Compute([]models.Game{
		buildGame("dutch", 200, dutch...),
		buildGame("spares", 190, allSpares...),
	})

	assert.Equal(t, 1, st.Dutch200Count)
	assert.Equal(t, 1, st.AllSparesGameCount)
}

func TestCompute_SeriesAndVaripapa(t *testing.T) {
	// first game ends with six strikes, second starts with six
	endStrong := append(append(repeat(6, []int{9, 0}), repeat(3, []int{10})...), []int{10, 10, 10})
	startStrong := append(append(repeat(6, []int{10}), repeat(3, []int{9, 0})...), []int{9, 0})

	base := time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC)
	games := []models.Game{
		buildGame("g1", 150, endStrong...),
		buildGame("g2", 160, startStrong...),
		buildGame("g3", 200, repeat(10, []int{9, 0})...),
	}
	for i := range games {
		games[i].IsSeries = true
		games[i].SeriesID = "s1"
		games[i].Date = base.Add(time.Duration(i) * time.Hour).UnixMilli()
	}

	st := Compute(games)

	assert.Equal(t, 1, st.Varipapa300Count)
	assert.Equal(t, 510, st.SeriesHighs[3])
	assert.InDelta(t, 510.0, st.SeriesAverages[3], 0.001)
	assert.InDelta(t, 3.0, st.AverageGamesPerSession, 0.001)
}

func TestIsSplit(t *testing.T) {
	tests := []struct {
		name     string
		standing []int
		split    bool
		makeable bool
	}{
		{name: "7-10", standing: []int{7, 10}, split: true},
		{name: "4-6", standing: []int{4, 6}, split: true},
		{name: "3-10 baby split", standing: []int{3, 10}, split: true, makeable: true},
		{name: "2-7 baby split", standing: []int{2, 7}, split: true, makeable: true},
		{name: "head pin standing", standing: []int{1, 7}, split: false},
		{name: "single pin", standing: []int{10}, split: false},
		{name: "connected 2-4-5", standing: []int{2, 4, 5}, split: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.split, IsSplit(tt.standing))
			assert.Equal(t, tt.makeable, IsMakeableSplit(tt.standing))
		})
	}
}

func TestCompute_PinMode(t *testing.T) {
	g := buildGame("pins", 0, append(repeat(9, []int{8, 2}), []int{10, 10, 10})...)
	g.IsPinMode = true
	for i := 0; i < 9; i++ {
		if i%2 == 0 {
			g.Frames[i].Throws[0].PinsLeftStanding = []int{7, 10}
		} else {
			g.Frames[i].Throws[0].PinsLeftStanding = []int{4, 7}
		}
		g.Frames[i].Throws[1].PinsLeftStanding = []int{}
	}

	st := Compute([]models.Game{g})

	require.Equal(t, 10, st.TotalFirstBalls)
	assert.Equal(t, 10, st.PocketHits)
	assert.Equal(t, 5, st.SplitOpportunities)
	assert.Equal(t, 5, st.Splits)
	assert.Equal(t, 0, st.MakeableSplitOpportunities)
	assert.Equal(t, 4, st.NonSplitSpareOpportunities)
	assert.Equal(t, 9, st.MultiPinSpareOpportunities)
	assert.InDelta(t, 100.0, st.SplitConversionPercentage, 0.001)
}

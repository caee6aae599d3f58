// Package stats derives the aggregated values shown on the statistics sheet
// from the recorded game history.
package stats

import (
	"lightningbowl-sync/models"
	"sort"
	"time"
)

const (
	allPins   = 10
	maxFrames = 10
	day       = 24 * time.Hour
)

// Compute aggregates games. An empty history yields zero values.
func Compute(games []models.Game) models.Stats {
	st := models.Stats{
		PinCounts:      make([]int, allPins+1),
		MissedCounts:   make([]int, allPins+1),
		SpareRates:     make([]float64, allPins+1),
		SeriesAverages: make(map[int]float64),
		SeriesHighs:    make(map[int]int),
	}
	if len(games) == 0 {
		return st
	}

	var (
		scoreSum        int
		firstBallSum    int
		firstBalls      int
		strikeFrames    int
		spareFrames     int
		openFrames      int
		strikeFollowups int
		strikeRepeats   int
	)

	for _, g := range games {
		st.TotalGames++
		scoreSum += g.TotalScore
		if g.TotalScore > st.HighGame {
			st.HighGame = g.TotalScore
		}
		if g.IsPerfect {
			st.PerfectGameCount++
		}
		if g.IsClean {
			st.CleanGameCount++
		}

		for _, f := range g.Frames {
			if len(f.Throws) == 0 {
				continue
			}
			firstBallSum += f.Throws[0].Value
			firstBalls++
			switch frameResult(f) {
			case resultStrike:
				strikeFrames++
			case resultSpare:
				spareFrames++
			default:
				openFrames++
			}
		}

		for _, o := range spareChances(g) {
			if o.converted {
				st.TotalSpares++
				st.PinCounts[o.left]++
			} else {
				st.TotalSparesMissed++
				st.MissedCounts[o.left]++
			}
		}

		racks := fullRackThrows(g)
		for i, strike := range racks {
			if strike {
				st.TotalStrikes++
				if i+1 < len(racks) {
					strikeFollowups++
					if racks[i+1] {
						strikeRepeats++
					}
				}
			}
		}
		countStreaks(&st, racks)

		if isStrikeout(g) {
			st.StrikeoutCount++
		}
		if isDutch200(g) {
			st.Dutch200Count++
		}
		if isAllSpares(g) {
			st.AllSparesGameCount++
		}

		if g.IsPinMode {
			countPins(&st, g)
		}
	}

	n := float64(st.TotalGames)
	st.AverageScore = float64(scoreSum) / n
	st.TotalPins = scoreSum
	st.CleanGamePercentage = percent(st.CleanGameCount, st.TotalGames)
	if firstBalls > 0 {
		st.AverageFirstCount = float64(firstBallSum) / float64(firstBalls)
	}

	st.AverageStrikesPerGame = float64(st.TotalStrikes) / n
	st.AverageSparesPerGame = float64(st.TotalSpares) / n
	st.AverageOpensPerGame = float64(st.TotalSparesMissed) / n
	st.SpareConversionPercentage = percent(st.TotalSpares, st.TotalSpares+st.TotalSparesMissed)

	frames := strikeFrames + spareFrames + openFrames
	st.StrikePercentage = percent(strikeFrames, frames)
	st.SparePercentage = percent(spareFrames, frames)
	st.OpenPercentage = percent(openFrames, frames)
	st.MarkPercentage = percent(strikeFrames+spareFrames, frames)

	for left := 1; left <= allPins; left++ {
		st.SpareRates[left] = percent(st.PinCounts[left], st.PinCounts[left]+st.MissedCounts[left])
	}
	st.OverallSpareRate = st.SpareConversionPercentage
	if st.TotalSpares+st.TotalSparesMissed > 0 {
		st.OverallMissedRate = 100 - st.OverallSpareRate
	}

	st.StrikeToStrikePercentage = percent(strikeRepeats, strikeFollowups)
	st.Varipapa300Count = countVaripapa(games)

	computeFrequency(&st, games)
	computeSeries(&st, games)

	st.PocketHitPercentage = percent(st.PocketHits, st.TotalFirstBalls)
	st.SinglePinSparePercentage = percent(st.SinglePinSpares, st.SinglePinSpareOpportunities)
	st.MultiPinSparePercentage = percent(st.MultiPinSpares, st.MultiPinSpareOpportunities)
	st.NonSplitSparePercentage = percent(st.NonSplitSpares, st.NonSplitSpareOpportunities)
	st.SplitConversionPercentage = percent(st.Splits, st.SplitOpportunities)
	st.MakeableSplitPercentage = percent(st.MakeableSplits, st.MakeableSplitOpportunities)

	return st
}

func percent(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

type result int

const (
	resultOpen result = iota
	resultSpare
	resultStrike
)

func throwValue(f models.Frame, i int) (int, bool) {
	if i >= len(f.Throws) {
		return 0, false
	}
	return f.Throws[i].Value, true
}

// frameResult classifies a frame by its first two balls.
func frameResult(f models.Frame) result {
	first, _ := throwValue(f, 0)
	if first == allPins {
		return resultStrike
	}
	second, ok := throwValue(f, 1)
	if ok && first+second == allPins {
		return resultSpare
	}
	return resultOpen
}

// spareChance is one throw at a partial rack.
type spareChance struct {
	left      int
	converted bool
}

func spareChances(g models.Game) []spareChance {
	var out []spareChance
	for i, f := range g.Frames {
		if i < maxFrames-1 {
			first, ok := throwValue(f, 0)
			if !ok || first == allPins {
				continue
			}
			second, _ := throwValue(f, 1)
			out = append(out, spareChance{left: allPins - first, converted: first+second == allPins})
			continue
		}

		// tenth frame: a fresh rack follows every strike or spare
		standing := allPins
		for j := 0; j < len(f.Throws) && j < 3; j++ {
			v := f.Throws[j].Value
			if standing < allPins {
				out = append(out, spareChance{left: standing, converted: v == standing})
				standing = allPins
				continue
			}
			if v < allPins {
				standing = allPins - v
			}
		}
	}
	return out
}

// fullRackThrows lists, in order, every throw made at a full rack and whether it was a strike.
func fullRackThrows(g models.Game) []bool {
	var out []bool
	for i, f := range g.Frames {
		if i < maxFrames-1 {
			if first, ok := throwValue(f, 0); ok {
				out = append(out, first == allPins)
			}
			continue
		}
		standing := allPins
		for j := 0; j < len(f.Throws) && j < 3; j++ {
			v := f.Throws[j].Value
			if standing == allPins {
				out = append(out, v == allPins)
				if v < allPins {
					standing = allPins - v
				}
				continue
			}
			// spare attempt; the rack is reset either way
			standing = allPins
		}
	}
	return out
}

// countStreaks records turkeys (3 in a row) and n-baggers (4 to 11).
// Twelve in a row is a perfect game and not counted as a bagger.
func countStreaks(st *models.Stats, racks []bool) {
	run := 0
	flush := func() {
		if run > st.LongestStrikeStreak {
			st.LongestStrikeStreak = run
		}
		switch {
		case run == 3:
			st.TurkeyCount++
		case run >= 4 && run < len(st.BaggerCounts):
			st.BaggerCounts[run]++
		}
		run = 0
	}
	for _, strike := range racks {
		if strike {
			run++
			continue
		}
		flush()
	}
	flush()
}

func tenthFrame(g models.Game) (models.Frame, bool) {
	if len(g.Frames) < maxFrames {
		return models.Frame{}, false
	}
	return g.Frames[maxFrames-1], true
}

func isStrikeout(g models.Game) bool {
	f, ok := tenthFrame(g)
	if !ok || len(f.Throws) < 3 {
		return false
	}
	return f.Throws[0].Value == allPins && f.Throws[1].Value == allPins && f.Throws[2].Value == allPins
}

// isDutch200 is a 200 game of alternating strikes and spares.
func isDutch200(g models.Game) bool {
	if g.TotalScore != 200 || len(g.Frames) < maxFrames {
		return false
	}
	prev := resultOpen
	for _, f := range g.Frames {
		r := frameResult(f)
		if r == resultOpen || r == prev {
			return false
		}
		prev = r
	}
	return true
}

func isAllSpares(g models.Game) bool {
	if len(g.Frames) < maxFrames {
		return false
	}
	for _, f := range g.Frames {
		if frameResult(f) != resultSpare {
			return false
		}
	}
	return true
}

// countVaripapa counts twelve consecutive strikes spanning two games of the
// same series, where neither game is perfect on its own.
func countVaripapa(games []models.Game) int {
	bySeries := map[string][]models.Game{}
	for _, g := range games {
		if g.IsSeries && g.SeriesID != "" {
			bySeries[g.SeriesID] = append(bySeries[g.SeriesID], g)
		}
	}

	count := 0
	for _, series := range bySeries {
		sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
		for i := 0; i+1 < len(series); i++ {
			a, b := fullRackThrows(series[i]), fullRackThrows(series[i+1])
			trailing := 0
			for k := len(a) - 1; k >= 0 && a[k]; k-- {
				trailing++
			}
			leading := 0
			for k := 0; k < len(b) && b[k]; k++ {
				leading++
			}
			if trailing < 12 && leading < 12 && trailing+leading >= 12 {
				count++
			}
		}
	}
	return count
}

func computeFrequency(st *models.Stats, games []models.Game) {
	first, last := games[0].Date, games[0].Date
	sessions := map[string]struct{}{}
	for _, g := range games {
		if g.Date < first {
			first = g.Date
		}
		if g.Date > last {
			last = g.Date
		}
		sessions[time.UnixMilli(g.Date).Format("2006-01-02")] = struct{}{}
	}

	span := time.Duration(last-first) * time.Millisecond
	weeks := span.Hours() / (7 * day).Hours()
	months := span.Hours() / (30 * day).Hours()
	if weeks < 1 {
		weeks = 1
	}
	if months < 1 {
		months = 1
	}

	n := float64(len(games))
	s := float64(len(sessions))
	st.AverageGamesPerWeek = n / weeks
	st.AverageGamesPerMonth = n / months
	st.AverageSessionsPerWeek = s / weeks
	st.AverageSessionsPerMonth = s / months
	st.AverageGamesPerSession = n / s
}

// computeSeries groups series games by id. Only series of 3 to 6 games count.
func computeSeries(st *models.Stats, games []models.Game) {
	totals := map[string]int{}
	sizes := map[string]int{}
	for _, g := range games {
		if !g.IsSeries || g.SeriesID == "" {
			continue
		}
		totals[g.SeriesID] += g.TotalScore
		sizes[g.SeriesID]++
	}

	sums := map[int]int{}
	counts := map[int]int{}
	for id, size := range sizes {
		if size < 3 || size > 6 {
			continue
		}
		sums[size] += totals[id]
		counts[size]++
		if totals[id] > st.SeriesHighs[size] {
			st.SeriesHighs[size] = totals[id]
		}
	}
	for size, c := range counts {
		st.SeriesAverages[size] = float64(sums[size]) / float64(c)
	}
}

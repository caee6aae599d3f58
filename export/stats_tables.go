package export

import (
	"fmt"
	"lightningbowl-sync/models"
	"strconv"
)

// StatsTables lays out the statistics sheet: eight two-column tables side by
// side with one empty column between them.
func StatsTables(st models.Stats) []Table {
	sections := []struct {
		name   string
		header string
		rows   [][]string
	}{
		{"OverallStats", "Overall", overallRows(st)},
		{"SparesStats", "Spares", spareRows(st)},
		{"ThrowStats", "Throw", throwRows(st)},
		{"PinStats", "Pin", pinRows(st)},
		{"StrikeStats", "Strike", strikeRows(st)},
		{"SpecialStats", "Special", specialRows(st)},
		{"PlayFrequency", "Frequency", frequencyRows(st)},
		{"SeriesStats", "Series", seriesRows(st)},
	}

	tables := make([]Table, 0, len(sections))
	for i, s := range sections {
		col := string(rune('A' + i*3))
		tables = append(tables, Table{
			Name:    s.name,
			Start:   col + "1",
			Headers: []string{s.header, "Value"},
			Rows:    s.rows,
		})
	}
	return tables
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func fixed(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func ratio(hits, total int) string {
	if total > 0 {
		return fmt.Sprintf("%d / %d", hits, total)
	}
	return strconv.Itoa(hits)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func overallRows(st models.Stats) [][]string {
	return [][]string{
		{"Total Games", itoa(st.TotalGames)},
		{"Perfect Games", itoa(st.PerfectGameCount)},
		{"Clean Games", itoa(st.CleanGameCount)},
		{"Clean Game %", pct(st.CleanGamePercentage)},
		{"Average Score", fixed(st.AverageScore)},
		{"High Game", itoa(st.HighGame)},
		{"Total Pins", itoa(st.TotalPins)},
		{"First Ball Avg", fixed(st.AverageFirstCount)},
	}
}

func throwRows(st models.Stats) [][]string {
	return [][]string{
		{"Total Strikes", itoa(st.TotalStrikes)},
		{"Strikes per Game", fixed(st.AverageStrikesPerGame)},
		{"Total Spares", itoa(st.TotalSpares)},
		{"Spares per Game", fixed(st.AverageSparesPerGame)},
		{"Total Opens", itoa(st.TotalSparesMissed)},
		{"Opens per Game", fixed(st.AverageOpensPerGame)},
		{"Spare Conversion %", pct(st.SpareConversionPercentage)},
		{"Mark %", pct(st.MarkPercentage)},
		{"Strike %", pct(st.StrikePercentage)},
		{"Spare %", pct(st.SparePercentage)},
		{"Open %", pct(st.OpenPercentage)},
	}
}

func spareRows(st models.Stats) [][]string {
	rows := [][]string{
		{"Total Spares Converted", itoa(st.TotalSpares)},
		{"Total Spares Missed", itoa(st.TotalSparesMissed)},
	}
	for left := 1; left < len(st.PinCounts); left++ {
		label := fmt.Sprintf("%d Pins Hit / Miss / Rate", left)
		if left == 1 {
			label = "1 Pin Hit / Miss / Rate"
		}
		missed, rate := 0, 0.0
		if left < len(st.MissedCounts) {
			missed = st.MissedCounts[left]
		}
		if left < len(st.SpareRates) {
			rate = st.SpareRates[left]
		}
		rows = append(rows, []string{label, fmt.Sprintf("%d / %d / %s", st.PinCounts[left], missed, pct(rate))})
	}
	return append(rows,
		[]string{"Overall Spare Rate", pct(st.OverallSpareRate)},
		[]string{"Overall Missed Rate", pct(st.OverallMissedRate)},
	)
}

func strikeRows(st models.Stats) [][]string {
	rows := [][]string{{"Turkeys", itoa(st.TurkeyCount)}}
	for n := 4; n < len(st.BaggerCounts); n++ {
		rows = append(rows, []string{fmt.Sprintf("%d-Baggers", n), itoa(st.BaggerCounts[n])})
	}
	return append(rows,
		[]string{"Longest Strike Streak", itoa(st.LongestStrikeStreak)},
		[]string{"Strike-to-Strike %", pct(st.StrikeToStrikePercentage)},
		[]string{"Strikeouts (10th Frame)", itoa(st.StrikeoutCount)},
	)
}

func specialRows(st models.Stats) [][]string {
	return [][]string{
		{"Dutch 200s", itoa(st.Dutch200Count)},
		{"Varipapa 300s", itoa(st.Varipapa300Count)},
		{"Full Spare Games", itoa(st.AllSparesGameCount)},
	}
}

func frequencyRows(st models.Stats) [][]string {
	return [][]string{
		{"Avg Games/Week", fixed(st.AverageGamesPerWeek)},
		{"Avg Games/Month", fixed(st.AverageGamesPerMonth)},
		{"Avg Sessions/Week", fixed(st.AverageSessionsPerWeek)},
		{"Avg Sessions/Month", fixed(st.AverageSessionsPerMonth)},
		{"Avg Games/Session", fixed(st.AverageGamesPerSession)},
	}
}

// seriesRows leaves a value empty when no series of that length was bowled.
func seriesRows(st models.Stats) [][]string {
	var rows [][]string
	for n := 3; n <= 6; n++ {
		avg, high := "", ""
		if v, ok := st.SeriesAverages[n]; ok {
			avg = fixed(v)
		}
		if v, ok := st.SeriesHighs[n]; ok {
			high = itoa(v)
		}
		rows = append(rows,
			[]string{fmt.Sprintf("Avg %d-Series Score", n), avg},
			[]string{fmt.Sprintf("High %d-Series", n), high},
		)
	}
	return rows
}

func pinRows(st models.Stats) [][]string {
	return [][]string{
		{"Pocket Hits (Hit/Total)", ratio(st.PocketHits, st.TotalFirstBalls)},
		{"Pocket Hit %", pct(st.PocketHitPercentage)},
		{"Single Pin Spares (Hit/Total)", ratio(st.SinglePinSpares, st.SinglePinSpareOpportunities)},
		{"Single Pin Spare %", pct(st.SinglePinSparePercentage)},
		{"Multi Pin Spares (Hit/Total)", ratio(st.MultiPinSpares, st.MultiPinSpareOpportunities)},
		{"Multi Pin Spare %", pct(st.MultiPinSparePercentage)},
		{"Non-Split Spares (Hit/Total)", ratio(st.NonSplitSpares, st.NonSplitSpareOpportunities)},
		{"Non-Split Spare %", pct(st.NonSplitSparePercentage)},
		{"Split Conversions (Hit/Total)", ratio(st.Splits, st.SplitOpportunities)},
		{"Split Conversion %", pct(st.SplitConversionPercentage)},
		{"Makeable Splits (Hit/Total)", ratio(st.MakeableSplits, st.MakeableSplitOpportunities)},
		{"Makeable Split %", pct(st.MakeableSplitPercentage)},
	}
}

package models

// Stats holds the aggregated values shown on the statistics sheet.
// Index n of PinCounts, MissedCounts and SpareRates refers to spares with n pins left.
type Stats struct {
	TotalGames          int     `json:"totalGames"`
	PerfectGameCount    int     `json:"perfectGameCount"`
	CleanGameCount      int     `json:"cleanGameCount"`
	CleanGamePercentage float64 `json:"cleanGamePercentage"`
	AverageScore        float64 `json:"averageScore"`
	HighGame            int     `json:"highGame"`
	TotalPins           int     `json:"totalPins"`
	AverageFirstCount   float64 `json:"averageFirstCount"`

	TotalStrikes              int     `json:"totalStrikes"`
	AverageStrikesPerGame     float64 `json:"averageStrikesPerGame"`
	TotalSpares               int     `json:"totalSpares"`
	AverageSparesPerGame      float64 `json:"averageSparesPerGame"`
	TotalSparesMissed         int     `json:"totalSparesMissed"`
	AverageOpensPerGame       float64 `json:"averageOpensPerGame"`
	SpareConversionPercentage float64 `json:"spareConversionPercentage"`
	MarkPercentage            float64 `json:"markPercentage"`
	StrikePercentage          float64 `json:"strikePercentage"`
	SparePercentage           float64 `json:"sparePercentage"`
	OpenPercentage            float64 `json:"openPercentage"`

	PinCounts         []int     `json:"pinCounts"`
	MissedCounts      []int     `json:"missedCounts"`
	SpareRates        []float64 `json:"spareRates"`
	OverallSpareRate  float64   `json:"overallSpareRate"`
	OverallMissedRate float64   `json:"overallMissedRate"`

	TurkeyCount              int     `json:"turkeyCount"`
	BaggerCounts             [12]int `json:"baggerCounts"`
	LongestStrikeStreak      int     `json:"longestStrikeStreak"`
	StrikeToStrikePercentage float64 `json:"strikeToStrikePercentage"`
	StrikeoutCount           int     `json:"strikeoutCount"`

	Dutch200Count      int `json:"dutch200Count"`
	Varipapa300Count   int `json:"varipapa300Count"`
	AllSparesGameCount int `json:"allSparesGameCount"`

	AverageGamesPerWeek     float64 `json:"averageGamesPerWeek"`
	AverageGamesPerMonth    float64 `json:"averageGamesPerMonth"`
	AverageSessionsPerWeek  float64 `json:"averageSessionsPerWeek"`
	AverageSessionsPerMonth float64 `json:"averageSessionsPerMonth"`
	AverageGamesPerSession  float64 `json:"averageGamesPerSession"`

	// SeriesAverages and SeriesHighs are keyed by series length (3 to 6).
	SeriesAverages map[int]float64 `json:"seriesAverages"`
	SeriesHighs    map[int]int     `json:"seriesHighs"`

	TotalFirstBalls             int     `json:"totalFirstBalls"`
	PocketHits                  int     `json:"pocketHits"`
	PocketHitPercentage         float64 `json:"pocketHitPercentage"`
	SinglePinSpares             int     `json:"singlePinSpares"`
	SinglePinSpareOpportunities int     `json:"singlePinSpareOpportunities"`
	SinglePinSparePercentage    float64 `json:"singlePinSparePercentage"`
	MultiPinSpares              int     `json:"multiPinSpares"`
	MultiPinSpareOpportunities  int     `json:"multiPinSpareOpportunities"`
	MultiPinSparePercentage     float64 `json:"multiPinSparePercentage"`
	NonSplitSpares              int     `json:"nonSplitSpares"`
	NonSplitSpareOpportunities  int     `json:"nonSplitSpareOpportunities"`
	NonSplitSparePercentage     float64 `json:"nonSplitSparePercentage"`
	Splits                      int     `json:"splits"`
	SplitOpportunities          int     `json:"splitOpportunities"`
	SplitConversionPercentage   float64 `json:"splitConversionPercentage"`
	MakeableSplits              int     `json:"makeableSplits"`
	MakeableSplitOpportunities  int     `json:"makeableSplitOpportunities"`
	MakeableSplitPercentage     float64 `json:"makeableSplitPercentage"`
}

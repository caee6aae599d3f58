package models

type Throw struct {
	Value            int   `json:"value" validate:"gte=0,lte=10"`
	ThrowIndex       int   `json:"throwIndex" validate:"gte=1,lte=3"`
	PinsLeftStanding []int `json:"pinsLeftStanding,omitempty" validate:"max=10,dive,gte=1,lte=10"`
}

type Frame struct {
	FrameIndex int     `json:"frameIndex" validate:"gte=1,lte=10"`
	Throws     []Throw `json:"throws" validate:"max=3,dive"`
}

// Game is one recorded game. Date is Unix milliseconds.
type Game struct {
	GameID      string   `json:"gameId"`
	Date        int64    `json:"date" validate:"required,gt=0"`
	Frames      []Frame  `json:"frames" validate:"max=10,dive"`
	TotalScore  int      `json:"totalScore" validate:"gte=0,lte=300"`
	FrameScores []int    `json:"frameScores"`
	League      string   `json:"league,omitempty"`
	IsPractice  bool     `json:"isPractice"`
	IsClean     bool     `json:"isClean"`
	IsPerfect   bool     `json:"isPerfect"`
	IsSeries    bool     `json:"isSeries"`
	SeriesID    string   `json:"seriesId,omitempty"`
	IsPinMode   bool     `json:"isPinMode"`
	Patterns    []string `json:"patterns,omitempty" validate:"max=2"`
	Balls       []string `json:"balls,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// CreateGameRequest is the body of POST /api/games.
type CreateGameRequest struct {
	Game
}

type CreateLeagueRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

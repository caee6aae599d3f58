package export

import (
	"fmt"
	"io"
	"lightningbowl-sync/models"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Row maps a header name to the cell value below it.
type Row map[string]string

// ReadRows reads the first worksheet, keyed by its header row.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("failed to read excel file: no worksheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read excel file: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := Row{}
		for i, value := range cells {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Import is the result of transforming spreadsheet rows.
type Import struct {
	Games   []models.Game
	Leagues []string
}

// TransformRows rebuilds games from rows. Games come back newest first and
// leagues in order of first appearance.
func TransformRows(rows []Row) (*Import, error) {
	out := &Import{Games: make([]models.Game, 0, len(rows))}
	seen := map[string]bool{}

	for i, row := range rows {
		game, err := transformRow(row)
		if err != nil {
			return nil, fmt.Errorf("data transformation failed: row %d: %w", i+2, err)
		}
		if game.League != "" && !seen[game.League] {
			seen[game.League] = true
			out.Leagues = append(out.Leagues, game.League)
		}
		out.Games = append(out.Games, game)
	}

	sort.SliceStable(out.Games, func(i, j int) bool { return out.Games[i].Date > out.Games[j].Date })
	return out, nil
}

func transformRow(row Row) (models.Game, error) {
	isPinMode := parseBool(row["isPinMode"])

	frames := make([]models.Frame, 0, frameCount)
	for idx := 1; idx <= frameCount; idx++ {
		values, err := parseThrows(row[fmt.Sprintf("Frame %d", idx)])
		if err != nil {
			return models.Game{}, fmt.Errorf("frame %d: %w", idx, err)
		}

		maxThrows := 2
		if idx == frameCount {
			maxThrows = 3
		}

		frame := models.Frame{FrameIndex: idx}
		for k := 0; k < len(values) && k < maxThrows; k++ {
			t := models.Throw{Value: values[k], ThrowIndex: k + 1}
			if isPinMode {
				t.PinsLeftStanding = parsePins(row[pinHeader(idx, k+1)])
			}
			frame.Throws = append(frame.Throws, t)
		}
		frames = append(frames, frame)
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(row["Date"]), time.Local)
	if err != nil {
		return models.Game{}, fmt.Errorf("invalid date %q", row["Date"])
	}

	total, err := strconv.Atoi(strings.TrimSpace(row["Total Score"]))
	if err != nil {
		return models.Game{}, fmt.Errorf("invalid total score %q", row["Total Score"])
	}

	var frameScores []int
	if s := strings.TrimSpace(row["Frame Scores"]); s != "" {
		for _, part := range strings.Split(s, ", ") {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return models.Game{}, fmt.Errorf("invalid frame score %q", part)
			}
			frameScores = append(frameScores, v)
		}
	}

	gameID := strings.TrimSpace(row["Game"])
	if gameID == "" {
		gameID = uuid.NewString()
	}

	return models.Game{
		GameID:      gameID,
		Date:        date.UnixMilli(),
		Frames:      frames,
		TotalScore:  total,
		FrameScores: frameScores,
		League:      row["League"],
		IsPractice:  parseBool(row["Practice"]),
		IsClean:     parseBool(row["Clean"]),
		IsPerfect:   parseBool(row["Perfect"]),
		IsSeries:    parseBool(row["Series"]),
		SeriesID:    row["Series ID"],
		IsPinMode:   isPinMode,
		Patterns:    parsePatterns(row),
		Balls:       splitList(row["Balls"]),
		Note:        row["Notes"],
	}, nil
}

func parseBool(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == "true"
}

func parseThrows(cell string) ([]int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	var values []int
	for _, part := range strings.Split(cell, "/") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid throw %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}

// parsePins returns an empty, non-nil slice for an empty cell and skips unparsable pins.
func parsePins(cell string) []int {
	pins := []int{}
	for _, part := range strings.Split(cell, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			pins = append(pins, v)
		}
	}
	return pins
}

// parsePatterns keeps at most two patterns and falls back to the legacy single Pattern column.
func parsePatterns(row Row) []string {
	if patterns := splitList(row["Patterns"]); len(patterns) > 0 {
		if len(patterns) > 2 {
			patterns = patterns[:2]
		}
		return patterns
	}
	if legacy := strings.TrimSpace(row["Pattern"]); legacy != "" {
		return []string{legacy}
	}
	return []string{}
}

func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return []string{}
	}
	return strings.Split(cell, ", ")
}

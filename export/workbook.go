// Package export converts game history and statistics to and from xlsx workbooks.
package export

import (
	"fmt"
	"lightningbowl-sync/models"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	GameSheet  = "Game History"
	StatsSheet = "Statistics"

	gameTable  = "GameHistoryTable"
	tableStyle = "TableStyleMedium1"
	dateLayout = "1/2/2006"
	frameCount = 10
)

// Table is a titled block of rows placed at Start on a sheet.
type Table struct {
	Name    string
	Start   string
	Headers []string
	Rows    [][]string
}

// Generate builds the two-sheet workbook and returns its bytes.
func Generate(games []models.Game, st models.Stats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", GameSheet); err != nil {
		return nil, fmt.Errorf("excel generation failed: %w", err)
	}
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return nil, fmt.Errorf("excel generation failed: %w", err)
	}

	headers, rows := GameRows(games)
	if err := writeTable(f, GameSheet, Table{Name: gameTable, Start: "A1", Headers: headers, Rows: rows}); err != nil {
		return nil, fmt.Errorf("excel generation failed: %w", err)
	}

	for _, t := range StatsTables(st) {
		if err := writeTable(f, StatsSheet, t); err != nil {
			return nil, fmt.Errorf("excel generation failed: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable writes headers and rows at t.Start, formats them as a styled
// table and sizes each column to its longest value plus one.
func writeTable(f *excelize.File, sheet string, t Table) error {
	col, row, err := excelize.CellNameToCoordinates(t.Start)
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, col, row, t.Headers); err != nil {
		return err
	}
	for i, r := range t.Rows {
		if err := setRow(f, sheet, col, row+1+i, r); err != nil {
			return err
		}
	}

	// a table needs at least one data row
	if len(t.Rows) > 0 {
		end, err := excelize.CoordinatesToCellName(col+len(t.Headers)-1, row+len(t.Rows))
		if err != nil {
			return err
		}
		stripes := true
		if err := f.AddTable(sheet, &excelize.Table{
			Range:          t.Start + ":" + end,
			Name:           t.Name,
			StyleName:      tableStyle,
			ShowRowStripes: &stripes,
		}); err != nil {
			return err
		}
	}

	for i, header := range t.Headers {
		width := len(header)
		for _, r := range t.Rows {
			if i < len(r) && len(r[i]) > width {
				width = len(r[i])
			}
		}
		name, err := excelize.ColumnNumberToName(col + i)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+1)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, col, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// GameHeaders returns the game sheet columns in order.
func GameHeaders() []string {
	headers := []string{"Game", "Date"}
	for i := 1; i <= frameCount; i++ {
		headers = append(headers, fmt.Sprintf("Frame %d", i))
	}
	headers = append(headers, "Total Score",
		"Frame Scores", "League", "Practice", "Clean", "Perfect", "Series",
		"Series ID", "Patterns", "Balls", "Notes", "isPinMode")
	for i := 1; i <= frameCount; i++ {
		headers = append(headers, pinHeader(i, 1), pinHeader(i, 2))
		if i == frameCount {
			headers = append(headers, pinHeader(i, 3))
		}
	}
	return headers
}

func pinHeader(frame, throw int) string {
	return fmt.Sprintf("Frame %d Throw %d", frame, throw)
}

// GameRows renders one row per game under GameHeaders.
func GameRows(games []models.Game) ([]string, [][]string) {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		row := []string{g.GameID, time.UnixMilli(g.Date).Format(dateLayout)}
		for i := 0; i < frameCount; i++ {
			row = append(row, frameCell(g, i))
		}
		row = append(row,
			strconv.Itoa(g.TotalScore),
			joinInts(g.FrameScores, ", "),
			g.League,
			strconv.FormatBool(g.IsPractice),
			strconv.FormatBool(g.IsClean),
			strconv.FormatBool(g.IsPerfect),
			strconv.FormatBool(g.IsSeries),
			g.SeriesID,
			strings.Join(g.Patterns, ", "),
			strings.Join(g.Balls, ", "),
			g.Note,
			strconv.FormatBool(g.IsPinMode),
		)
		for i := 0; i < frameCount; i++ {
			throws := 2
			if i == frameCount-1 {
				throws = 3
			}
			for k := 0; k < throws; k++ {
				row = append(row, pinCell(g, i, k))
			}
		}
		rows = append(rows, row)
	}
	return GameHeaders(), rows
}

// frameCell encodes a frame's throws as "a", "a / b" or "a / b / c".
func frameCell(g models.Game, i int) string {
	if i >= len(g.Frames) {
		return ""
	}
	values := make([]int, 0, len(g.Frames[i].Throws))
	for _, t := range g.Frames[i].Throws {
		values = append(values, t.Value)
	}
	return joinInts(values, " / ")
}

func pinCell(g models.Game, frame, throw int) string {
	if frame >= len(g.Frames) || throw >= len(g.Frames[frame].Throws) {
		return ""
	}
	return joinInts(g.Frames[frame].Throws[throw].PinsLeftStanding, ",")
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

package calendar

import (
	"fmt"

	"github.com/username/month-calendar/pkg/datemath"
)

// Options tunes grid construction
type Options struct {
	// Decorate marks one blank corner cell for the decoration image
	Decorate bool
	// HonorLeapYears uses the real February length instead of the fixed 28
	HonorLeapYears bool
}

// Build lays out the month as 7 weekday headers above a 7x5 block of day
// cells. The first of the month lands in its weekday column; days that would
// need a sixth row are not placed and are listed in Grid.Dropped.
func Build(spec MonthSpec, geo Geometry, labels LabelSource, opts Options) (*Grid, error) {
	if geo.CellWidth <= 0 || geo.CellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size %.2fx%.2f", geo.CellWidth, geo.CellHeight)
	}

	firstWeekday, err := datemath.FirstWeekday(spec.Year, spec.Month)
	if err != nil {
		return nil, err
	}

	var totalDays int
	if opts.HonorLeapYears {
		totalDays, err = datemath.DaysInMonthLeapAware(spec.Year, spec.Month)
	} else {
		totalDays, err = datemath.DaysInMonth(spec.Month)
	}
	if err != nil {
		return nil, err
	}

	monthName, err := datemath.MonthAbbrev(spec.Month)
	if err != nil {
		return nil, err
	}

	grid := &Grid{
		Spec:         spec,
		Geometry:     geo,
		MonthName:    monthName,
		Title:        fmt.Sprintf("%s %d", monthName, spec.Year),
		FirstWeekday: firstWeekday,
		DaysInMonth:  totalDays,
		Headers:      make([]HeaderCell, 0, Columns),
		Days:         make([]DayCell, 0, Columns*Rows),
	}

	if labels != nil {
		grid.Piece, grid.HasPiece = labels.Piece(monthName)
	}

	headerHeight := geo.CellHeight / 2
	top := geo.Top + geo.HeaderOffset

	for col := 0; col < Columns; col++ {
		grid.Headers = append(grid.Headers, HeaderCell{
			Weekday: col,
			Rect: Rect{
				Left:   geo.Left + float64(col)*geo.CellWidth,
				Top:    top,
				Width:  geo.CellWidth,
				Height: headerHeight,
			},
		})
	}

	top += headerHeight
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			cell := DayCell{
				Row: row,
				Col: col,
				Day: BlankDay,
				Rect: Rect{
					Left:   geo.Left + float64(col)*geo.CellWidth,
					Top:    top + float64(row)*geo.CellHeight,
					Width:  geo.CellWidth,
					Height: geo.CellHeight,
				},
			}

			day := row*Columns + col + 1 - firstWeekday
			if day >= 1 && day <= totalDays {
				cell.Day = day
				if labels != nil {
					key := datemath.DateKey(spec.Year, spec.Month, day)
					cell.Holiday, cell.HasHoliday = labels.Holiday(key)
					if moon, ok := labels.Moon(key); ok {
						cell.Moon = ParseMoonPhase(moon)
					}
				}
			}

			grid.Days = append(grid.Days, cell)
		}
	}

	for day := Columns*Rows + 1 - firstWeekday; day <= totalDays; day++ {
		grid.Dropped = append(grid.Dropped, day)
	}

	if opts.Decorate {
		decorateCorner(grid)
	}

	return grid, nil
}

// decorateCorner marks the top-left cell when it is blank, otherwise the
// bottom-right cell when that one is blank. Dated cells are never marked.
func decorateCorner(g *Grid) {
	first := 0
	last := len(g.Days) - 1

	switch {
	case g.Days[first].IsBlank():
		g.Days[first].Decorated = true
	case g.Days[last].IsBlank():
		g.Days[last].Decorated = true
	}
}

package render

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/username/month-calendar/internal/calendar"
)

// Offsets inside a cell, in inches
const (
	dayInsetX        = 0.1
	dayBaseline      = 0.3
	holidayLift      = 0.1
	moonInsetRight   = 0.3
	decorationInset  = 0.05
	decorationWidth  = 1.40
	decorationHeight = 1.10
	titleColumns     = 3.5 // title is centred 3.5 cells from the left edge
)

// Style holds fonts, sizes and text placement for Draw
type Style struct {
	TextFont string
	MoonFont string

	TitleSize   float64
	PieceSize   float64
	HeaderSize  float64
	DaySize     float64
	HolidaySize float64
	MoonSize    float64

	// PieceRise is how far above the grid top the piece caption sits
	PieceRise float64
	// HolidayWrap wraps holiday labels at this many characters; 0 disables
	HolidayWrap int
	// HolidayLineHeight is the distance between wrapped holiday lines
	HolidayLineHeight float64
	// DecorationImage is the registered image name drawn in decorated cells
	DecorationImage string
}

// DefaultStyle returns the sizes used by the square month page
func DefaultStyle(textFont, moonFont string) Style {
	return Style{
		TextFont:          textFont,
		MoonFont:          moonFont,
		TitleSize:         32,
		PieceSize:         18,
		HeaderSize:        12,
		DaySize:           16,
		HolidaySize:       8,
		MoonSize:          12,
		PieceRise:         1.0,
		HolidayLineHeight: 0.12,
	}
}

// Draw paints the grid: piece caption, month title, weekday headers, then
// every day cell.
func Draw(c Canvas, g *calendar.Grid, st Style) {
	centerX := g.Geometry.Left + titleColumns*g.Geometry.CellWidth

	if g.HasPiece {
		c.SetFont(st.TextFont, st.PieceSize)
		c.CenteredText(centerX, g.Geometry.Top-st.PieceRise, g.Piece)
	}

	c.SetFont(st.TextFont, st.TitleSize)
	c.CenteredText(centerX, g.Geometry.Top, g.Title)

	for _, h := range g.Headers {
		drawHeader(c, h, st)
	}
	for _, d := range g.Days {
		drawDay(c, d, st)
	}
}

func drawOutline(c Canvas, r calendar.Rect) {
	for _, s := range r.Outline() {
		c.Line(s.X1, s.Y1, s.X2, s.Y2)
	}
}

func drawHeader(c Canvas, h calendar.HeaderCell, st Style) {
	drawOutline(c, h.Rect)
	c.SetFont(st.TextFont, st.HeaderSize)
	c.CenteredText(h.Left+h.Width/2, h.Top+3*h.Height/4, h.Label())
}

func drawDay(c Canvas, d calendar.DayCell, st Style) {
	drawOutline(c, d.Rect)

	if d.Decorated && st.DecorationImage != "" {
		c.Image(st.DecorationImage, d.Left+decorationInset, d.Top+decorationInset, decorationWidth, decorationHeight)
	}
	if d.IsBlank() {
		return
	}

	baseline := d.Top + dayBaseline
	c.SetFont(st.TextFont, st.DaySize)
	c.Text(d.Left+dayInsetX, baseline, strconv.Itoa(d.Day))

	if d.HasHoliday {
		c.SetFont(st.TextFont, st.HolidaySize)
		lines := holidayLines(d.Holiday, st.HolidayWrap)
		bottom := d.Top + d.Height - holidayLift
		for i, line := range lines {
			y := bottom - float64(len(lines)-1-i)*st.HolidayLineHeight
			c.CenteredText(d.Left+d.Width/2, y, line)
		}
	}

	if glyph := d.Moon.Glyph(); glyph != "" {
		c.SetFont(st.MoonFont, st.MoonSize)
		c.Text(d.Left+d.Width-moonInsetRight, baseline, glyph)
	}
}

func holidayLines(label string, wrap int) []string {
	if wrap <= 0 {
		return []string{label}
	}
	return strings.Split(wordwrap.String(label, wrap), "\n")
}

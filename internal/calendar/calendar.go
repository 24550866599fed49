package calendar

const (
	// Columns is the number of grid columns, one per weekday
	Columns = 7
	// Rows is the number of day rows; months needing a sixth row are truncated
	Rows = 5
	// BlankDay marks a day cell outside the month
	BlankDay = -1
)

var weekdayAbbrevs = [Columns]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthSpec identifies the month to lay out
type MonthSpec struct {
	Year  int
	Month int // 1-12
}

// Geometry describes the grid placement in inches, y growing downward
type Geometry struct {
	Left         float64
	Top          float64
	CellWidth    float64
	CellHeight   float64
	HeaderOffset float64 // gap between Top and the weekday header row
}

// DefaultGeometry returns the placement used for the 8.5in square page
func DefaultGeometry() Geometry {
	return Geometry{
		Left:         0.15,
		Top:          1.0,
		CellWidth:    1.0,
		CellHeight:   1.0,
		HeaderOffset: 0.2,
	}
}

// Rect is an axis-aligned box
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Segment is a straight line between two points
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Outline returns the four edges of the box traced counter-clockwise
// from the top-left corner: left, bottom, right, top
func (r Rect) Outline() [4]Segment {
	l, t := r.Left, r.Top
	rt, b := r.Left+r.Width, r.Top+r.Height
	return [4]Segment{
		{l, t, l, b},
		{l, b, rt, b},
		{rt, b, rt, t},
		{rt, t, l, t},
	}
}

// MoonPhase is the lunar phase category attached to a day
type MoonPhase int

const (
	MoonNone MoonPhase = iota
	MoonFull
	MoonQuarter
	MoonNew
	MoonOther
)

// ParseMoonPhase maps a moon label to a phase. Matching is exact, so
// "full " or "Full" are MoonOther.
func ParseMoonPhase(label string) MoonPhase {
	switch label {
	case "full":
		return MoonFull
	case "quarter":
		return MoonQuarter
	case "new":
		return MoonNew
	default:
		return MoonOther
	}
}

// Glyph returns the moon-font character code for the phase
func (p MoonPhase) Glyph() string {
	switch p {
	case MoonFull:
		return "N"
	case MoonQuarter:
		return "I"
	case MoonNew:
		return "A"
	case MoonOther:
		return "Q"
	default:
		return ""
	}
}

func (p MoonPhase) String() string {
	switch p {
	case MoonFull:
		return "full"
	case MoonQuarter:
		return "quarter"
	case MoonNew:
		return "new"
	case MoonOther:
		return "other"
	default:
		return "none"
	}
}

// MoonGlyphs lists the four phase codepoints a moon font must provide
func MoonGlyphs() []rune {
	return []rune{'N', 'I', 'A', 'Q'}
}

// HeaderCell is one weekday caption box
type HeaderCell struct {
	Weekday int // 0=Sunday
	Rect
}

// Label returns the weekday abbreviation
func (h HeaderCell) Label() string {
	return weekdayAbbrevs[h.Weekday]
}

// DayCell is one date box of the grid
type DayCell struct {
	Row        int
	Col        int
	Day        int // BlankDay outside the month
	Holiday    string
	HasHoliday bool
	Moon       MoonPhase
	Decorated  bool
	Rect
}

// IsBlank reports whether the cell shows no date
func (d DayCell) IsBlank() bool {
	return d.Day == BlankDay
}

// Grid is the laid-out month: 7 headers and 35 day cells
type Grid struct {
	Spec         MonthSpec
	Geometry     Geometry
	MonthName    string
	Title        string // e.g. "Jan 2017"
	Piece        string
	HasPiece     bool
	FirstWeekday int
	DaysInMonth  int
	Headers      []HeaderCell
	Days         []DayCell
	Dropped      []int // days that needed a sixth row
}

// Cell returns the day cell at row, col
func (g *Grid) Cell(row, col int) DayCell {
	return g.Days[row*Columns+col]
}

// LabelSource provides the label lookups used during layout
type LabelSource interface {
	Piece(month string) (string, bool)
	Holiday(key string) (string, bool)
	Moon(key string) (string, bool)
}

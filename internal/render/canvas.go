package render

// Canvas is the drawing surface the calendar is painted on. Coordinates are
// in inches with the origin at the top-left corner and y growing downward;
// text y is the baseline.
type Canvas interface {
	SetFont(family string, size float64)
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, s string)
	CenteredText(x, y float64, s string)
	Image(name string, x, y, w, h float64)
}

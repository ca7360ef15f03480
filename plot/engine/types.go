package engine

// SeriesKind selects how a series is meant to be drawn.
type SeriesKind uint8

const (
	// SeriesCurve is an ordered point list drawn as a connected line.
	SeriesCurve SeriesKind = iota + 1
	// SeriesContour is an unordered point cloud approximating a zero contour.
	SeriesContour
)

func (k SeriesKind) String() string {
	switch k {
	case SeriesCurve:
		return "curve"
	case SeriesContour:
		return "contour"
	default:
		return "unknown"
	}
}

type Point struct {
	X, Y float64
}

type Series struct {
	Kind   SeriesKind
	Points []Point
}

// Axis is a resolved axis: bounds are always set.
type Axis struct {
	Title    string
	Min, Max float64
}

// Binding is a derived variable and its computed value.
type Binding struct {
	Name  string
	Value float64
}

// Result is everything the rendering side needs for one frame.
type Result struct {
	Title  string
	Color  string
	Series Series
	X, Y   Axis

	// Vars holds the derived variables in declaration order.
	Vars []Binding
}

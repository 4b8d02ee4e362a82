package spline

// Kind selects the curve algorithm used to flatten a slider path.
// The names follow the letters used by the .osu format (L, P, B, C).
type Kind uint8

const (
	Linear Kind = iota
	Perfect
	Bezier
	Catmull
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Perfect:
		return "perfect"
	case Bezier:
		return "bezier"
	case Catmull:
		return "catmull"
	}
	return "unknown"
}

// ControlPoint is an integer coordinate in the format's native
// coordinate space. Values outside the playfield are legal.
type ControlPoint struct {
	X, Y int
}

// SliderSpec is the slider path as declared by a hit object: the curve
// kind, the control points (first point is the slider head), and the
// declared path length in osu!pixels. PixelLength <= 0 means no length
// was declared and the natural length of the curve applies.
type SliderSpec struct {
	Kind        Kind
	Control     []ControlPoint
	PixelLength float64
}

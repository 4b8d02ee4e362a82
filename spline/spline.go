// Package spline turns the typed control points of a slider into a
// sampled polyline with a cumulative arc-length index, supporting
// length-parameterized point and tangent queries.
//
// The flattening algorithms and their sampling densities are mandated
// by the legacy beatmap format; they reproduce the game client's
// output rather than an idealized curve.
package spline

import (
	"fmt"
	"math"
	"sort"
)

// catmullDetail is the fixed number of subdivisions per Catmull-Rom
// control-point segment.
const catmullDetail = 50

// Spline is the flattened shape of a slider path. Points holds the
// samples (always at least 2) and Lengths the parallel non-decreasing
// cumulative arc length, with Lengths[0] == 0.
//
// A Spline is a plain owned value: build once, query freely from any
// number of goroutines. Truncate mutates in place and needs exclusive
// access.
type Spline struct {
	Points  []Point
	Lengths []float64
}

// FromSpec builds the spline described by a slider's declared path.
func FromSpec(spec SliderSpec) *Spline {
	return FromControl(spec.Kind, spec.Control, spec.PixelLength)
}

// FromControl builds a spline from a slider's control points.
//
// pixelLength is the declared target path length in osu!pixels; pass a
// value <= 0 to render the full natural curve. Fewer than 2 control
// points or a NaN length is a caller contract violation and panics.
//
// Regardless of the declared kind, 2 control points always produce a
// Linear spline, and 3 collinear points declared Perfect degrade to
// Linear with the middle point dropped (a circumcircle is undefined
// there). A Perfect declaration with any other point count falls back
// to Bezier, as the format itself does.
func FromControl(kind Kind, control []ControlPoint, pixelLength float64) *Spline {
	if len(control) < 2 {
		panic(fmt.Sprintf("spline: need at least 2 control points, got %d", len(control)))
	}
	if math.IsNaN(pixelLength) {
		panic("spline: NaN pixel length")
	}

	points := make([]Point, len(control))
	for i, c := range control {
		points[i] = Point{X: float64(c.X), Y: float64(c.Y)}
	}

	if len(points) == 2 {
		kind = Linear
	}
	if len(points) == 3 && kind == Perfect && isLine(points[0], points[1], points[2]) {
		kind = Linear
		points = append(points[:1], points[2])
	}
	if kind == Perfect && len(points) != 3 {
		kind = Bezier
	}

	var samples []Point
	switch kind {
	case Linear:
		samples = buildLinear(points, pixelLength)
	case Perfect:
		samples = buildPerfect(points, pixelLength)
	case Bezier:
		samples = buildBezier(points, pixelLength)
	case Catmull:
		// target length deliberately ignored: the legacy renderer
		// never truncated catmull sliders
		samples = buildCatmull(points)
	default:
		panic(fmt.Sprintf("spline: unknown curve kind %d", kind))
	}

	for len(samples) < 2 {
		samples = append(samples, points[len(points)-1])
	}

	lengths := make([]float64, len(samples))
	curr := 0.0
	for i := 1; i < len(samples); i++ {
		curr += samples[i-1].Distance(samples[i])
		lengths[i] = curr
	}

	return &Spline{Points: samples, Lengths: lengths}
}

func buildLinear(points []Point, pixelLength float64) []Point {
	start := points[0]
	end := points[1]
	if pixelLength > 0 {
		end = pointOnLine(points[0], points[1], pixelLength)
	}
	return []Point{start, end}
}

func buildPerfect(points []Point, pixelLength float64) []Point {
	p1, p2, p3 := points[0], points[1], points[2]
	center, radius := circumcircle(p1, p2, p3)

	// angular positions about the center; the y axis is negated
	// because path geometry is y-down
	t0 := math.Atan2(center.Y-p1.Y, p1.X-center.X)
	mid := math.Atan2(center.Y-p2.Y, p2.X-center.X)
	t1 := math.Atan2(center.Y-p3.Y, p3.X-center.X)

	// walk mid and t1 up past t0, then make sure the arc from t0
	// actually passes through the midpoint in this direction
	for mid < t0 {
		mid += 2 * math.Pi
	}
	for t1 < t0 {
		t1 += 2 * math.Pi
	}
	if mid > t1 {
		t1 -= 2 * math.Pi
	}

	length := pixelLength
	if length <= 0 {
		length = radius * math.Abs(t1-t0)
	}

	direction := (t1 - t0) / math.Abs(t1-t0)
	newT1 := t0 + direction*(length/radius)

	var out []Point
	step := (newT1 - t0) / length
	for t := t0; (newT1 >= t0 && t < newT1) || (newT1 < t0 && t > newT1); t += step {
		rel := Point{X: math.Cos(t) * radius, Y: -math.Sin(t) * radius}
		out = append(out, center.Add(rel))
	}

	// a degenerate requested length can starve the loop entirely;
	// close the arc analytically so the 2-sample invariant holds
	for len(out) < 2 {
		rel := Point{X: math.Cos(newT1) * radius, Y: -math.Sin(newT1) * radius}
		out = append(out, center.Add(rel))
	}
	return out
}

func buildBezier(points []Point, pixelLength float64) []Point {
	var whole []Point
	cumul := 0.0
	var last Point
	haveLast := false

	// push appends a candidate sample, charging it against the
	// remaining length budget. Returns false once the budget is
	// spent, which stops flattening entirely.
	push := func(p Point) bool {
		if !haveLast {
			whole = append(whole, p)
			last = p
			haveLast = true
			return true
		}
		d := last.Distance(p)
		if pixelLength > 0 && cumul+d >= pixelLength {
			end := pointOnLine(last, p, pixelLength-cumul)
			whole = append(whole, end)
			last = end
			return false
		}
		whole = append(whole, p)
		cumul += d
		last = p
		return true
	}

	// emit flattens one red-anchor segment, deduplicating the
	// boundary point shared with the previous segment and any
	// coincident consecutive samples.
	emit := func(segment []Point) bool {
		flat := flattenBezier(nil, segment)
		if len(flat) == 0 {
			return true
		}
		if !haveLast || flat[0] != last {
			if !push(flat[0]) {
				return false
			}
		}
		for i := 1; i < len(flat); i++ {
			if flat[i] != flat[i-1] {
				if !push(flat[i]) {
					return false
				}
			}
		}
		return true
	}

	// split the control list at immediately-repeated points (red
	// anchors) into independent sub-curves
	idx := 0
	for i := 1; i < len(points); i++ {
		if !floatEq(points[i].X, points[i-1].X) || !floatEq(points[i].Y, points[i-1].Y) {
			continue
		}
		if !emit(points[idx:i]) {
			return whole
		}
		idx = i
	}
	emit(points[idx:])
	return whole
}

func buildCatmull(points []Point) []Point {
	n := len(points)
	out := make([]Point, 0, (n-1)*catmullDetail*2)

	for j := 0; j < n-1; j++ {
		v1 := points[j]
		if j > 0 {
			v1 = points[j-1]
		}
		v2 := points[j]
		v3 := v2.Add(v2.Sub(v1))
		if j+1 < n {
			v3 = points[j+1]
		}
		v4 := v3.Add(v3.Sub(v2))
		if j+2 < n {
			v4 = points[j+2]
		}

		for c := 0; c < catmullDetail; c++ {
			out = append(out, catmullPoint(v1, v2, v3, v4, float64(c)/catmullDetail))
			out = append(out, catmullPoint(v1, v2, v3, v4, float64(c+1)/catmullDetail))
		}
	}
	return out
}

// catmullPoint evaluates the uniform Catmull-Rom blend of the 4-tuple
// window at parameter t.
func catmullPoint(v1, v2, v3, v4 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: 0.5 * (2*v2.X + (-v1.X+v3.X)*t + (2*v1.X-5*v2.X+4*v3.X-v4.X)*t2 + (-v1.X+3*v2.X-3*v3.X+v4.X)*t3),
		Y: 0.5 * (2*v2.Y + (-v1.Y+v3.Y)*t + (2*v1.Y-5*v2.Y+4*v3.Y-v4.Y)*t2 + (-v1.Y+3*v2.Y-3*v3.Y+v4.Y)*t3),
	}
}

// PixelLength returns the total arc length of the spline.
func (s *Spline) PixelLength() float64 {
	return s.Lengths[len(s.Lengths)-1]
}

// EndPoint returns the last sample of the spline.
func (s *Spline) EndPoint() Point {
	return s.Points[len(s.Points)-1]
}

// PointAtLength returns the position of a point that has traveled the
// given distance along the spline. Out-of-range lengths clamp to the
// nearest endpoint.
func (s *Spline) PointAtLength(length float64) Point {
	i := sort.SearchFloat64s(s.Lengths, length)
	if i < len(s.Lengths) && s.Lengths[i] == length {
		return s.Points[i]
	}

	n := len(s.Points)
	if i == 0 {
		return s.Points[0]
	}
	if i == n {
		return s.Points[n-1]
	}

	len1, len2 := s.Lengths[i-1], s.Lengths[i]
	proportion := (length - len1) / (len2 - len1)

	p1, p2 := s.Points[i-1], s.Points[i]
	return p2.Sub(p1).Mul(proportion).Add(p1)
}

// AngleAtLength approximates the tangent direction, in radians, at the
// given distance along the spline by sampling just before and after it.
// Panics on a zero-length spline, where no direction exists.
func (s *Spline) AngleAtLength(length float64) float64 {
	const epsilon = 0.001

	cands := [3]Point{
		s.PointAtLength(length - epsilon),
		s.PointAtLength(length),
		s.PointAtLength(length + epsilon),
	}

	distinct := cands[:1]
	for _, c := range cands[1:] {
		if c != distinct[len(distinct)-1] {
			distinct = append(distinct, c)
		}
	}
	if len(distinct) < 2 {
		panic("spline: angle undefined, all samples coincide")
	}

	a, b := distinct[0], distinct[1]
	return math.Atan2(a.Y-b.Y, a.X-b.X)
}

// Truncate irreversibly shortens the spline in place to the given arc
// length. Lengths at or beyond the current total, and non-positive
// lengths, are no-ops; the game client instead collapses the path to a
// zero-length point pair for 0, which is never a meaningful slider.
// Not safe for concurrent use with other calls on the same Spline.
func (s *Spline) Truncate(toLength float64) {
	if toLength <= 0 {
		return
	}
	logger().Debug("truncating spline", "to_length", toLength)

	limit := -1
	for i, l := range s.Lengths {
		if l > toLength {
			limit = i
			break
		}
	}
	if limit <= 0 {
		return
	}

	prev := limit - 1
	remain := toLength - s.Lengths[prev]
	mid := pointOnLine(s.Points[prev], s.Points[limit], remain)

	s.Points[limit] = mid
	s.Lengths[limit] = toLength
	s.Points = s.Points[:limit+1]
	s.Lengths = s.Lengths[:limit+1]

	logger().Debug("truncated spline", "samples", len(s.Points), "end_x", mid.X, "end_y", mid.Y)
}

package spline

import "math"

// floatErr is the equality leniency the legacy format uses when
// comparing path coordinates.
const floatErr = 0.001

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < floatErr
}

// circumcircle returns the center and radius of the circle through the
// three given points. The caller must rule out collinear input first.
func circumcircle(p1, p2, p3 Point) (Point, float64) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))

	a2 := p1.LengthSquared()
	b2 := p2.LengthSquared()
	c2 := p3.LengthSquared()

	center := Point{
		X: (a2*(p2.Y-p3.Y) + b2*(p3.Y-p1.Y) + c2*(p1.Y-p2.Y)) / d,
		Y: (a2*(p3.X-p2.X) + b2*(p1.X-p3.X) + c2*(p2.X-p1.X)) / d,
	}
	return center, center.Distance(p1)
}

// pointOnLine returns the point at the given distance from a along the
// segment a-b (extrapolating past b when distance exceeds |b-a|).
func pointOnLine(a, b Point, distance float64) Point {
	full := a.Distance(b)
	n := full - distance
	return Point{
		X: (n*a.X + distance*b.X) / full,
		Y: (n*a.Y + distance*b.Y) / full,
	}
}

// isLine reports whether the three points are collinear.
func isLine(a, b, c Point) bool {
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) < floatErr
}

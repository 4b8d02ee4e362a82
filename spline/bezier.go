package spline

// Flattening tolerance for adaptive Bézier subdivision, mandated by the
// legacy format. A control polygon whose second differences all fit
// within the squared tolerance is emitted as-is.
const (
	bezierTolerance   = 0.25
	bezierToleranceSq = bezierTolerance * bezierTolerance
)

// flattenBezier appends a polyline approximation of a single Bézier
// curve (one red-anchor segment) to out and returns the extended slice.
//
// This is an iterative de Casteljau bisection: curves are kept on an
// explicit work stack and split in half until flat enough, then each
// flat polygon is collapsed to output samples by quadratic blending of
// adjacent control points. The true curve endpoint is appended last so
// accumulated rounding never shifts the tail. Scratch buffers are
// reused across iterations; retired parent polygons are recycled as
// right-half buffers.
func flattenBezier(out []Point, control []Point) []Point {
	count := len(control)
	if count == 0 {
		return out
	}

	last := control[count-1]

	var toFlatten [][]Point
	var freeBuffers [][]Point

	parent0 := make([]Point, count)
	copy(parent0, control)
	toFlatten = append(toFlatten, parent0)

	leftChild := make([]Point, count*2-1)
	lBuf := make([]Point, count*2-1)
	rBuf := make([]Point, count)
	midBuf := make([]Point, count)

	for len(toFlatten) > 0 {
		parent := toFlatten[len(toFlatten)-1]
		toFlatten = toFlatten[:len(toFlatten)-1]

		if bezierFlatEnough(parent) {
			out = bezierApproximate(out, parent, lBuf, rBuf, midBuf)
			freeBuffers = append(freeBuffers, parent)
			continue
		}

		var rightChild []Point
		if n := len(freeBuffers); n > 0 {
			rightChild = freeBuffers[n-1]
			freeBuffers = freeBuffers[:n-1]
		} else {
			rightChild = make([]Point, count)
		}
		bezierSubdivide(parent, leftChild, rightChild, midBuf)

		// The parent buffer is reused for the left half.
		copy(parent, leftChild[:count])

		toFlatten = append(toFlatten, rightChild)
		toFlatten = append(toFlatten, parent)
	}

	return append(out, last)
}

// bezierFlatEnough checks the polygon's second differences against the
// subdivision tolerance.
func bezierFlatEnough(control []Point) bool {
	for i := 1; i < len(control)-1; i++ {
		d := control[i-1].Sub(control[i].Mul(2)).Add(control[i+1])
		if d.LengthSquared() > bezierToleranceSq {
			return false
		}
	}
	return true
}

// bezierSubdivide splits the control polygon at its parametric midpoint
// into left and right halves sharing the midpoint, one de Casteljau
// averaging pass per level.
func bezierSubdivide(control, l, r, midBuf []Point) {
	count := len(control)
	copy(midBuf, control)

	for i := 0; i < count; i++ {
		l[i] = midBuf[0]
		r[count-i-1] = midBuf[count-i-1]
		for j := 0; j < count-i-1; j++ {
			midBuf[j] = midBuf[j].Add(midBuf[j+1]).Mul(0.5)
		}
	}
}

// bezierApproximate emits samples for a polygon that passed the
// flatness test: the two subdivided halves are laid out end to end and
// every interior point becomes a quadratic blend of its neighbours.
func bezierApproximate(out []Point, control []Point, lBuf, rBuf, midBuf []Point) []Point {
	count := len(control)

	bezierSubdivide(control, lBuf, rBuf, midBuf)
	copy(lBuf[count:count*2-1], rBuf[1:count])

	out = append(out, control[0])
	for i := 1; i < count-1; i++ {
		idx := 2 * i
		p := lBuf[idx-1].Add(lBuf[idx].Mul(2)).Add(lBuf[idx+1]).Mul(0.25)
		out = append(out, p)
	}
	return out
}

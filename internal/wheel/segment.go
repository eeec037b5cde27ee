package wheel

import "math"

// SegmentDegrees is the arc covered by each segment.
const SegmentDegrees = 90.0

// Segments is the clockwise layout of the wheel face starting at the top:
// top-right, bottom-right, bottom-left, top-left.
var Segments = [4]Operation{Addition, Multiplication, Subtraction, Division}

// Normalize folds any angle into [0, 360). Non-finite angles fold to 0.
func Normalize(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	n := math.Mod(math.Mod(deg, 360)+360, 360)
	// math.Mod(-1e-18+360, 360) can round up to exactly 360.
	if n >= 360 {
		n = 0
	}
	return n
}

// SegmentIndex returns the index into Segments of the segment under the
// fixed top pointer after the wheel has turned clockwise by deg degrees.
func SegmentIndex(deg float64) int {
	// The wheel turns clockwise under a fixed pointer, so the face position
	// under the pointer runs the other way.
	adjusted := math.Mod(360-Normalize(deg), 360)
	idx := int(math.Floor(adjusted / SegmentDegrees))
	if idx < 0 || idx >= len(Segments) {
		idx = 0
	}
	return idx
}

// SelectSegment returns the operation under the pointer for a total
// rotation of deg degrees. Segment ranges are closed-open, so boundaries
// resolve to the segment starting there.
func SelectSegment(deg float64) Operation {
	return Segments[SegmentIndex(deg)]
}

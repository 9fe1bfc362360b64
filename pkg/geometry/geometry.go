package geometry

import (
	"math"
)

// Point is a 2D position on the blueprint plane.
type Point struct {
	X float64
	Y float64
}

// Distance calculates the Euclidean (L2) distance between two points
// Formula: sqrt((a.X - b.X)^2 + (a.Y - b.Y)^2)
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsFinite reports whether both coordinates are finite numbers
func IsFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned rectangle (X1,Y1) to (X2,Y2) with X1 <= X2, Y1 <= Y2
type Rect struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Contains tests half-open membership: [X1,X2) x [Y1,Y2)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// ContainsClosed tests closed membership: [X1,X2] x [Y1,Y2]
// Used for the last grid row/column so points on the absolute maximum
// boundary still belong to a cell.
func (r Rect) ContainsClosed(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
// Returns the zero Rect and false for an empty input.
func BoundingBox(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}

	box := Rect{
		X1: points[0].X,
		Y1: points[0].Y,
		X2: points[0].X,
		Y2: points[0].Y,
	}

	for _, p := range points[1:] {
		if p.X < box.X1 {
			box.X1 = p.X
		}
		if p.X > box.X2 {
			box.X2 = p.X
		}
		if p.Y < box.Y1 {
			box.Y1 = p.Y
		}
		if p.Y > box.Y2 {
			box.Y2 = p.Y
		}
	}

	return box, true
}

// Segment is a directed line segment between two points
type Segment struct {
	Start Point
	End   Point
}

// Angle returns the segment angle in degrees within (-180, 180]
func (s Segment) Angle() float64 {
	return math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X) * 180.0 / math.Pi
}

// ParallelPairs finds index pairs of segments that are parallel within
// toleranceDegrees. Opposite directions count as parallel.
func ParallelPairs(segments []Segment, toleranceDegrees float64) [][2]int {
	pairs := make([][2]int, 0)

	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			diff := math.Abs(segments[i].Angle() - segments[j].Angle())
			if diff > 180.0 {
				diff = 360.0 - diff
			}
			if diff < toleranceDegrees || math.Abs(180.0-diff) < toleranceDegrees {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}

	return pairs
}

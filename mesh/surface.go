// Package mesh builds an interpolated surface from a completed set of
// measurement records.
package mesh

import (
	"errors"
	"math"

	"github.com/fogleman/delaunay"

	"github.com/mastercactapus/cmm/coord"
)

// epsilon tolerates points sitting exactly on a triangle edge.
const epsilon = 1e-9

type triangle struct{ a, b, c coord.Point }

// zAt interpolates Z at (x,y) using barycentric weights; ok is false
// when the point lies outside the triangle or the triangle is
// degenerate.
func (t triangle) zAt(x, y float64) (z float64, ok bool) {
	d := (t.b.Y-t.c.Y)*(t.a.X-t.c.X) + (t.c.X-t.b.X)*(t.a.Y-t.c.Y)
	if d == 0 {
		return 0, false
	}
	w1 := ((t.b.Y-t.c.Y)*(x-t.c.X) + (t.c.X-t.b.X)*(y-t.c.Y)) / d
	w2 := ((t.c.Y-t.a.Y)*(x-t.c.X) + (t.a.X-t.c.X)*(y-t.c.Y)) / d
	w3 := 1 - w1 - w2
	if w1 < -epsilon || w2 < -epsilon || w3 < -epsilon {
		return 0, false
	}
	return w1*t.a.Z + w2*t.b.Z + w3*t.c.Z, true
}

// Surface is a triangulated measurement surface.
type Surface struct {
	points    []coord.Point
	triangles []triangle
}

// New triangulates the X/Y projection of the given measurements.
// At least three non-collinear points are required.
func New(points []coord.Point) (*Surface, error) {
	if len(points) < 3 {
		return nil, errors.New("mesh: need at least 3 points")
	}

	pts2d := make([]delaunay.Point, len(points))
	byXY := make(map[delaunay.Point]coord.Point, len(points))
	for i, p := range points {
		d := delaunay.Point{X: p.X, Y: p.Y}
		pts2d[i] = d
		byXY[d] = p
	}

	tri, err := delaunay.Triangulate(pts2d)
	if err != nil {
		return nil, err
	}
	if len(tri.Triangles) == 0 {
		return nil, errors.New("mesh: points are collinear")
	}

	s := &Surface{points: points}
	for i := 0; i < len(tri.Triangles); i += 3 {
		s.triangles = append(s.triangles, triangle{
			a: byXY[tri.Points[tri.Triangles[i]]],
			b: byXY[tri.Points[tri.Triangles[i+1]]],
			c: byXY[tri.Points[tri.Triangles[i+2]]],
		})
	}

	return s, nil
}

// ZAt interpolates the measured Z at (x,y); ok is false outside the
// measured region.
func (s *Surface) ZAt(x, y float64) (z float64, ok bool) {
	for _, t := range s.triangles {
		if z, ok = t.zAt(x, y); ok {
			return z, true
		}
	}
	return 0, false
}

// Flatness summarizes the Z spread of a measured surface.
type Flatness struct {
	Min, Max, Mean, Range float64
}

// Flatness reports the Z spread over the surface's measurement points.
func (s *Surface) Flatness() Flatness {
	f := Flatness{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}
	var sum float64
	for _, p := range s.points {
		f.Min = math.Min(f.Min, p.Z)
		f.Max = math.Max(f.Max, p.Z)
		sum += p.Z
	}
	f.Mean = sum / float64(len(s.points))
	f.Range = f.Max - f.Min
	return f
}

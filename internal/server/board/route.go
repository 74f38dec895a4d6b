package board

import "strings"

// Route is one candidate capture chain: the start square followed by each
// successive landing square. Routes are never modified after construction.
type Route struct {
	points []Point
}

func NewRoute(start Point) Route {
	return Route{points: []Point{start}}
}

// Append returns a copy of r extended by p
func (r Route) Append(p Point) Route {
	points := make([]Point, len(r.points), len(r.points)+1)
	copy(points, r.points)
	return Route{points: append(points, p)}
}

func (r Route) First() Point {
	return r.points[0]
}

func (r Route) Last() Point {
	return r.points[len(r.points)-1]
}

func (r Route) Len() int {
	return len(r.points)
}

// Jumps is the number of single jumps in the chain
func (r Route) Jumps() int {
	if len(r.points) == 0 {
		return 0
	}
	return len(r.points) - 1
}

func (r Route) Contains(p Point) bool {
	for _, q := range r.points {
		if q == p {
			return true
		}
	}
	return false
}

// Tail is every point after the start, the squares a UI highlights
func (r Route) Tail() []Point {
	if len(r.points) < 2 {
		return nil
	}
	tail := make([]Point, len(r.points)-1)
	copy(tail, r.points[1:])
	return tail
}

func (r Route) Points() []Point {
	points := make([]Point, len(r.points))
	copy(points, r.points)
	return points
}

// String joins the squares with "x", e.g. "c3xe5xg7"
func (r Route) String() string {
	names := make([]string, len(r.points))
	for i, p := range r.points {
		names[i] = p.String()
	}
	return strings.Join(names, "x")
}

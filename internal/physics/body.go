package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"asteroid-sim/internal/geometry"
)

// Density converts polygon area to mass. All bodies share it, so mass ratios
// come entirely from shape size.
const Density = 1.0

// Body is one asteroid: an irregular polygon moving at constant velocity.
// Vertices are stored relative to the centroid and never change; Position is
// the centroid in world space. Position and Velocity are mutated in place by
// the simulation; everything else is fixed at creation.
type Body struct {
	ID       int
	Vertices []mgl64.Vec2
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
	Radius   float64
	Alive    bool
}

// NewBody builds a body from a generated shape. The shape's exact centroid
// becomes the local origin, so Position always tracks the polygon centroid.
// Mass is Density times the polygon area; Radius is the bounding-circle
// extent over the recentered vertices, which guarantees the broad phase can
// never miss a true polygon overlap.
// Returns an error for degenerate shapes (fewer than 3 vertices, ~zero area).
func NewBody(id int, center, velocity mgl64.Vec2, shape []mgl64.Vec2) (*Body, error) {
	if len(shape) < 3 {
		return nil, errors.Errorf("body %d: polygon needs at least 3 vertices, got %d", id, len(shape))
	}
	area := math.Abs(geometry.PolygonArea(shape))
	if area < 1e-12 {
		return nil, errors.Errorf("body %d: polygon area is zero", id)
	}

	centroid := geometry.Centroid(shape)
	verts := make([]mgl64.Vec2, len(shape))
	radius := 0.0
	for i, v := range shape {
		verts[i] = v.Sub(centroid)
		if r := verts[i].Len(); r > radius {
			radius = r
		}
	}

	return &Body{
		ID:       id,
		Vertices: verts,
		Position: center,
		Velocity: velocity,
		Mass:     Density * area,
		Radius:   radius,
		Alive:    true,
	}, nil
}

// WorldVertices returns the polygon translated to world space.
func (b *Body) WorldVertices() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(b.Vertices))
	for i, v := range b.Vertices {
		out[i] = v.Add(b.Position)
	}
	return out
}

// integrate advances the body by one fixed timestep.
func (b *Body) integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

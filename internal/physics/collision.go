package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"asteroid-sim/internal/geometry"
)

// Contact is a confirmed overlap between two bodies at the current tick.
// A and B are canonical: A.ID < B.ID. Depth is the minimum translation depth
// from the separating-axis test; Point is the midpoint between the centroids.
type Contact struct {
	A, B  *Body
	Depth float64
	Point mgl64.Vec2
}

// DetectCollisions returns every pair of alive bodies in confirmed overlap.
// Broad phase prunes with bounding circles, narrow phase confirms with the
// separating-axis test. Each pair appears at most once, in canonical form,
// and the result is ordered ascending by (A.ID, B.ID) as long as bodies is
// sorted by ID (the World keeps it that way).
// O(n²) over the pair set; fine for the body counts this simulation targets.
func DetectCollisions(bodies []*Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if !a.Alive {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !b.Alive {
				continue
			}
			if !geometry.CirclesOverlap(a.Position, a.Radius, b.Position, b.Radius) {
				continue
			}
			depth, overlap := geometry.PolygonsPenetration(a.Vertices, a.Position, b.Vertices, b.Position)
			if !overlap {
				continue
			}
			lo, hi := a, b
			if lo.ID > hi.ID {
				lo, hi = hi, lo
			}
			contacts = append(contacts, Contact{
				A:     lo,
				B:     hi,
				Depth: depth,
				Point: lo.Position.Add(hi.Position).Mul(0.5),
			})
		}
	}
	return contacts
}

// collisionNormal is the unit vector from A's centroid to B's. Coincident
// centroids fall back to a fixed axis so no NaN can enter the pipeline.
func collisionNormal(c Contact) mgl64.Vec2 {
	d := c.B.Position.Sub(c.A.Position)
	if length := d.Len(); length > 0 {
		return d.Mul(1 / length)
	}
	return mgl64.Vec2{1, 0}
}

// ResolveElastic updates both bodies' velocities for an elastic collision
// along the line of centers and returns the event to log. The velocities are
// split into components along the collision normal and the tangent; the
// normal components go through the 1-D elastic collision formula (equal
// masses swap them exactly), the tangential components pass through
// untouched, so momentum and kinetic energy of the pair are conserved.
// A pair whose centroids are already separating gets no impulse (none of the
// later ticks should re-inject energy) but the overlap is still logged.
func ResolveElastic(c Contact, tick int, dt float64) CollisionEvent {
	n := collisionNormal(c)
	t := mgl64.Vec2{-n.Y(), n.X()}

	vaN := c.A.Velocity.Dot(n)
	vbN := c.B.Velocity.Dot(n)

	// Relative normal velocity >= 0 means the centroids are moving apart.
	if vbN-vaN < 0 {
		ma, mb := c.A.Mass, c.B.Mass
		vaT := c.A.Velocity.Dot(t)
		vbT := c.B.Velocity.Dot(t)

		newVaN := ((ma-mb)*vaN + 2*mb*vbN) / (ma + mb)
		newVbN := ((mb-ma)*vbN + 2*ma*vaN) / (ma + mb)

		c.A.Velocity = n.Mul(newVaN).Add(t.Mul(vaT))
		c.B.Velocity = n.Mul(newVbN).Add(t.Mul(vbT))
	}

	return CollisionEvent{
		Tick:  tick,
		Time:  float64(tick) * dt,
		BodyA: c.A.ID,
		BodyB: c.B.ID,
		Point: c.Point,
	}
}

// Separate pushes the pair apart along the collision normal, half the
// penetration depth each, so the same contact cannot re-trigger on the next
// tick once the pair is moving apart.
func Separate(c Contact) {
	n := collisionNormal(c)
	half := n.Mul(c.Depth / 2)
	c.A.Position = c.A.Position.Sub(half)
	c.B.Position = c.B.Position.Add(half)
}

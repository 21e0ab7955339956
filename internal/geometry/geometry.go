package geometry

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeOptions controls irregular polygon generation.
// BaseRadius is the nominal radius of the body in world units.
// VertexCount is the number of polygon vertices; VertexCount == 0 picks a
// random count in [MinVertexCount, MaxVertexCount].
// Irregularity is the radius perturbation as a fraction of BaseRadius; each
// vertex radius is drawn from BaseRadius*(1±Irregularity).
// AngleJitter perturbs the evenly spaced vertex angles, in radians. It is
// clamped below half the angular step so the angles stay strictly increasing
// and the polygon stays simple.
// Seed controls randomness; Seed == 0 uses a time-based seed.
type ShapeOptions struct {
	BaseRadius   float64
	VertexCount  int
	Irregularity float64
	AngleJitter  float64
	Seed         int64
}

// Bounds for generated shapes. Vertex counts match the original asteroid
// look; irregularity is capped so a vertex radius can never reach zero.
const (
	MinVertexCount  = 6
	MaxVertexCount  = 12
	MaxIrregularity = 0.9
)

// DefaultShapeOptions returns a sane default configuration for the given
// nominal radius: random vertex count, 40% radius variation, 0.2 rad jitter.
func DefaultShapeOptions(baseRadius float64) ShapeOptions {
	return ShapeOptions{
		BaseRadius:   baseRadius,
		VertexCount:  0,
		Irregularity: 0.4,
		AngleJitter:  0.2,
		Seed:         0,
	}
}

// GenerateIrregularPolygon builds an irregular polygon around the origin.
// Vertices are ordered counter-clockwise by angle. The result is always a
// simple polygon: angles remain strictly increasing after jitter, so edges
// cannot cross. Deterministic for a fixed nonzero Seed.
func GenerateIrregularPolygon(opts ShapeOptions) []mgl64.Vec2 {
	if opts.BaseRadius <= 0 {
		opts.BaseRadius = 1
	}
	if opts.Irregularity < 0 {
		opts.Irregularity = 0
	}
	if opts.Irregularity > MaxIrregularity {
		opts.Irregularity = MaxIrregularity
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	n := opts.VertexCount
	if n == 0 {
		n = MinVertexCount + rng.Intn(MaxVertexCount-MinVertexCount+1)
	}
	if n < 3 {
		n = 3
	}

	step := 2 * math.Pi / float64(n)
	jitter := opts.AngleJitter
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 0.45*step {
		jitter = 0.45 * step
	}

	verts := make([]mgl64.Vec2, n)
	for i := range verts {
		angle := float64(i)*step + uniform(rng, -jitter, jitter)
		radius := opts.BaseRadius * uniform(rng, 1-opts.Irregularity, 1+opts.Irregularity)
		verts[i] = mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)}
	}
	return verts
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// PolygonArea returns the signed shoelace area of the polygon. Positive for
// counter-clockwise winding.
func PolygonArea(verts []mgl64.Vec2) float64 {
	if len(verts) < 3 {
		return 0
	}
	area := 0.0
	for i, v := range verts {
		w := verts[(i+1)%len(verts)]
		area += v.X()*w.Y() - w.X()*v.Y()
	}
	return area / 2
}

// Centroid returns the exact polygon centroid. For near-degenerate polygons
// (area ~0) it falls back to the vertex mean.
func Centroid(verts []mgl64.Vec2) mgl64.Vec2 {
	area := PolygonArea(verts)
	if math.Abs(area) < 1e-12 {
		return vertexMean(verts)
	}
	var cx, cy float64
	for i, v := range verts {
		w := verts[(i+1)%len(verts)]
		cross := v.X()*w.Y() - w.X()*v.Y()
		cx += (v.X() + w.X()) * cross
		cy += (v.Y() + w.Y()) * cross
	}
	return mgl64.Vec2{cx / (6 * area), cy / (6 * area)}
}

func vertexMean(verts []mgl64.Vec2) mgl64.Vec2 {
	if len(verts) == 0 {
		return mgl64.Vec2{}
	}
	var sum mgl64.Vec2
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(verts)))
}

// Distance returns the Euclidean distance between two points.
func Distance(p, q mgl64.Vec2) float64 {
	return p.Sub(q).Len()
}

// CirclesOverlap is the broad-phase test: true when the bounding circles
// strictly overlap. Uses squared distances to avoid the sqrt.
func CirclesOverlap(posA mgl64.Vec2, radiusA float64, posB mgl64.Vec2, radiusB float64) bool {
	d := posB.Sub(posA)
	sum := radiusA + radiusB
	return d.Dot(d) < sum*sum
}

// PolygonsOverlap is the narrow-phase test: separating-axis check over both
// polygons' edge normals. Vertices are centroid-relative and translated to
// world space by the positions. Returns true only if no separating axis
// exists.
func PolygonsOverlap(vertsA []mgl64.Vec2, posA mgl64.Vec2, vertsB []mgl64.Vec2, posB mgl64.Vec2) bool {
	_, overlap := PolygonsPenetration(vertsA, posA, vertsB, posB)
	return overlap
}

// PolygonsPenetration runs the separating-axis test and returns the minimum
// translation depth along any tested axis. The depth is what positional
// correction needs to push the bodies apart. Returns (0, false) when a
// separating axis exists.
func PolygonsPenetration(vertsA []mgl64.Vec2, posA mgl64.Vec2, vertsB []mgl64.Vec2, posB mgl64.Vec2) (float64, bool) {
	if len(vertsA) < 3 || len(vertsB) < 3 {
		return 0, false
	}
	minDepth := math.MaxFloat64

	check := func(verts []mgl64.Vec2) bool {
		for i, v := range verts {
			edge := verts[(i+1)%len(verts)].Sub(v)
			axis := mgl64.Vec2{edge.Y(), -edge.X()}
			length := axis.Len()
			if length == 0 {
				continue
			}
			axis = axis.Mul(1 / length)

			minA, maxA := project(vertsA, posA, axis)
			minB, maxB := project(vertsB, posB, axis)
			depth := math.Min(maxA, maxB) - math.Max(minA, minB)
			if depth <= 0 {
				return false
			}
			if depth < minDepth {
				minDepth = depth
			}
		}
		return true
	}

	if !check(vertsA) || !check(vertsB) {
		return 0, false
	}
	return minDepth, true
}

// project returns the min and max of the world-space vertices projected onto
// the (unit) axis.
func project(verts []mgl64.Vec2, pos mgl64.Vec2, axis mgl64.Vec2) (float64, float64) {
	lo := verts[0].Add(pos).Dot(axis)
	hi := lo
	for _, v := range verts[1:] {
		p := v.Add(pos).Dot(axis)
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

package physics

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asteroid-sim/internal/geometry"
)

// discShape is a high-vertex-count regular polygon, close to a circle.
func discShape(t *testing.T, radius float64) []mgl64.Vec2 {
	t.Helper()
	return geometry.GenerateIrregularPolygon(geometry.ShapeOptions{
		BaseRadius:  radius,
		VertexCount: 32,
		Seed:        1,
	})
}

func collectFrames(w *World) []Frame {
	var frames []Frame
	for f := range w.Frames(context.Background()) {
		frames = append(frames, f)
	}
	return frames
}

func TestNewWorldRejectsDuplicateIDs(t *testing.T) {
	a := mustBody(t, 1, mgl64.Vec2{}, mgl64.Vec2{}, squareShape(1))
	b := mustBody(t, 1, mgl64.Vec2{5, 0}, mgl64.Vec2{}, squareShape(1))
	_, err := NewWorld(DefaultOptions(), []*Body{a, b}, nil)
	assert.Error(t, err)
}

func TestStepMovesBodiesExactly(t *testing.T) {
	b := mustBody(t, 1, mgl64.Vec2{1, 2}, mgl64.Vec2{3, -4}, squareShape(1))
	w, err := NewWorld(DefaultOptions(), []*Body{b}, nil)
	require.NoError(t, err)

	before := b.Position
	w.step()
	assert.Equal(t, before.Add(b.Velocity.Mul(0.1)), b.Position)
}

func TestHeadOnCollisionScenario(t *testing.T) {
	// Two near-circular bodies of equal mass, 10 units apart, on a direct
	// collision course. Exactly one collision; velocities swap.
	shape := discShape(t, 1)
	a := mustBody(t, 1, mgl64.Vec2{-5, 0}, mgl64.Vec2{1, 0}, shape)
	b := mustBody(t, 2, mgl64.Vec2{5, 0}, mgl64.Vec2{-1, 0}, shape)

	w, err := NewWorld(DefaultOptions(), []*Body{a, b}, nil)
	require.NoError(t, err)
	frames := collectFrames(w)

	events := w.Log()
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].BodyA)
	assert.Equal(t, 2, events[0].BodyB)
	assert.InDelta(t, float64(events[0].Tick)*0.1, events[0].Time, 1e-12)

	assert.InDelta(t, -1.0, a.Velocity.X(), 1e-12)
	assert.InDelta(t, 0.0, a.Velocity.Y(), 1e-12)
	assert.InDelta(t, 1.0, b.Velocity.X(), 1e-12)
	assert.InDelta(t, 0.0, b.Velocity.Y(), 1e-12)

	assert.Len(t, frames, 100)
	assert.Equal(t, StateFinished, w.State())
}

func TestParallelTrajectoriesNeverCollide(t *testing.T) {
	shape := discShape(t, 1)
	a := mustBody(t, 1, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, shape)
	b := mustBody(t, 2, mgl64.Vec2{0, 10}, mgl64.Vec2{1, 0}, shape)

	w, err := NewWorld(DefaultOptions(), []*Body{a, b}, nil)
	require.NoError(t, err)
	collectFrames(w)

	assert.Empty(t, w.Log())
}

func TestThreeWayOverlapLogsEachPairOnce(t *testing.T) {
	a := mustBody(t, 1, mgl64.Vec2{0, 0}, mgl64.Vec2{}, squareShape(1))
	b := mustBody(t, 2, mgl64.Vec2{1, 0}, mgl64.Vec2{}, squareShape(1))
	c := mustBody(t, 3, mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{}, squareShape(1))

	opts := DefaultOptions()
	opts.MaxTicks = 1
	opts.PositionalCorrection = false
	w, err := NewWorld(opts, []*Body{c, a, b}, nil)
	require.NoError(t, err)
	collectFrames(w)

	events := w.Log()
	require.Len(t, events, 3)
	assert.Equal(t, [2]int{1, 2}, [2]int{events[0].BodyA, events[0].BodyB})
	assert.Equal(t, [2]int{1, 3}, [2]int{events[1].BodyA, events[1].BodyB})
	assert.Equal(t, [2]int{2, 3}, [2]int{events[2].BodyA, events[2].BodyB})
	assert.Equal(t, 1, events[0].Tick)
}

func TestLogOrderedByTick(t *testing.T) {
	// Two slow approaches colliding at different ticks.
	shape := discShape(t, 1)
	a := mustBody(t, 1, mgl64.Vec2{-3, 0}, mgl64.Vec2{1, 0}, shape)
	b := mustBody(t, 2, mgl64.Vec2{3, 0}, mgl64.Vec2{-1, 0}, shape)
	c := mustBody(t, 3, mgl64.Vec2{-8, 20}, mgl64.Vec2{2, 0}, shape)
	d := mustBody(t, 4, mgl64.Vec2{8, 20}, mgl64.Vec2{-2, 0}, shape)

	w, err := NewWorld(DefaultOptions(), []*Body{a, b, c, d}, nil)
	require.NoError(t, err)
	collectFrames(w)

	events := w.Log()
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Tick, events[i-1].Tick)
	}
}

func TestFramesCarryWorldSpaceVertices(t *testing.T) {
	b := mustBody(t, 7, mgl64.Vec2{2, 3}, mgl64.Vec2{1, 1}, squareShape(1))
	opts := DefaultOptions()
	opts.MaxTicks = 1
	w, err := NewWorld(opts, []*Body{b}, nil)
	require.NoError(t, err)

	frames := collectFrames(w)
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Bodies, 1)

	state := frames[0].Bodies[0]
	assert.Equal(t, 7, state.ID)
	assert.Equal(t, b.Position, state.Position)
	assert.Equal(t, b.WorldVertices(), state.Vertices)
	assert.False(t, state.Colliding)
	assert.Equal(t, 1, frames[0].Tick)
	assert.InDelta(t, 0.1, frames[0].Time, 1e-12)
}

func TestFramesMarkCollidingBodies(t *testing.T) {
	a := mustBody(t, 1, mgl64.Vec2{0, 0}, mgl64.Vec2{}, squareShape(1))
	b := mustBody(t, 2, mgl64.Vec2{1, 0}, mgl64.Vec2{}, squareShape(1))
	c := mustBody(t, 3, mgl64.Vec2{10, 0}, mgl64.Vec2{}, squareShape(1))

	opts := DefaultOptions()
	opts.MaxTicks = 1
	opts.PositionalCorrection = false
	w, err := NewWorld(opts, []*Body{a, b, c}, nil)
	require.NoError(t, err)

	frames := collectFrames(w)
	require.Len(t, frames, 1)
	byID := map[int]BodyState{}
	for _, s := range frames[0].Bodies {
		byID[s.ID] = s
	}
	assert.True(t, byID[1].Colliding)
	assert.True(t, byID[2].Colliding)
	assert.False(t, byID[3].Colliding)
}

func TestFramesStopOnCancel(t *testing.T) {
	b := mustBody(t, 1, mgl64.Vec2{}, mgl64.Vec2{1, 0}, squareShape(1))
	w, err := NewWorld(DefaultOptions(), []*Body{b}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	for range w.Frames(ctx) {
		n++
		if n == 3 {
			cancel()
		}
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, w.Tick())
	assert.Equal(t, StateFinished, w.State())
}

func TestFramesNotRestartable(t *testing.T) {
	b := mustBody(t, 1, mgl64.Vec2{}, mgl64.Vec2{1, 0}, squareShape(1))
	opts := DefaultOptions()
	opts.MaxTicks = 5
	w, err := NewWorld(opts, []*Body{b}, nil)
	require.NoError(t, err)

	assert.Len(t, collectFrames(w), 5)
	assert.Empty(t, collectFrames(w))
}

func TestDestructiveCollisionsRemoveBodies(t *testing.T) {
	shape := discShape(t, 1)
	a := mustBody(t, 1, mgl64.Vec2{-5, 0}, mgl64.Vec2{1, 0}, shape)
	b := mustBody(t, 2, mgl64.Vec2{5, 0}, mgl64.Vec2{-1, 0}, shape)

	opts := DefaultOptions()
	opts.Destructive = true
	w, err := NewWorld(opts, []*Body{a, b}, nil)
	require.NoError(t, err)

	frames := collectFrames(w)
	require.Len(t, w.Log(), 1)
	assert.False(t, a.Alive)
	assert.False(t, b.Alive)

	// The run ends once nothing is alive; the last frame is the collision
	// tick and contains no bodies.
	last := frames[len(frames)-1]
	assert.Equal(t, w.Log()[0].Tick, last.Tick)
	assert.Empty(t, last.Bodies)
}

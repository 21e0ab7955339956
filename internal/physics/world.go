package physics

import (
	"context"
	"iter"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// State is the simulation lifecycle: Initialized until the frame sequence is
// first consumed, Running while ticks advance, Finished once the tick limit
// is reached, no alive bodies remain, or the caller stops early.
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateFinished
)

// Options controls a simulation run.
// Timestep is the fixed simulated seconds per tick; MaxTicks ends the run.
// PositionalCorrection pushes resolved pairs apart so a contact cannot
// re-trigger on consecutive ticks; with it disabled, repeat events for the
// same overlap are accepted behavior, not a defect.
// Destructive marks colliding bodies dead instead of bouncing them.
type Options struct {
	Timestep             float64
	MaxTicks             int
	PositionalCorrection bool
	Destructive          bool
}

// DefaultOptions matches the original run: 10 simulated seconds in 0.1s
// steps, elastic bounces with positional correction.
func DefaultOptions() Options {
	return Options{
		Timestep:             0.1,
		MaxTicks:             100,
		PositionalCorrection: true,
		Destructive:          false,
	}
}

// BodyState is one body inside a frame: id, centroid, world-space polygon,
// and whether the body is part of a collision this tick.
type BodyState struct {
	ID        int
	Position  mgl64.Vec2
	Vertices  []mgl64.Vec2
	Colliding bool
}

// Frame is the per-tick snapshot handed to external consumers (renderer,
// video export). Pure data; mutating it does not affect the simulation.
type Frame struct {
	Tick   int
	Time   float64
	Bodies []BodyState
}

// World owns the bodies and runs the simulation loop: integrate, detect,
// resolve, log, snapshot. Strictly sequential, one tick at a time.
type World struct {
	opts   Options
	bodies []*Body
	log    Log
	tick   int
	state  State
	logger *zap.Logger
}

// NewWorld validates the body set (ids must be unique) and returns a world
// in the Initialized state. Bodies are kept sorted by id so detection output
// is deterministic. A nil logger disables logging.
func NewWorld(opts Options, bodies []*Body, logger *zap.Logger) (*World, error) {
	if opts.Timestep <= 0 {
		opts.Timestep = 0.1
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sorted := make([]*Body, len(bodies))
	copy(sorted, bodies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, errors.Errorf("duplicate body id %d", sorted[i].ID)
		}
	}

	return &World{
		opts:   opts,
		bodies: sorted,
		logger: logger,
	}, nil
}

// State returns the current lifecycle state.
func (w *World) State() State {
	return w.state
}

// Tick returns the number of completed ticks.
func (w *World) Tick() int {
	return w.tick
}

// Log returns the collision events recorded so far, in detection order.
func (w *World) Log() []CollisionEvent {
	return w.log.Events()
}

// Frames returns the lazy, finite, non-restartable snapshot sequence. Each
// pull advances the simulation one tick. The sequence ends, and the world
// moves to Finished, when MaxTicks is reached, no alive bodies remain, the
// context is cancelled, or the consumer breaks out. Cancellation is checked
// once per tick boundary; ticks are atomic with respect to observers.
func (w *World) Frames(ctx context.Context) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		if w.state == StateFinished {
			return
		}
		w.state = StateRunning
		w.logger.Info("simulation started",
			zap.Int("bodies", len(w.bodies)),
			zap.Int("max_ticks", w.opts.MaxTicks),
			zap.Float64("timestep", w.opts.Timestep))

		for w.tick < w.opts.MaxTicks && w.aliveCount() > 0 && ctx.Err() == nil {
			if !yield(w.step()) {
				break
			}
		}

		w.state = StateFinished
		w.logger.Info("simulation finished",
			zap.Int("ticks", w.tick),
			zap.Int("collisions", w.log.Len()))
	}
}

// step runs one tick: advance the clock, move every alive body, detect
// overlapping pairs, resolve and log them, and snapshot the result. The tick
// counter increments first so logged events carry time tick×dt exactly.
func (w *World) step() Frame {
	w.tick++
	for _, b := range w.bodies {
		if b.Alive {
			b.integrate(w.opts.Timestep)
		}
	}

	contacts := DetectCollisions(w.bodies)
	for _, c := range contacts {
		var event CollisionEvent
		if w.opts.Destructive {
			event = CollisionEvent{
				Tick:  w.tick,
				Time:  float64(w.tick) * w.opts.Timestep,
				BodyA: c.A.ID,
				BodyB: c.B.ID,
				Point: c.Point,
			}
			c.A.Alive = false
			c.B.Alive = false
		} else {
			event = ResolveElastic(c, w.tick, w.opts.Timestep)
			if w.opts.PositionalCorrection {
				Separate(c)
			}
		}
		w.log.Append(event)
		w.logger.Info("collision",
			zap.Int("tick", event.Tick),
			zap.Float64("time", event.Time),
			zap.Int("body_a", event.BodyA),
			zap.Int("body_b", event.BodyB))
	}

	return w.snapshot(contacts)
}

// snapshot captures the alive bodies' world-space state for this tick.
func (w *World) snapshot(contacts []Contact) Frame {
	colliding := make(map[int]bool, 2*len(contacts))
	for _, c := range contacts {
		colliding[c.A.ID] = true
		colliding[c.B.ID] = true
	}

	frame := Frame{
		Tick:   w.tick,
		Time:   float64(w.tick) * w.opts.Timestep,
		Bodies: make([]BodyState, 0, len(w.bodies)),
	}
	for _, b := range w.bodies {
		if !b.Alive {
			continue
		}
		frame.Bodies = append(frame.Bodies, BodyState{
			ID:        b.ID,
			Position:  b.Position,
			Vertices:  b.WorldVertices(),
			Colliding: colliding[b.ID],
		})
	}
	return frame
}

func (w *World) aliveCount() int {
	n := 0
	for _, b := range w.bodies {
		if b.Alive {
			n++
		}
	}
	return n
}

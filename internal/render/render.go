// Package render plays the simulation's frame sequence in a raylib window:
// a dark space scene with a star field, asteroids as filled irregular
// polygons with id labels, and warm highlights while bodies are colliding.
package render

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"asteroid-sim/internal/physics"
)

// Options controls the animation window.
// FPS matches the frame pacing, not the simulation timestep; the original
// animation ran at 10 frames per second. Seed fixes the star field.
// FrameDir, when set, dumps every frame once as a PNG for external video
// assembly.
type Options struct {
	Width     int32
	Height    int32
	FPS       int32
	Title     string
	StarCount int
	Seed      int64
	FrameDir  string
}

// DefaultOptions returns the animation defaults.
func DefaultOptions() Options {
	return Options{
		Width:     1000,
		Height:    800,
		FPS:       10,
		Title:     "Asteroid Belt Collision Simulation",
		StarCount: 300,
		Seed:      0,
	}
}

// viewport maps world coordinates to the screen: uniform scale, centered,
// y flipped so world +y points up.
type viewport struct {
	minX, minY float64
	scale      float64
	offX, offY float64
	height     float64
}

// computeViewport fits the world bounds of every frame into the window with
// some padding, so no body ever leaves the screen.
func computeViewport(frames []physics.Frame, width, height int32) viewport {
	minX, minY := -1.0, -1.0
	maxX, maxY := 1.0, 1.0
	first := true
	for _, f := range frames {
		for _, b := range f.Bodies {
			for _, v := range b.Vertices {
				if first {
					minX, maxX = v.X(), v.X()
					minY, maxY = v.Y(), v.Y()
					first = false
					continue
				}
				minX = min(minX, v.X())
				maxX = max(maxX, v.X())
				minY = min(minY, v.Y())
				maxY = max(maxY, v.Y())
			}
		}
	}

	pad := 0.05 * max(maxX-minX, maxY-minY)
	if pad == 0 {
		pad = 1
	}
	minX -= pad
	minY -= pad
	maxX += pad
	maxY += pad

	scale := min(float64(width)/(maxX-minX), float64(height)/(maxY-minY))
	// Center the fitted world inside the window.
	offX := (float64(width) - (maxX-minX)*scale) / 2
	offY := (float64(height) - (maxY-minY)*scale) / 2
	return viewport{minX: minX, minY: minY, scale: scale, offX: offX, offY: offY, height: float64(height)}
}

func (v viewport) toScreen(p mgl64.Vec2) rl.Vector2 {
	x := (p.X()-v.minX)*v.scale + v.offX
	y := v.height - ((p.Y()-v.minY)*v.scale + v.offY)
	return rl.NewVector2(float32(x), float32(y))
}

type star struct {
	pos    rl.Vector2
	radius float32
	color  rl.Color
}

func makeStars(opts Options) []star {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	palette := []rl.Color{rl.White, rl.NewColor(136, 204, 255, 255), rl.NewColor(255, 204, 136, 255)}

	stars := make([]star, opts.StarCount)
	for i := range stars {
		stars[i] = star{
			pos:    rl.NewVector2(rng.Float32()*float32(opts.Width), rng.Float32()*float32(opts.Height)),
			radius: 0.3 + rng.Float32()*1.2,
			color:  palette[rng.Intn(len(palette))],
		}
	}
	return stars
}

// asteroidPalette: gray-brown rock tones, picked per body id so a body keeps
// its color across frames.
var asteroidPalette = []rl.Color{
	rl.NewColor(139, 115, 85, 255),
	rl.NewColor(168, 168, 168, 255),
	rl.NewColor(139, 121, 94, 255),
	rl.NewColor(105, 105, 105, 255),
}

var spaceBlue = rl.NewColor(5, 5, 32, 255)

// Run opens the window and plays the frames in a loop until the window is
// closed. events is the full collision log; it drives the per-frame
// collision banner. Blocks until the window closes.
func Run(frames []physics.Frame, events []physics.CollisionEvent, opts Options) {
	if len(frames) == 0 {
		return
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}

	view := computeViewport(frames, opts.Width, opts.Height)
	stars := makeStars(opts)
	eventsByTick := make(map[int][]physics.CollisionEvent)
	for _, e := range events {
		eventsByTick[e.Tick] = append(eventsByTick[e.Tick], e)
	}

	if opts.FrameDir != "" {
		if err := os.MkdirAll(opts.FrameDir, 0755); err != nil {
			opts.FrameDir = ""
		}
	}

	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.FPS)

	idx := 0
	dumped := false
	for !rl.WindowShouldClose() {
		frame := frames[idx]

		rl.BeginDrawing()
		rl.ClearBackground(spaceBlue)
		drawStars(stars)
		drawFrame(frame, view)
		drawBanner(eventsByTick[frame.Tick], opts)
		rl.DrawText(fmt.Sprintf("Time: %.1fs", frame.Time), 10, opts.Height-30, 20, rl.White)
		rl.EndDrawing()

		if opts.FrameDir != "" && !dumped {
			rl.TakeScreenshot(filepath.Join(opts.FrameDir, fmt.Sprintf("frame_%04d.png", frame.Tick)))
		}

		idx++
		if idx == len(frames) {
			idx = 0
			dumped = true // frames are only exported on the first pass
		}
	}
}

func drawStars(stars []star) {
	for _, s := range stars {
		rl.DrawCircleV(s.pos, s.radius, rl.Fade(s.color, 0.8))
	}
}

func drawFrame(frame physics.Frame, view viewport) {
	for _, b := range frame.Bodies {
		center := view.toScreen(b.Position)

		fill := asteroidPalette[b.ID%len(asteroidPalette)]
		outline := rl.NewColor(68, 68, 68, 255)
		if b.Colliding {
			// Explosion-ish glow behind the body.
			rr := 0.0
			for _, v := range b.Vertices {
				p := view.toScreen(v)
				dx, dy := float64(p.X-center.X), float64(p.Y-center.Y)
				rr = max(rr, dx*dx+dy*dy)
			}
			glow := float32(math.Sqrt(rr))
			rl.DrawCircleV(center, glow*2.5, rl.Fade(rl.Orange, 0.2))
			rl.DrawCircleV(center, glow*1.5, rl.Fade(rl.Yellow, 0.3))
			fill = rl.NewColor(255, 85, 0, 230)
			outline = rl.NewColor(255, 170, 0, 255)
		}

		// Triangle fan from the centroid; generated shapes are star-shaped
		// around it, so the fan covers the polygon exactly.
		points := make([]rl.Vector2, 0, len(b.Vertices)+2)
		points = append(points, center)
		for _, v := range b.Vertices {
			points = append(points, view.toScreen(v))
		}
		points = append(points, view.toScreen(b.Vertices[0]))
		rl.DrawTriangleFan(points, fill)
		rl.DrawLineStrip(points[1:], outline)

		label := strconv.Itoa(b.ID)
		tw := rl.MeasureText(label, 12)
		rl.DrawText(label, int32(center.X)-tw/2+1, int32(center.Y)-5+1, 12, rl.Black)
		rl.DrawText(label, int32(center.X)-tw/2, int32(center.Y)-5, 12, rl.White)
	}
}

func drawBanner(active []physics.CollisionEvent, opts Options) {
	if len(active) == 0 {
		return
	}
	rl.DrawRectangle(10, 10, 280, int32(24+18*len(active)), rl.Fade(rl.Maroon, 0.8))
	rl.DrawText("COLLISION DETECTED", 20, 16, 18, rl.White)
	for i, e := range active {
		text := fmt.Sprintf("Asteroids %d and %d", e.BodyA, e.BodyB)
		rl.DrawText(text, 20, int32(38+18*i), 14, rl.White)
	}
}

// Package loader reads asteroid data files and turns validated records into
// simulation bodies. The file is whitespace-columned, one body per line:
//
//	x y radius vx vy
//
// or, with explicit ids:
//
//	id x y radius vx vy [vertices] [seed]
//
// A header line is detected by any non-numeric field and skipped. Ids are
// detected by a line of at least six columns whose first field is a bare
// integer; files without ids get them assigned sequentially from 1.
// Any malformed record aborts the whole load with the failing line number.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"asteroid-sim/internal/geometry"
	"asteroid-sim/internal/physics"
)

// BodySpec is one validated body record: everything the core needs to
// construct a Body.
type BodySpec struct {
	ID          int
	Center      mgl64.Vec2
	Radius      float64
	Velocity    mgl64.Vec2
	VertexCount int
	Seed        int64
}

// InvalidBodySpecError reports a body record that failed validation. Line is
// 1-based within the input file.
type InvalidBodySpecError struct {
	Line   int
	Reason string
}

func (e *InvalidBodySpecError) Error() string {
	return fmt.Sprintf("invalid body spec at line %d: %s", e.Line, e.Reason)
}

// Load reads body specs from a file.
func Load(path string) ([]BodySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open asteroid data %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses body specs from a reader. See the package comment for the
// accepted layout.
func Read(r io.Reader) ([]BodySpec, error) {
	var specs []BodySpec
	seen := make(map[int]bool)
	nextID := 1
	hasIDs := false
	sawData := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !sawData {
			if isHeader(fields) {
				continue
			}
			sawData = true
			hasIDs = len(fields) >= 6 && isBareInt(fields[0])
		}

		spec, err := parseRecord(fields, hasIDs, lineNo)
		if err != nil {
			return nil, err
		}
		if !hasIDs {
			spec.ID = nextID
			nextID++
		}
		if seen[spec.ID] {
			return nil, &InvalidBodySpecError{Line: lineNo, Reason: fmt.Sprintf("duplicate id %d", spec.ID)}
		}
		seen[spec.ID] = true
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read asteroid data")
	}
	return specs, nil
}

func parseRecord(fields []string, hasIDs bool, lineNo int) (BodySpec, error) {
	var spec BodySpec
	bad := func(format string, args ...interface{}) (BodySpec, error) {
		return BodySpec{}, &InvalidBodySpecError{Line: lineNo, Reason: fmt.Sprintf(format, args...)}
	}

	if hasIDs {
		if len(fields) < 6 {
			return bad("need at least 6 columns (id x y radius vx vy), got %d", len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return bad("id %q is not an integer", fields[0])
		}
		spec.ID = id
		fields = fields[1:]
	} else if len(fields) != 5 {
		return bad("need 5 columns (x y radius vx vy), got %d", len(fields))
	}

	names := []string{"x", "y", "radius", "vx", "vy"}
	vals := make([]float64, 5)
	for i, name := range names {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return bad("%s %q is not numeric", name, fields[i])
		}
		vals[i] = v
	}
	spec.Center = mgl64.Vec2{vals[0], vals[1]}
	spec.Radius = vals[2]
	spec.Velocity = mgl64.Vec2{vals[3], vals[4]}
	if spec.Radius <= 0 {
		return bad("radius must be positive, got %v", spec.Radius)
	}

	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 3 {
			return bad("vertex count %q must be an integer >= 3", fields[5])
		}
		spec.VertexCount = n
	}
	if len(fields) >= 7 {
		seed, err := strconv.ParseInt(fields[6], 10, 64)
		if err != nil {
			return bad("seed %q is not an integer", fields[6])
		}
		spec.Seed = seed
	}
	if len(fields) > 7 {
		return bad("too many columns (%d)", len(fields))
	}
	return spec, nil
}

// isHeader reports whether the first line looks like column names rather
// than data: any field that is not a number.
func isHeader(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return true
		}
	}
	return false
}

func isBareInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil && !strings.ContainsAny(s, ".eE")
}

// Bodies constructs simulation bodies from loaded specs. Irregularity shapes
// every generated polygon; runSeed makes the whole run reproducible. A body
// without its own seed uses runSeed offset by its id, and runSeed == 0
// picks a fresh random shape per run.
func Bodies(specs []BodySpec, irregularity float64, runSeed int64) ([]*physics.Body, error) {
	bodies := make([]*physics.Body, 0, len(specs))
	for _, spec := range specs {
		opts := geometry.DefaultShapeOptions(spec.Radius)
		opts.Irregularity = irregularity
		opts.VertexCount = spec.VertexCount
		opts.Seed = spec.Seed
		if opts.Seed == 0 && runSeed != 0 {
			opts.Seed = runSeed + int64(spec.ID)
		}

		b, err := physics.NewBody(spec.ID, spec.Center, spec.Velocity, geometry.GenerateIrregularPolygon(opts))
		if err != nil {
			return nil, errors.Wrapf(err, "body %d", spec.ID)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Package report turns the collision log into human-readable output: a
// plain-text report file and a colored console summary. Both consume the
// same immutable event list, in log order.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"asteroid-sim/internal/physics"
)

// WriteFile writes the collision report to path, creating parent
// directories as needed. One table row per event, in log order.
func WriteFile(path string, events []physics.CollisionEvent) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create report directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer f.Close()
	return Write(f, events)
}

// Write renders the report to w.
func Write(w io.Writer, events []physics.CollisionEvent) error {
	fmt.Fprintln(w, "ASTEROID COLLISION SIMULATION RESULTS")
	fmt.Fprintln(w, "====================================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total collisions detected: %d\n", len(events))
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	if err := table.Append([]string{"Time (s)", "Tick", "Asteroid ID 1", "Asteroid ID 2"}); err != nil {
		return errors.Wrap(err, "append header row")
	}
	for _, e := range events {
		row := []string{
			fmt.Sprintf("%.1f", e.Time),
			strconv.Itoa(e.Tick),
			strconv.Itoa(e.BodyA),
			strconv.Itoa(e.BodyB),
		}
		if err := table.Append(row); err != nil {
			return errors.Wrap(err, "append event row")
		}
	}
	if err := table.Render(); err != nil {
		return errors.Wrap(err, "render report table")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "End of collision report")
	return nil
}

// PrintConsole echoes the collision log to w with color highlighting, the
// way the simulation script prints it after a run.
func PrintConsole(w io.Writer, events []physics.CollisionEvent) {
	if len(events) == 0 {
		color.New(color.FgHiGreen).Fprintln(w, "No collisions detected.")
		return
	}

	color.New(color.FgHiYellow, color.Bold).Fprintf(w, "Detected %d collisions:\n", len(events))
	color.New(color.FgHiBlack).Fprintln(w, "Time    Asteroid IDs")
	color.New(color.FgHiBlack).Fprintln(w, "--------------------")
	for _, e := range events {
		color.New(color.FgHiRed, color.Bold).Fprintf(w, "%.1f", e.Time)
		fmt.Fprintf(w, "     %d %d\n", e.BodyA, e.BodyB)
	}
}

// Package modes implements the six training modes. Each mode registers a
// factory with the registry in init(); a handler instance carries the state
// of exactly one run.
package modes

import (
	"fmt"
	"math"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
)

// Mode IDs, as used on the command line and in storage.
const (
	TrackingID  = "tracking"
	FlickingID  = "flicking"
	SwitchingID = "switching"
	ReflexID    = "reflex"
	SixTargetID = "sixtarget"
	HumanoidID  = "humanoid"
)

// Order is the menu order of the modes.
var Order = []string{TrackingID, FlickingID, SwitchingID, ReflexID, SixTargetID, HumanoidID}

// Text offsets above a target for score and bonus labels.
const (
	scoreTextRise = 20
	bonusTextRise = 45
)

// randomPoint returns a uniform point at least margin away from every edge.
// On viewports too small for the margin the point collapses to the center line.
func randomPoint(e *engine.Engine, margin float64) core.Vec2 {
	vp := e.Viewport()
	rng := e.Rand()
	return core.V(
		margin+rng.Float64()*math.Max(0, vp.X-margin*2),
		margin+rng.Float64()*math.Max(0, vp.Y-margin*2),
	)
}

// spacedPoints places count points at least minDist apart. Each point gets up
// to attempts tries; the last try is kept when none fits.
func spacedPoints(e *engine.Engine, count int, margin, minDist float64, attempts int) []core.Vec2 {
	pts := make([]core.Vec2, 0, count)
	for i := 0; i < count; i++ {
		var p core.Vec2
		for try := 0; try < attempts; try++ {
			p = randomPoint(e, margin)
			if farFromAll(p, pts, minDist) {
				break
			}
		}
		pts = append(pts, p)
	}
	return pts
}

func farFromAll(p core.Vec2, pts []core.Vec2, minDist float64) bool {
	for _, q := range pts {
		if p.DistSq(q) < minDist*minDist {
			return false
		}
	}
	return true
}

// showPoints floats the "+N" label above a target.
func showPoints(e *engine.Engine, at core.Vec2, points int) {
	e.AddText(at.Sub(core.V(0, scoreTextRise)), fmt.Sprintf("+%d", points), core.ColorCyan)
}

// showBonus floats a bonus label above the score label.
func showBonus(e *engine.Engine, at core.Vec2, text string) {
	e.AddText(at.Sub(core.V(0, bonusTextRise)), text, core.ColorOrange)
}

// showMiss floats "MISS" just above the crosshair.
func showMiss(e *engine.Engine) {
	e.AddText(e.Cursor().Sub(core.V(0, scoreTextRise)), "MISS", core.ColorRed)
}

// reactionBonus is one row of a reaction-time scoring table.
type reactionBonus struct {
	under  float64 // milliseconds, exclusive
	points int
	label  string
}

// lookupBonus returns the first row whose threshold ms is under.
func lookupBonus(table []reactionBonus, ms float64) (int, string) {
	for _, b := range table {
		if ms < b.under {
			return b.points, b.label
		}
	}
	return 0, ""
}

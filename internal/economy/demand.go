// Demand intensity field for the simulation driver.
// Smoothly varying noise stands in for the ebb and flow of how hard an
// actor works its means in a given stretch of time.
package economy

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// DemandField produces a per-actor consumption intensity that drifts
// smoothly over simulation time. Deterministic for a given seed.
type DemandField struct {
	noise opensimplex.Noise
}

// NewDemandField creates a demand field from a seed.
func NewDemandField(seed int64) *DemandField {
	return &DemandField{noise: opensimplex.NewNormalized(seed)}
}

// Intensity returns a value in [0, 1] for the given tick and actor index.
// The tick axis is compressed so intensity shifts over sim-hours, not
// per-tick; the actor axis is spread so actors decouple.
func (d *DemandField) Intensity(tick uint64, actorIndex int) float64 {
	return d.noise.Eval2(float64(tick)/240.0, float64(actorIndex)*7.13)
}

// Applications converts intensity into how many item uses an actor attempts
// this tick: 0 in slack periods, 1 normally, 2 at peak demand.
func (d *DemandField) Applications(tick uint64, actorIndex int) int {
	v := d.Intensity(tick, actorIndex)
	switch {
	case v < 0.25:
		return 0
	case v > 0.8:
		return 2
	default:
		return 1
	}
}

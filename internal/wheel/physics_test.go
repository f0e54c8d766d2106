package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeTorqueDeadZone(t *testing.T) {
	assert.Zero(t, shapeTorque(0))
	assert.Less(t, math.Abs(shapeTorque(deadZone-1)), deadZone-1)
}

func TestShapeTorquePreservesSign(t *testing.T) {
	cases := []float64{-9000, -100, 100, 9000}
	for _, raw := range cases {
		got := shapeTorque(raw)
		if raw > 0 {
			assert.GreaterOrEqual(t, got, 0.0)
		} else if raw < 0 {
			assert.LessOrEqual(t, got, 0.0)
		}
	}
}

// shapeTorque is monotonic in magnitude within each piece of its curve. Just
// above heavyForceFloor the gain switches from the slip-weighted piece to the
// heavy-force piece and the magnitude drops, so the comparison restarts there.
func TestShapeTorqueMonotonicInMagnitudeWithinEachPiece(t *testing.T) {
	prev := 0.0
	for raw := 0.0; raw <= 10000; raw += 250 {
		got := math.Abs(shapeTorque(raw))
		if raw > heavyForceFloor && raw-250 <= heavyForceFloor {
			prev = 0
		}
		assert.GreaterOrEqual(t, got, prev-1e-9)
		prev = got
	}
}

func TestLowPassAlphaBounds(t *testing.T) {
	assert.InDelta(t, 0, lowPassAlpha(0), 1e-9)
	for dt := dtMin; dt <= dtMax; dt += 0.001 {
		a := lowPassAlpha(dt)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
}

func TestLowPassAlphaIncreasesWithDt(t *testing.T) {
	assert.Less(t, lowPassAlpha(dtMin), lowPassAlpha(dtMax))
}

// physicsStep must never push offset or velocity outside the spec's hard
// limits, regardless of how extreme the commanded force/autocenter are.
func TestPhysicsStepRespectsOffsetAndVelocityLimits(t *testing.T) {
	var filtered float64
	offset, velocity := float32(0), float32(0)

	for i := 0; i < 2000; i++ {
		offset, velocity = physicsStep(10000, 32767, 32767, 1.0, offset, velocity, &filtered, dtMax)
		assert.GreaterOrEqual(t, float64(offset), -offsetLimit-1e-3)
		assert.LessOrEqual(t, float64(offset), offsetLimit+1e-3)
		assert.GreaterOrEqual(t, float64(velocity), -velocityLimit-1e-3)
		assert.LessOrEqual(t, float64(velocity), velocityLimit+1e-3)
	}
}

// Hitting a hard wall (offset saturated at the limit) must zero velocity on
// that step, not merely clamp position while leaving momentum that would
// immediately re-enter the clamp next tick.
func TestPhysicsStepZeroesVelocityAtHardWall(t *testing.T) {
	var filtered float64
	offset := float32(offsetLimit)
	velocity := float32(velocityLimit) // driving further into the wall

	newOffset, newVelocity := physicsStep(10000, 0, 0, 1.0, offset, velocity, &filtered, dtMax)
	assert.Equal(t, float32(offsetLimit), newOffset)
	assert.Zero(t, newVelocity)
}

func TestPhysicsStepClampsDt(t *testing.T) {
	var filteredSlow, filteredFast float64
	// dt far outside [dtMin, dtMax] must behave identically to the clamped
	// boundary, not blow up the integration.
	oSlow, vSlow := physicsStep(5000, 1024, 0, 1.0, 0, 0, &filteredSlow, 10.0)
	oFast, vFast := physicsStep(5000, 1024, 0, 1.0, 0, 0, &filteredFast, dtMax)
	assert.Equal(t, oFast, oSlow)
	assert.Equal(t, vFast, vSlow)
}

func TestPhysicsStepZeroForceAndAutocenterDecaysTowardCenter(t *testing.T) {
	var filtered float64
	offset := float32(15000)
	velocity := float32(0)
	for i := 0; i < 500; i++ {
		offset, velocity = physicsStep(0, 0, 0, 1.0, offset, velocity, &filtered, dtMax)
	}
	assert.Less(t, math.Abs(float64(offset)), 15000.0)
}

func TestClampF64(t *testing.T) {
	assert.Equal(t, 1.0, clampF64(5, 0, 1))
	assert.Equal(t, 0.0, clampF64(-5, 0, 1))
	assert.Equal(t, 0.5, clampF64(0.5, 0, 1))
}

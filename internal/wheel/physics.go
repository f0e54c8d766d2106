package wheel

import "math"

// shapeTorque implements §4.D.2 step 3: piecewise torque shaping operating
// on signed force. Below the dead zone the response blends linearly to
// zero; above it a slip-weighted gain curve ramps toward full boost.
func shapeTorque(raw float64) float64 {
	a := math.Abs(raw)
	if a < deadZone {
		return raw * (a / deadZone)
	}

	t := clampF64((a-deadZone)/slipWeightSpan, 0, 1)
	slipWeight := t * t

	var gainPiece float64
	if a > heavyForceFloor {
		heavy := clampF64((a-heavyForceFloor)/heavyForceSpan, 0, 1)
		gainPiece = 0.25 + 0.75*heavy
	} else {
		gainPiece = 0.25 + slipWeight*0.75
	}

	return raw * gainPiece * shapeBoost
}

// lowPassAlpha is the first-order low-pass coefficient for a given dt
// (§4.D.2 step 4).
func lowPassAlpha(dt float64) float64 {
	return clampF64(1-math.Exp(-dt*lowPassCutoffHz), 0, 1)
}

// physicsStep runs one iteration of the FFB physics loop (§4.D.2 steps
// 2-7) given a snapshot of shared state and the loop-local filtered value,
// which persists across calls and is never exposed outside this package.
//
// Returns the new offset and velocity; filtered is updated in place.
func physicsStep(force int16, autocenter int16, steering float32, gain float32, offset, velocity float32, filtered *float64, dt float64) (newOffset, newVelocity float32) {
	dt = clampF64(dt, dtMin, dtMax)

	shaped := shapeTorque(float64(force))
	alpha := lowPassAlpha(dt)
	*filtered += (shaped - *filtered) * alpha

	var spring float64
	if autocenter > 0 {
		spring = -(float64(steering) * float64(autocenter)) / autocenterDivisor
	}

	target := clampF64((*filtered+spring)*float64(gain), -offsetLimit, offsetLimit)

	errv := target - float64(offset)
	v := float64(velocity) + errv*springStiffness*dt
	v *= math.Exp(-springDamping * dt)
	v = clampF64(v, -velocityLimit, velocityLimit)

	o := float64(offset) + v*dt
	if o >= offsetLimit {
		o = offsetLimit
		v = 0
	} else if o <= -offsetLimit {
		o = -offsetLimit
		v = 0
	}

	return float32(o), float32(v)
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package wheel

// Tunable constants for the steering accumulator and FFB physics loop.
// These are empirical (reference implementation: wheel_device.cpp) and are
// treated as tunables rather than invariants — property tests assert the
// bounds they feed into, not these exact values.
const (
	steeringMin = -32768.0
	steeringMax = 32767.0

	offsetLimit      = 22000.0
	velocityLimit    = 90000.0
	sensitivityScale = 0.05
	deltaStepLimit   = 2000.0

	dtMin = 0.001
	dtMax = 0.010

	deadZone          = 80.0
	slipWeightSpan    = 14000.0 - 80.0
	heavyForceFloor   = 4000.0
	heavyForceSpan    = 14000.0 - 4000.0
	shapeBoost        = 3.0
	lowPassCutoffHz   = 38.0
	autocenterDivisor = 32768.0
	springStiffness   = 120.0
	springDamping     = 8.0

	steeringEpsilon = 0.1
)

package core

const (
	// SpeedOfSound is the speed of sound in air at room temperature, in m/s.
	SpeedOfSound = 343.0

	// MaxFrequency is the highest frequency any model reports, in Hz.
	MaxFrequency = 20000.0

	// MinFrequency is the lowest frequency any model reports, in Hz.
	// Filter outputs that would fall to or below zero are lifted to it.
	MinFrequency = 20.0

	// ZeroGainDB is the level treated as silence.
	ZeroGainDB = -96.0
)

// ZeroGain is the linear gain floor corresponding to [ZeroGainDB].
// Gain models never report exactly 0 so downstream ramps stay out of the
// log domain's singularity.
var ZeroGain = DBToLinear(ZeroGainDB)

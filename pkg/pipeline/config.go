package pipeline

import "time"

// Config holds all tunable parameters for the processing chain.
type Config struct {
	// Smoothing
	Smoothing float64           // user parameter in [0,1]; 0 = instant
	Strategy  SmoothingStrategy // Euler EMA or quaternion SLERP

	// Deadzone thresholds in degrees
	Deadzone DeadzoneSettings

	// Interpolation
	Interpolate      bool          // bridge sensor rate to render rate
	MaxExtrapolation time.Duration // prediction cap per tick without data
}

// DefaultConfig returns the recommended configuration: light smoothing
// with SLERP so combined roll and pitch stay gimbal-safe, a small
// deadzone to eat sensor noise, and interpolation on.
func DefaultConfig() Config {
	return Config{
		Smoothing: 0.3,
		Strategy:  SmoothingSlerp,

		Deadzone: DeadzoneSettings{Yaw: 0.5, Pitch: 0.5, Roll: 0.5},

		Interpolate:      true,
		MaxExtrapolation: DefaultMaxExtrapolation,
	}
}

// SmoothConfig trades latency for stability: heavier smoothing and a
// wider deadzone. For cinematic camera work or very noisy sensors.
func SmoothConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.6
	cfg.Deadzone = DeadzoneSettings{Yaw: 1.5, Pitch: 1.5, Roll: 1.5}
	return cfg
}

// ResponsiveConfig minimizes latency: barely-there smoothing on the
// cheap Euler path and no deadzone. For fast aim in games without
// much roll.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.1
	cfg.Strategy = SmoothingEuler
	cfg.Deadzone = DeadzoneSettings{}
	return cfg
}

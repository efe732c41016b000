package pipeline

import "github.com/teslashibe/go-headtrack/pkg/pose"

// TuningParams is the runtime-adjustable slice of the configuration,
// exposed over the dashboard tuning API so response can be dialed in
// without restarting the daemon.
type TuningParams struct {
	Smoothing   float64             `json:"smoothing"`    // 0 = instant, 1 = very slow
	Strategy    string              `json:"strategy"`     // "euler" or "slerp"
	Deadzone    DeadzoneSettings    `json:"deadzone"`     // degrees per axis
	Sensitivity SensitivitySettings `json:"sensitivity"`  // scale/invert per axis
	Interpolate bool                `json:"interpolate"`  // extrapolate between samples
}

// GetTuningParams returns the pipeline's current tuning values.
func (pl *Pipeline) GetTuningParams() TuningParams {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	strategy := "euler"
	if pl.smoother.Strategy() == SmoothingSlerp {
		strategy = "slerp"
	}
	return TuningParams{
		Smoothing:   pl.smoother.Param(),
		Strategy:    strategy,
		Deadzone:    pl.deadzone,
		Sensitivity: pl.sensitivity,
		Interpolate: pl.cfg.Interpolate,
	}
}

// SetTuningParams applies runtime tuning. The smoothing strategy is
// fixed at construction (it decides the offset mode too), so a
// strategy mismatch here is ignored rather than half-applied.
func (pl *Pipeline) SetTuningParams(params TuningParams) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.smoother.SetParam(pose.Clamp(params.Smoothing, 0, 1))
	pl.deadzone = params.Deadzone
	pl.sensitivity = params.Sensitivity
	pl.mapper = params.Sensitivity.Mapper()
	pl.cfg.Interpolate = params.Interpolate
}

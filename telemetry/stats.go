package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fluidgrid/fluid"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Dye distribution (sampled at window end)
	InkTotal float64 `csv:"ink_total"`
	InkMean  float64 `csv:"ink_mean"`
	InkStd   float64 `csv:"ink_std"`
	InkMin   float64 `csv:"ink_min"`
	InkMax   float64 `csv:"ink_max"`
	InkP50   float64 `csv:"ink_p50"`
	InkP90   float64 `csv:"ink_p90"`

	// Flow (sampled at window end)
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedMax       float64 `csv:"speed_max"`
	KineticEnergy  float64 `csv:"kinetic_energy"`  // 0.5 * sum(u^2 + v^2)
	MeanDivergence float64 `csv:"mean_divergence"` // mean |du/dx + dv/dy| over interior cells

	// Events during window
	Paints         int `csv:"paints"`
	Erases         int `csv:"erases"`
	VelocityPaints int `csv:"velocity_paints"`
	Clears         int `csv:"clears"`
}

// FieldReader exposes the grid fields telemetry samples.
type FieldReader interface {
	Size() (w, h int)
	Values(f fluid.Field) []float32
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// InkStats summarizes a dye field.
type InkStats struct {
	Total, Mean, Std, Min, Max, P50, P90 float64
}

// ComputeInkStats calculates the distribution of values. Std is the
// population standard deviation.
func ComputeInkStats(values []float64) InkStats {
	if len(values) == 0 {
		return InkStats{}
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return InkStats{
		Total: floats.Sum(values),
		Mean:  mean,
		Std:   math.Sqrt(variance),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   Percentile(sorted, 0.50),
		P90:   Percentile(sorted, 0.90),
	}
}

// FlowStats summarizes a velocity field.
type FlowStats struct {
	SpeedMean, SpeedMax, KineticEnergy, MeanDivergence float64
}

// ComputeFlowStats measures speed, kinetic energy and the central-difference
// divergence of (u, v) on a w x h grid.
func ComputeFlowStats(u, v []float32, w, h int) FlowStats {
	n := len(u)
	if n == 0 || len(v) != n {
		return FlowStats{}
	}

	speeds := make([]float64, n)
	var ke float64
	for i := range u {
		uu, vv := float64(u[i]), float64(v[i])
		sq := uu*uu + vv*vv
		speeds[i] = math.Sqrt(sq)
		ke += sq
	}

	var div float64
	var interior int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := x + y*w
			d := float64(u[i+1]-u[i-1])/2 + float64(v[i+w]-v[i-w])/2
			div += math.Abs(d)
			interior++
		}
	}
	if interior > 0 {
		div /= float64(interior)
	}

	return FlowStats{
		SpeedMean:      stat.Mean(speeds, nil),
		SpeedMax:       floats.Max(speeds),
		KineticEnergy:  ke / 2,
		MeanDivergence: div,
	}
}

// ComputeFieldStats samples the grid's current ink and velocity.
func ComputeFieldStats(r FieldReader) (InkStats, FlowStats) {
	w, h := r.Size()
	ink := r.Values(fluid.FieldInk)
	values := make([]float64, len(ink))
	for i, v := range ink {
		values[i] = float64(v)
	}
	return ComputeInkStats(values), ComputeFlowStats(r.Values(fluid.FieldU), r.Values(fluid.FieldV), w, h)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("ink_total", s.InkTotal),
		slog.Float64("ink_mean", s.InkMean),
		slog.Float64("ink_std", s.InkStd),
		slog.Float64("ink_min", s.InkMin),
		slog.Float64("ink_max", s.InkMax),
		slog.Float64("ink_p50", s.InkP50),
		slog.Float64("ink_p90", s.InkP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("mean_divergence", s.MeanDivergence),
		slog.Int("paints", s.Paints),
		slog.Int("erases", s.Erases),
		slog.Int("velocity_paints", s.VelocityPaints),
		slog.Int("clears", s.Clears),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"ink_total", s.InkTotal,
		"ink_mean", s.InkMean,
		"ink_max", s.InkMax,
		"ink_p90", s.InkP90,
		"speed_mean", s.SpeedMean,
		"speed_max", s.SpeedMax,
		"kinetic_energy", s.KineticEnergy,
		"mean_divergence", s.MeanDivergence,
		"paints", s.Paints,
		"erases", s.Erases,
		"velocity_paints", s.VelocityPaints,
		"clears", s.Clears,
	)
}

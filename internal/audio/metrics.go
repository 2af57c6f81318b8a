package audio

import "math"

// Metrics is the immutable audio artifact produced by a finished recording:
// one RMS window and one peak window per sampler tick, both normalized to
// [0, 1], plus the total recorded duration in seconds.
type Metrics struct {
	RMSWindows  []float64 `json:"rms_windows"`
	PeakWindows []float64 `json:"peak_windows"`
	Duration    float64   `json:"duration_seconds"`
}

// NewMetrics builds a Metrics snapshot, clamping every sample into [0, 1]
// and truncating the longer sequence so both windows stay equal length.
// Upstream samplers are not trusted to stay in range.
func NewMetrics(rms, peak []float64, duration float64) Metrics {
	n := len(rms)
	if len(peak) < n {
		n = len(peak)
	}
	m := Metrics{
		RMSWindows:  make([]float64, n),
		PeakWindows: make([]float64, n),
		Duration:    math.Max(0, duration),
	}
	for i := 0; i < n; i++ {
		m.RMSWindows[i] = clamp01(rms[i])
		m.PeakWindows[i] = clamp01(peak[i])
	}
	return m
}

// Empty reports whether no samples were captured
func (m Metrics) Empty() bool {
	return len(m.RMSWindows) == 0
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

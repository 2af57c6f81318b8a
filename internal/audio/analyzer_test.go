package audio

import (
	"math"
	"testing"
)

func TestAverageRMS_Empty(t *testing.T) {
	m := NewMetrics(nil, nil, 0)

	if got := AverageRMS(m); got != 0 {
		t.Errorf("Expected 0 average for empty metrics, got %f", got)
	}
	if got := RMSStandardDeviation(m); got != 0 {
		t.Errorf("Expected 0 std dev for empty metrics, got %f", got)
	}
	if got := SpikeCount(m, DefaultSpikeStdDevMultiplier); got != 0 {
		t.Errorf("Expected 0 spikes for empty metrics, got %d", got)
	}
	if got := SilenceRatio(m, DefaultNoiseFloor); got != 0 {
		t.Errorf("Expected 0 silence ratio for empty metrics, got %f", got)
	}
	if got := VoicedSegmentsPerMinute(m, DefaultNoiseFloor); got != 0 {
		t.Errorf("Expected 0 voiced segments for empty metrics, got %f", got)
	}
}

func TestAverageRMS(t *testing.T) {
	m := NewMetrics([]float64{0.2, 0.4, 0.6}, []float64{0.3, 0.5, 0.7}, 0.3)

	if got := AverageRMS(m); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Expected average 0.4, got %f", got)
	}
}

func TestRMSStandardDeviation_SingleSample(t *testing.T) {
	m := NewMetrics([]float64{0.5}, []float64{0.5}, 0.1)

	if got := RMSStandardDeviation(m); got != 0 {
		t.Errorf("Expected 0 std dev for single sample, got %f", got)
	}
}

func TestRMSStandardDeviation_SampleDenominator(t *testing.T) {
	// Samples 0.2, 0.4, 0.6: sample variance = 0.04, std dev = 0.2
	m := NewMetrics([]float64{0.2, 0.4, 0.6}, []float64{0.2, 0.4, 0.6}, 0.3)

	if got := RMSStandardDeviation(m); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected sample std dev 0.2, got %f", got)
	}
}

func TestSpikeCount(t *testing.T) {
	// One clear outlier well above mean + 2*stddev
	rms := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.9}
	m := NewMetrics(rms, rms, 1.0)

	if got := SpikeCount(m, DefaultSpikeStdDevMultiplier); got != 1 {
		t.Errorf("Expected 1 spike, got %d", got)
	}
}

func TestSilenceRatio(t *testing.T) {
	m := NewMetrics([]float64{0.005, 0.4, 0.005, 0.4}, []float64{0.1, 0.5, 0.1, 0.5}, 0.4)

	if got := SilenceRatio(m, DefaultNoiseFloor); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected silence ratio 0.5, got %f", got)
	}
}

func TestPauseCount_RunsNotWindows(t *testing.T) {
	// Two maximal silent runs: windows 1-2 and window 4
	m := NewMetrics([]float64{0.4, 0.005, 0.005, 0.4, 0.005}, []float64{0.4, 0.01, 0.01, 0.4, 0.01}, 0.5)

	if got := PauseCount(m, DefaultNoiseFloor); got != 2 {
		t.Errorf("Expected 2 pauses, got %d", got)
	}
}

func TestPauseCount_SingleSilentWindowCounts(t *testing.T) {
	m := NewMetrics([]float64{0.4, 0.005, 0.4}, []float64{0.4, 0.01, 0.4}, 0.3)

	if got := PauseCount(m, DefaultNoiseFloor); got != 1 {
		t.Errorf("Expected single silent window to count as a pause, got %d", got)
	}
}

func TestPauses_Buckets(t *testing.T) {
	// At 0.1s cadence: 3 silent windows = 0.3s (short), 10 = 1.0s (medium),
	// 25 = 2.5s (long)
	var rms []float64
	appendRun := func(value float64, count int) {
		for i := 0; i < count; i++ {
			rms = append(rms, value)
		}
	}
	appendRun(0.4, 5)
	appendRun(0.005, 3)
	appendRun(0.4, 5)
	appendRun(0.005, 10)
	appendRun(0.4, 5)
	appendRun(0.005, 25)
	appendRun(0.4, 5)

	m := NewMetrics(rms, rms, float64(len(rms))*0.1)
	buckets := Pauses(m, DefaultNoiseFloor, 0.1)

	if buckets.Short != 1 {
		t.Errorf("Expected 1 short pause, got %d", buckets.Short)
	}
	if buckets.Medium != 1 {
		t.Errorf("Expected 1 medium pause, got %d", buckets.Medium)
	}
	if buckets.Long != 1 {
		t.Errorf("Expected 1 long pause, got %d", buckets.Long)
	}
	if buckets.Total() != 3 {
		t.Errorf("Expected 3 total pauses, got %d", buckets.Total())
	}
}

func TestPauses_TrailingRunFlushed(t *testing.T) {
	m := NewMetrics([]float64{0.4, 0.005, 0.005, 0.005}, []float64{0.4, 0.01, 0.01, 0.01}, 0.4)

	buckets := Pauses(m, DefaultNoiseFloor, 0.1)
	if buckets.Total() != 1 {
		t.Errorf("Expected trailing silent run to flush, got %d pauses", buckets.Total())
	}
}

func TestVoicedSegmentsPerMinute(t *testing.T) {
	// Two voiced runs over 12 seconds: 2 / 0.2 minutes = 10 per minute
	m := NewMetrics([]float64{0.4, 0.005, 0.4}, []float64{0.4, 0.01, 0.4}, 12)

	if got := VoicedSegmentsPerMinute(m, DefaultNoiseFloor); math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected 10 voiced segments per minute, got %f", got)
	}
}

func TestVoicedSegmentsPerMinute_ZeroDuration(t *testing.T) {
	m := Metrics{RMSWindows: []float64{0.4}, PeakWindows: []float64{0.4}, Duration: 0}

	if got := VoicedSegmentsPerMinute(m, DefaultNoiseFloor); got != 0 {
		t.Errorf("Expected 0 for zero duration, got %f", got)
	}
}

func TestNormalizedWaveform(t *testing.T) {
	m := NewMetrics([]float64{0.2, 0.4}, []float64{0.2, 0.4}, 0.2)

	wave := NormalizedWaveform(m)
	if math.Abs(wave[0]-0.5) > 1e-9 || math.Abs(wave[1]-1.0) > 1e-9 {
		t.Errorf("Expected [0.5, 1.0], got %v", wave)
	}
}

func TestNormalizedWaveform_AllZero(t *testing.T) {
	m := NewMetrics([]float64{0, 0}, []float64{0, 0}, 0.2)

	wave := NormalizedWaveform(m)
	if wave[0] != 0 || wave[1] != 0 {
		t.Errorf("Expected identity for zero max, got %v", wave)
	}
}

func TestNewMetrics_ClampsAndAligns(t *testing.T) {
	m := NewMetrics([]float64{-0.5, 1.5, 0.3}, []float64{0.2, 0.9}, -1)

	if len(m.RMSWindows) != 2 || len(m.PeakWindows) != 2 {
		t.Errorf("Expected aligned length 2, got %d/%d", len(m.RMSWindows), len(m.PeakWindows))
	}
	if m.RMSWindows[0] != 0 {
		t.Errorf("Expected negative sample clamped to 0, got %f", m.RMSWindows[0])
	}
	if m.RMSWindows[1] != 1 {
		t.Errorf("Expected oversized sample clamped to 1, got %f", m.RMSWindows[1])
	}
	if m.Duration != 0 {
		t.Errorf("Expected negative duration clamped to 0, got %f", m.Duration)
	}
}

func TestAnalyze_EmptyMetricsNeutral(t *testing.T) {
	f := Analyze(NewMetrics(nil, nil, 0), DefaultNoiseFloor, DefaultSpikeStdDevMultiplier, 0.1)

	if f.AverageRMS != 0 || f.RMSStdDev != 0 || f.SpikeCount != 0 ||
		f.SilenceRatio != 0 || f.PauseCount != 0 || f.VoicedSegmentsPerMinute != 0 {
		t.Errorf("Expected all-zero features for empty metrics, got %+v", f)
	}
}

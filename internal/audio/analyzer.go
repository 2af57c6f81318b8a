package audio

import "math"

// DefaultNoiseFloor is the amplitude below which a window counts as silent
const DefaultNoiseFloor = 0.01

// DefaultSpikeStdDevMultiplier sets how far above the mean a window must
// reach to count as a spike
const DefaultSpikeStdDevMultiplier = 2.0

// Pause bucket boundaries in seconds. Runs of consecutive silent windows are
// bucketed by their duration at the sampler cadence.
const (
	shortPauseMaxSeconds = 0.5
	longPauseMinSeconds  = 2.0
)

// PauseBuckets counts silent runs by duration class
type PauseBuckets struct {
	Short  int `json:"short"`
	Medium int `json:"medium"`
	Long   int `json:"long"`
}

// Total returns the total number of pauses across buckets
func (p PauseBuckets) Total() int {
	return p.Short + p.Medium + p.Long
}

// AverageRMS returns the mean of the RMS windows, 0 when empty
func AverageRMS(m Metrics) float64 {
	if m.Empty() {
		return 0
	}
	sum := 0.0
	for _, v := range m.RMSWindows {
		sum += v
	}
	return sum / float64(len(m.RMSWindows))
}

// RMSStandardDeviation returns the sample standard deviation (n-1 denominator)
// of the RMS windows, 0 when fewer than two samples exist
func RMSStandardDeviation(m Metrics) float64 {
	n := len(m.RMSWindows)
	if n <= 1 {
		return 0
	}
	mean := AverageRMS(m)
	sumSq := 0.0
	for _, v := range m.RMSWindows {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// SpikeCount counts windows whose RMS exceeds the mean by more than
// multiplier standard deviations
func SpikeCount(m Metrics, multiplier float64) int {
	if m.Empty() {
		return 0
	}
	threshold := AverageRMS(m) + multiplier*RMSStandardDeviation(m)
	count := 0
	for _, v := range m.RMSWindows {
		if v > threshold {
			count++
		}
	}
	return count
}

// SilenceRatio returns the fraction of windows below the noise floor,
// 0 when empty
func SilenceRatio(m Metrics, noiseFloor float64) float64 {
	if m.Empty() {
		return 0
	}
	silent := 0
	for _, v := range m.RMSWindows {
		if v < noiseFloor {
			silent++
		}
	}
	return float64(silent) / float64(len(m.RMSWindows))
}

// PauseCount counts maximal runs of consecutive silent windows. Any single
// window below the floor starts a pause; no minimum run length applies.
func PauseCount(m Metrics, noiseFloor float64) int {
	count := 0
	inPause := false
	for _, v := range m.RMSWindows {
		if v < noiseFloor {
			if !inPause {
				count++
				inPause = true
			}
		} else {
			inPause = false
		}
	}
	return count
}

// Pauses buckets silent runs by duration given the sampler interval in
// seconds. A non-positive interval yields empty buckets.
func Pauses(m Metrics, noiseFloor, sampleInterval float64) PauseBuckets {
	var buckets PauseBuckets
	if sampleInterval <= 0 {
		return buckets
	}
	run := 0
	flush := func() {
		if run == 0 {
			return
		}
		seconds := float64(run) * sampleInterval
		switch {
		case seconds < shortPauseMaxSeconds:
			buckets.Short++
		case seconds > longPauseMinSeconds:
			buckets.Long++
		default:
			buckets.Medium++
		}
		run = 0
	}
	for _, v := range m.RMSWindows {
		if v < noiseFloor {
			run++
		} else {
			flush()
		}
	}
	flush()
	return buckets
}

// VoicedSegmentsPerMinute counts maximal runs of non-silent windows,
// normalized per minute of recording. 0 when the duration is 0.
func VoicedSegmentsPerMinute(m Metrics, noiseFloor float64) float64 {
	if m.Duration == 0 {
		return 0
	}
	segments := 0
	inSegment := false
	for _, v := range m.RMSWindows {
		if v >= noiseFloor {
			if !inSegment {
				segments++
				inSegment = true
			}
		} else {
			inSegment = false
		}
	}
	return float64(segments) / (m.Duration / 60.0)
}

// NormalizedWaveform scales each RMS window by the maximum RMS value, for
// display. Identity when the maximum is 0.
func NormalizedWaveform(m Metrics) []float64 {
	out := make([]float64, len(m.RMSWindows))
	max := 0.0
	for _, v := range m.RMSWindows {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		copy(out, m.RMSWindows)
		return out
	}
	for i, v := range m.RMSWindows {
		out[i] = v / max
	}
	return out
}

// Features holds every derived statistic the scorers consume, computed in one
// pass over a Metrics snapshot with the profile's thresholds.
type Features struct {
	AverageRMS              float64      `json:"average_rms"`
	RMSStdDev               float64      `json:"rms_std_dev"`
	SpikeCount              int          `json:"spike_count"`
	SilenceRatio            float64      `json:"silence_ratio"`
	PauseCount              int          `json:"pause_count"`
	Pauses                  PauseBuckets `json:"pauses"`
	VoicedSegmentsPerMinute float64      `json:"voiced_segments_per_minute"`
	WindowCount             int          `json:"window_count"`
	Duration                float64      `json:"duration_seconds"`
}

// Analyze derives all audio features from a Metrics snapshot. Empty metrics
// resolve to zero values, never an error.
func Analyze(m Metrics, noiseFloor, spikeMultiplier, sampleInterval float64) Features {
	return Features{
		AverageRMS:              AverageRMS(m),
		RMSStdDev:               RMSStandardDeviation(m),
		SpikeCount:              SpikeCount(m, spikeMultiplier),
		SilenceRatio:            SilenceRatio(m, noiseFloor),
		PauseCount:              PauseCount(m, noiseFloor),
		Pauses:                  Pauses(m, noiseFloor, sampleInterval),
		VoicedSegmentsPerMinute: VoicedSegmentsPerMinute(m, noiseFloor),
		WindowCount:             len(m.RMSWindows),
		Duration:                m.Duration,
	}
}

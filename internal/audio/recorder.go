package audio

// QualityWarning classifies the live recording environment. At most one
// warning is active at a time.
type QualityWarning string

const (
	QualityNone             QualityWarning = "none"
	QualityTooQuiet         QualityWarning = "too_quiet"
	QualityTooLoud          QualityWarning = "too_loud"
	QualityNoisyEnvironment QualityWarning = "noisy_environment"
)

// RecorderConfig holds configuration for the live level recorder
type RecorderConfig struct {
	SampleInterval   float64 // Seconds between samples (0.1 for 10 Hz)
	QualityWindow    int     // Trailing samples inspected per quality check
	WarmupSamples    int     // Samples ignored before noise floor calibration
	QuietThreshold   float64 // Trailing average below this is too quiet
	LoudThreshold    float64 // Trailing peak max above this is too loud
	NoisyFloorFactor float64 // Trailing minimum above floor*factor means constant background noise
}

// DefaultRecorderConfig returns the reference recorder configuration
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		SampleInterval:   0.1,
		QualityWindow:    20,
		WarmupSamples:    5,
		QuietThreshold:   0.02,
		LoudThreshold:    0.95,
		NoisyFloorFactor: 3.0,
	}
}

// calibrationMargin is added to the averaged warm-up samples when setting the
// session noise floor. The calibrated floor only drives live warnings; scoring
// always uses the profile's fixed floor.
const calibrationMargin = 0.005

// calibrationSamples is how many post-warm-up samples are averaged
const calibrationSamples = 3

// Recorder accumulates level samples during a recording. It is owned by the
// sampler's timer callback: Append must never be called concurrently with
// itself. Stop freezes the buffers into an immutable Metrics snapshot.
type Recorder struct {
	config RecorderConfig

	rms  []float64
	peak []float64

	stopped  bool
	snapshot Metrics

	calibrated      bool
	calibratedFloor float64
	calibrationBuf  []float64

	lastWarning QualityWarning
}

// NewRecorder creates a recorder for one session
func NewRecorder(config RecorderConfig) *Recorder {
	if config.SampleInterval <= 0 {
		config.SampleInterval = 0.1
	}
	if config.QualityWindow <= 0 {
		config.QualityWindow = 20
	}
	return &Recorder{
		config:      config,
		lastWarning: QualityNone,
	}
}

// Append ingests one level sample. It returns a quality warning only when the
// classification changed since the previous sample; repeats are suppressed.
// Samples after Stop are dropped.
func (r *Recorder) Append(rms, peak float64) (QualityWarning, bool) {
	if r.stopped {
		return QualityNone, false
	}

	rms = clamp01(rms)
	peak = clamp01(peak)
	r.rms = append(r.rms, rms)
	r.peak = append(r.peak, peak)

	r.calibrate(rms)

	warning := r.classify()
	if warning == r.lastWarning {
		return warning, false
	}
	r.lastWarning = warning
	return warning, true
}

// calibrate averages the first samples after warm-up and adds a small margin
func (r *Recorder) calibrate(rms float64) {
	if r.calibrated || len(r.rms) <= r.config.WarmupSamples {
		return
	}
	r.calibrationBuf = append(r.calibrationBuf, rms)
	if len(r.calibrationBuf) < calibrationSamples {
		return
	}
	sum := 0.0
	for _, v := range r.calibrationBuf {
		sum += v
	}
	r.calibratedFloor = sum/float64(len(r.calibrationBuf)) + calibrationMargin
	r.calibrated = true
}

// classify inspects the trailing window of samples and picks at most one
// warning. Runs every tick; idempotence is handled by the caller via
// lastWarning.
func (r *Recorder) classify() QualityWarning {
	n := len(r.rms)
	if n < r.config.QualityWindow {
		return QualityNone
	}
	start := n - r.config.QualityWindow

	avg := 0.0
	peakMax := 0.0
	rmsMin := 1.0
	for i := start; i < n; i++ {
		avg += r.rms[i]
		if r.peak[i] > peakMax {
			peakMax = r.peak[i]
		}
		if r.rms[i] < rmsMin {
			rmsMin = r.rms[i]
		}
	}
	avg /= float64(r.config.QualityWindow)

	switch {
	case peakMax > r.config.LoudThreshold:
		return QualityTooLoud
	case avg < r.config.QuietThreshold:
		return QualityTooQuiet
	case r.calibrated && rmsMin > r.calibratedFloor*r.config.NoisyFloorFactor:
		// Even the quietest trailing window sits well above the calibrated
		// floor: constant background noise rather than speech dynamics.
		return QualityNoisyEnvironment
	default:
		return QualityNone
	}
}

// CalibratedNoiseFloor returns the session noise floor measured after warm-up
// and whether calibration has completed
func (r *Recorder) CalibratedNoiseFloor() (float64, bool) {
	return r.calibratedFloor, r.calibrated
}

// SampleCount returns the number of samples appended so far
func (r *Recorder) SampleCount() int {
	return len(r.rms)
}

// Stop freezes the recording and returns the immutable Metrics snapshot.
// The duration is derived from the sample count and cadence. Repeated calls
// return the same snapshot.
func (r *Recorder) Stop() Metrics {
	if r.stopped {
		return r.snapshot
	}
	r.stopped = true
	duration := float64(len(r.rms)) * r.config.SampleInterval
	r.snapshot = NewMetrics(r.rms, r.peak, duration)
	return r.snapshot
}

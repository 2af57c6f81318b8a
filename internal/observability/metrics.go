package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session metrics
	sessionsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_engine_sessions_scored_total",
		Help: "Total number of scoring sessions completed",
	}, []string{"scenario", "coach_tone"})

	sessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feedback_engine_session_duration_seconds",
		Help:    "Recorded duration of scored sessions in seconds",
		Buckets: []float64{10, 30, 60, 120, 300, 600},
	})

	dimensionScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedback_engine_dimension_score",
		Help:    "Distribution of per-dimension scores (0-100)",
		Buckets: []float64{10, 25, 40, 55, 70, 85, 95, 100},
	}, []string{"dimension"})

	// Live stream metrics
	activeStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feedback_engine_active_level_streams",
		Help: "Number of live level-sample streams currently open",
	})

	levelSamples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_engine_level_samples_total",
		Help: "Total level samples ingested across all streams",
	})

	qualityWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_engine_quality_warnings_total",
		Help: "Total live recording quality warnings emitted",
	}, []string{"kind"})

	// Transcription metrics
	transcriptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_engine_transcription_requests_total",
		Help: "Total number of transcription requests",
	}, []string{"status"})

	transcriptionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feedback_engine_transcription_latency_seconds",
		Help:    "Transcription request latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_engine_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})
)

// RecordSessionScored records a completed scoring pass
func RecordSessionScored(scenario, coachTone string, durationSeconds float64) {
	sessionsScored.WithLabelValues(scenario, coachTone).Inc()
	sessionDuration.Observe(durationSeconds)
}

// RecordDimensionScore records one dimension score for distribution tracking
func RecordDimensionScore(dimension string, score int) {
	dimensionScores.WithLabelValues(dimension).Observe(float64(score))
}

// StreamOpened increments the active stream gauge
func StreamOpened() {
	activeStreams.Inc()
}

// StreamClosed decrements the active stream gauge
func StreamClosed() {
	activeStreams.Dec()
}

// RecordLevelSample counts one ingested level sample
func RecordLevelSample() {
	levelSamples.Inc()
}

// RecordQualityWarning counts one live quality warning
func RecordQualityWarning(kind string) {
	qualityWarnings.WithLabelValues(kind).Inc()
}

// RecordTranscription records a transcription request outcome
func RecordTranscription(status string, latencySeconds float64) {
	transcriptionRequests.WithLabelValues(status).Inc()
	if latencySeconds > 0 {
		transcriptionLatency.Observe(latencySeconds)
	}
}

// RecordError records an error by type and component
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

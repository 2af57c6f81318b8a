package scoring

import (
	"github.com/rehearseiq/feedback-engine/internal/audio"
	"github.com/rehearseiq/feedback-engine/internal/lexicon"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

// Engine runs the scoring pipeline: analyzer, lexical matcher, the four
// dimension scorers, and the aggregator. It is stateless and side-effect
// free; Score may run on any goroutine as long as the profile value is not
// shared and mutated elsewhere.
type Engine struct {
	phrases        lexicon.Phrases
	sampleInterval float64
}

// NewEngine creates a scoring engine with the given phrase lists and sampler
// cadence in seconds
func NewEngine(phrases lexicon.Phrases, sampleInterval float64) *Engine {
	if sampleInterval <= 0 {
		sampleInterval = 0.1
	}
	return &Engine{phrases: phrases, sampleInterval: sampleInterval}
}

// Measurements are the session-level figures persisted alongside scores and
// rolled up into baselines
type Measurements struct {
	SegmentsPerMinute float64 `json:"segments_per_minute"`
	AverageLevel      float64 `json:"average_level"`
	SilenceRatio      float64 `json:"silence_ratio"`
	VolumeStability   float64 `json:"volume_stability"`
	WordsPerMinute    float64 `json:"words_per_minute"`
}

// Result is everything one scoring pass produces: the persisted scores, the
// per-dimension analyses for raw-count display, the derived audio features,
// and the session measurements.
type Result struct {
	Scores       FeedbackScores     `json:"scores"`
	Clarity      ClarityAnalysis    `json:"clarity_analysis"`
	Pacing       PacingAnalysis     `json:"pacing_analysis"`
	Tone         ToneAnalysis       `json:"tone_analysis"`
	Confidence   ConfidenceAnalysis `json:"confidence_analysis"`
	Features     audio.Features     `json:"audio_features"`
	Measurements Measurements       `json:"measurements"`
}

// Score runs one full scoring pass. The transcript is optional: nil means
// audio-only scoring with all lexical counts at zero. Any well-typed input
// produces a result; there are no error paths.
func (e *Engine) Score(metrics audio.Metrics, transcript *stt.TranscriptionResult, profile Profile) Result {
	features := audio.Analyze(metrics, profile.Audio.NoiseFloor,
		profile.Audio.SpikeStdDevMultiplier, e.sampleInterval)

	var counts lexicon.Counts
	lowConfidence := 0
	if transcript != nil {
		counts = lexicon.Match(transcript.Text, e.phrases)
		for _, seg := range transcript.Segments {
			if seg.Confidence < profile.Nlp.LowConfidenceThreshold {
				lowConfidence++
			}
		}
	}

	wordsPerMinute := 0.0
	if counts.WordCount > 0 && metrics.Duration > 0 {
		wordsPerMinute = float64(counts.WordCount) / (metrics.Duration / 60.0)
	}

	hasAudio := !metrics.Empty()

	clarity := ClarityAnalysis{
		FillerCount:           counts.Filler,
		RepeatedCount:         counts.RepeatedWords,
		IncompleteCount:       counts.Incomplete,
		LowConfidenceSegments: lowConfidence,
		AverageWordLength:     counts.AverageWordLength,
		SilenceRatio:          features.SilenceRatio,
		HasAudio:              hasAudio,
	}
	pacing := PacingAnalysis{
		WordsPerMinute:          wordsPerMinute,
		VoicedSegmentsPerMinute: features.VoicedSegmentsPerMinute,
		Pauses:                  features.Pauses,
		PauseCount:              features.PauseCount,
		Duration:                metrics.Duration,
	}
	tone := ToneAnalysis{
		PositiveCount:    counts.Positive,
		NegativeCount:    counts.Negative,
		FormalCount:      counts.Formal,
		ContractionCount: counts.Contractions,
		SpikeCount:       features.SpikeCount,
		WindowCount:      features.WindowCount,
	}
	confidence := ConfidenceAnalysis{
		HedgingCount:      counts.Hedging,
		WeakOpenerCount:   counts.WeakOpeners,
		ApologeticCount:   counts.Apologetic,
		AssertiveCount:    counts.Assertive,
		QuestionWordCount: counts.QuestionWords,
		WordCount:         counts.WordCount,
		AverageRMS:        features.AverageRMS,
		RMSStdDev:         features.RMSStdDev,
		HasAudio:          hasAudio,
	}

	scores := NewFeedbackScores(
		clarity.Score(profile),
		pacing.Score(profile),
		tone.Score(profile),
		confidence.Score(profile),
		profile.Weights,
	)

	return Result{
		Scores:     scores,
		Clarity:    clarity,
		Pacing:     pacing,
		Tone:       tone,
		Confidence: confidence,
		Features:   features,
		Measurements: Measurements{
			SegmentsPerMinute: features.VoicedSegmentsPerMinute,
			AverageLevel:      features.AverageRMS,
			SilenceRatio:      features.SilenceRatio,
			VolumeStability:   features.RMSStdDev,
			WordsPerMinute:    wordsPerMinute,
		},
	}
}

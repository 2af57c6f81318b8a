package scoring

import (
	"testing"

	"github.com/rehearseiq/feedback-engine/internal/audio"
	"github.com/rehearseiq/feedback-engine/internal/lexicon"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

func newTestEngine() *Engine {
	return NewEngine(lexicon.DefaultPhrases(), 0.1)
}

func TestEngine_ZeroMetricsDeterministic(t *testing.T) {
	engine := newTestEngine()
	profile := BuildProfile(ScenarioBoundaries, nil, ToneGentle)
	empty := audio.NewMetrics(nil, nil, 0)

	first := engine.Score(empty, nil, profile)
	second := engine.Score(empty, nil, profile)

	if first.Scores != second.Scores {
		t.Errorf("Expected reproducible scores, got %+v then %+v", first.Scores, second.Scores)
	}
	for _, score := range []int{first.Scores.Clarity, first.Scores.Pacing, first.Scores.Tone, first.Scores.Confidence} {
		if score < 0 || score > 100 {
			t.Errorf("Score out of range for empty input: %d", score)
		}
	}
}

func TestEngine_AlternatingSpeechAndPause(t *testing.T) {
	engine := newTestEngine()
	profile := BuildProfile(ScenarioDifficult, nil, ToneDirect)

	// 120 samples alternating speech and silence over 12 seconds
	rms := make([]float64, 120)
	for i := range rms {
		if i%2 == 0 {
			rms[i] = 0.4
		} else {
			rms[i] = 0.002
		}
	}
	metrics := audio.NewMetrics(rms, rms, 12)

	result := engine.Score(metrics, nil, profile)

	if result.Features.PauseCount == 0 {
		t.Error("Expected pauses detected in alternating signal")
	}
	if result.Features.VoicedSegmentsPerMinute <= 0 {
		t.Error("Expected positive voiced segment rate")
	}
	if result.Scores.Pacing < 40 || result.Scores.Pacing > 100 {
		t.Errorf("Expected non-degenerate pacing score, got %d", result.Scores.Pacing)
	}
	if result.Scores.Tone < 40 || result.Scores.Tone > 100 {
		t.Errorf("Expected non-degenerate tone score, got %d", result.Scores.Tone)
	}
}

func TestEngine_QuietWindowsAboveNoiseFloorStayVoiced(t *testing.T) {
	engine := newTestEngine()
	profile := DefaultProfile()

	// 0.02 sits above the 0.01 noise floor, so an alternation against it is
	// one continuous voiced run: no pauses, zero silence ratio, and a single
	// voiced segment across the recording
	rms := make([]float64, 120)
	for i := range rms {
		if i%2 == 0 {
			rms[i] = 0.4
		} else {
			rms[i] = 0.02
		}
	}
	metrics := audio.NewMetrics(rms, rms, 12)

	result := engine.Score(metrics, nil, profile)

	if result.Features.PauseCount != 0 {
		t.Errorf("Expected no pauses above the noise floor, got %d", result.Features.PauseCount)
	}
	if result.Features.SilenceRatio != 0 {
		t.Errorf("Expected zero silence ratio, got %f", result.Features.SilenceRatio)
	}
	if result.Features.VoicedSegmentsPerMinute != 5 {
		t.Errorf("Expected 5 seg/min for one run over 12s, got %f", result.Features.VoicedSegmentsPerMinute)
	}
	// 5 seg/min is 5 below the slow mark: base 75 minus 5
	if result.Scores.Pacing != 70 {
		t.Errorf("Expected pacing 70, got %d", result.Scores.Pacing)
	}
	if result.Scores.Tone != profile.Nlp.ToneBase {
		t.Errorf("Expected tone base %d without spikes or transcript, got %d",
			profile.Nlp.ToneBase, result.Scores.Tone)
	}
}

func TestEngine_TranscriptDrivesLexicalCounts(t *testing.T) {
	engine := newTestEngine()
	profile := BuildProfile(ScenarioCareer, nil, ToneDirect)

	rms := make([]float64, 600)
	for i := range rms {
		rms[i] = 0.3
	}
	metrics := audio.NewMetrics(rms, rms, 60)

	transcript := &stt.TranscriptionResult{
		Text: "um i think maybe we should um possibly wait",
		Segments: []stt.TranscriptSegment{
			{Text: "um i think maybe we should um possibly wait", Timestamp: 0, Duration: 60, Confidence: 0.9},
		},
	}

	result := engine.Score(metrics, transcript, profile)

	if result.Clarity.FillerCount != 2 {
		t.Errorf("Expected 2 fillers, got %d", result.Clarity.FillerCount)
	}
	if result.Confidence.HedgingCount != 3 {
		t.Errorf("Expected 3 hedges (i think, maybe, possibly), got %d", result.Confidence.HedgingCount)
	}
	if result.Pacing.WordsPerMinute != 9 {
		t.Errorf("Expected 9 WPM for 9 words over a minute, got %f", result.Pacing.WordsPerMinute)
	}

	// Fewer hedges with the same profile never scores lower
	cleaner := &stt.TranscriptionResult{Text: "we should wait", Segments: transcript.Segments}
	cleanResult := engine.Score(metrics, cleaner, profile)
	if cleanResult.Scores.Confidence < result.Scores.Confidence {
		t.Errorf("Expected cleaner transcript to score at least as high: %d vs %d",
			cleanResult.Scores.Confidence, result.Scores.Confidence)
	}
}

func TestEngine_LowConfidenceSegmentsCounted(t *testing.T) {
	engine := newTestEngine()
	profile := BuildProfile(ScenarioCareer, nil, ToneDirect)

	transcript := &stt.TranscriptionResult{
		Text: "hello there everyone",
		Segments: []stt.TranscriptSegment{
			{Text: "hello", Confidence: 0.9},
			{Text: "there", Confidence: 0.3},
			{Text: "everyone", Confidence: 0.4},
		},
	}

	result := engine.Score(audio.NewMetrics(nil, nil, 0), transcript, profile)
	if result.Clarity.LowConfidenceSegments != 2 {
		t.Errorf("Expected 2 low-confidence segments, got %d", result.Clarity.LowConfidenceSegments)
	}
}

func TestEngine_MissingTranscriptNeutralLexicalCounts(t *testing.T) {
	engine := newTestEngine()
	profile := BuildProfile(ScenarioBoundaries, nil, ToneGentle)

	rms := make([]float64, 300)
	for i := range rms {
		rms[i] = 0.3
	}
	metrics := audio.NewMetrics(rms, rms, 30)

	result := engine.Score(metrics, nil, profile)

	if result.Clarity.FillerCount != 0 || result.Confidence.HedgingCount != 0 {
		t.Error("Expected zero lexical counts without transcript")
	}
	if result.Pacing.WordsPerMinute != 0 {
		t.Errorf("Expected 0 WPM without transcript, got %f", result.Pacing.WordsPerMinute)
	}
	// Clarity falls back to its base minus any audio adjustments
	if result.Scores.Clarity != profile.Nlp.ClarityBase {
		t.Errorf("Expected clarity base %d for clean audio-only session, got %d",
			profile.Nlp.ClarityBase, result.Scores.Clarity)
	}
}

func TestEngine_MeasurementsMatchFeatures(t *testing.T) {
	engine := newTestEngine()
	profile := DefaultProfile()

	rms := []float64{0.3, 0.002, 0.3, 0.002, 0.3}
	metrics := audio.NewMetrics(rms, rms, 10)

	result := engine.Score(metrics, nil, profile)

	if result.Measurements.AverageLevel != result.Features.AverageRMS {
		t.Error("Expected measurements to mirror features")
	}
	if result.Measurements.SegmentsPerMinute != result.Features.VoicedSegmentsPerMinute {
		t.Error("Expected segment rates to match")
	}
	if result.Measurements.VolumeStability != result.Features.RMSStdDev {
		t.Error("Expected volume stability to mirror std dev")
	}
}

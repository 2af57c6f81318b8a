package scoring

import "math"

// AudioThresholds governs how raw audio features are judged. The pacing band
// here is in voiced segments per minute; the lexical WPM band lives in
// NlpThresholds.
type AudioThresholds struct {
	NoiseFloor            float64 `json:"noise_floor"`
	SpikeStdDevMultiplier float64 `json:"spike_std_dev_multiplier"`

	SegmentsPerMinuteSlow        float64 `json:"segments_per_minute_slow"`
	SegmentsPerMinuteOptimalLow  float64 `json:"segments_per_minute_optimal_low"`
	SegmentsPerMinuteOptimalHigh float64 `json:"segments_per_minute_optimal_high"`
	SegmentsPerMinuteFast        float64 `json:"segments_per_minute_fast"`

	AverageLevelMinimum float64 `json:"average_level_minimum"`
	SilenceRatioMax     float64 `json:"silence_ratio_max"`
}

// NlpThresholds holds the per-dimension base scores, penalty rates, penalty
// caps, and bonus thresholds for the lexical side of scoring.
type NlpThresholds struct {
	// Clarity
	ClarityBase              int     `json:"clarity_base"`
	FillerPenalty            int     `json:"filler_penalty"`
	FillerPenaltyMax         int     `json:"filler_penalty_max"`
	RepeatedPenalty          int     `json:"repeated_penalty"`
	RepeatedPenaltyMax       int     `json:"repeated_penalty_max"`
	IncompletePenalty        int     `json:"incomplete_penalty"`
	IncompletePenaltyMax     int     `json:"incomplete_penalty_max"`
	LowConfidencePenalty     int     `json:"low_confidence_penalty"`
	LowConfidencePenaltyMax  int     `json:"low_confidence_penalty_max"`
	LowConfidenceThreshold   float64 `json:"low_confidence_threshold"`
	WordLengthBonusThreshold float64 `json:"word_length_bonus_threshold"`
	WordLengthBonus          int     `json:"word_length_bonus"`

	// Pacing
	PacingBase               int     `json:"pacing_base"`
	OptimalWPMLow            float64 `json:"optimal_wpm_low"`
	OptimalWPMHigh           float64 `json:"optimal_wpm_high"`
	WPMPenaltyDivisor        float64 `json:"wpm_penalty_divisor"`
	SegmentsPenaltyDivisor   float64 `json:"segments_penalty_divisor"`
	RatePenaltyMax           int     `json:"rate_penalty_max"`
	OptimalPacingBonus       int     `json:"optimal_pacing_bonus"`
	NoPauseDurationThreshold float64 `json:"no_pause_duration_threshold"`
	NoPausePenalty           int     `json:"no_pause_penalty"`
	LongPauseCountThreshold  int     `json:"long_pause_count_threshold"`
	LongPausePenalty         int     `json:"long_pause_penalty"`
	IntentionalPauseBonus    int     `json:"intentional_pause_bonus"`

	// Confidence
	ConfidenceBase         int     `json:"confidence_base"`
	HedgingPenalty         int     `json:"hedging_penalty"`
	HedgingPenaltyMax      int     `json:"hedging_penalty_max"`
	WeakOpenerPenalty      int     `json:"weak_opener_penalty"`
	WeakOpenerPenaltyMax   int     `json:"weak_opener_penalty_max"`
	ApologeticPenalty      int     `json:"apologetic_penalty"`
	ApologeticPenaltyMax   int     `json:"apologetic_penalty_max"`
	AssertiveBonus         int     `json:"assertive_bonus"`
	AssertiveBonusMax      int     `json:"assertive_bonus_max"`
	QuestionRatioThreshold float64 `json:"question_ratio_threshold"`
	QuestionRatioPenalty   int     `json:"question_ratio_penalty"`

	// Tone
	ToneBase                int     `json:"tone_base"`
	SentimentMultiplier     float64 `json:"sentiment_multiplier"`
	EmotionBalanceThreshold int     `json:"emotion_balance_threshold"`
	EmotionBalanceBonus     int     `json:"emotion_balance_bonus"`
	FormalRangeMin          int     `json:"formal_range_min"`
	FormalRangeMax          int     `json:"formal_range_max"`
	FormalBonus             int     `json:"formal_bonus"`
	FormalExcessThreshold   int     `json:"formal_excess_threshold"`
	FormalExcessPenalty     int     `json:"formal_excess_penalty"`
	ContractionRangeMin     int     `json:"contraction_range_min"`
	ContractionRangeMax     int     `json:"contraction_range_max"`
	ContractionBonus        int     `json:"contraction_bonus"`
}

// ScoreTuning holds the audio-signal score adjustments that keep scoring
// meaningful when no transcript is available.
type ScoreTuning struct {
	QuietVoicePenalty     int     `json:"quiet_voice_penalty"`
	SteadyVolumeBonus     int     `json:"steady_volume_bonus"`
	SteadyVolumeStdDevMax float64 `json:"steady_volume_std_dev_max"`
	HighSilencePenalty    int     `json:"high_silence_penalty"`
	SpikeRatioThreshold   float64 `json:"spike_ratio_threshold"`
	SpikePenalty          int     `json:"spike_penalty"`
}

// ScoreWeights are per-dimension multipliers used for strength/weakness
// selection and weighted aggregation, never for the raw 0-100 scores.
type ScoreWeights struct {
	Clarity    float64 `json:"clarity"`
	Pacing     float64 `json:"pacing"`
	Tone       float64 `json:"tone"`
	Confidence float64 `json:"confidence"`
}

// Multiply composes two weight sets multiplicatively
func (w ScoreWeights) Multiply(other ScoreWeights) ScoreWeights {
	return ScoreWeights{
		Clarity:    w.Clarity * other.Clarity,
		Pacing:     w.Pacing * other.Pacing,
		Tone:       w.Tone * other.Tone,
		Confidence: w.Confidence * other.Confidence,
	}
}

// Profile is the full set of thresholds and weights governing one scoring
// pass. Profiles are value objects: built fresh per pass, never mutated.
type Profile struct {
	Audio   AudioThresholds `json:"audio"`
	Nlp     NlpThresholds   `json:"nlp"`
	Tuning  ScoreTuning     `json:"tuning"`
	Weights ScoreWeights    `json:"weights"`
}

// DefaultProfile returns the base threshold and weight tables
func DefaultProfile() Profile {
	return Profile{
		Audio: AudioThresholds{
			NoiseFloor:            0.01,
			SpikeStdDevMultiplier: 2.0,

			SegmentsPerMinuteSlow:        10,
			SegmentsPerMinuteOptimalLow:  15,
			SegmentsPerMinuteOptimalHigh: 35,
			SegmentsPerMinuteFast:        45,

			AverageLevelMinimum: 0.15,
			SilenceRatioMax:     0.45,
		},
		Nlp: NlpThresholds{
			ClarityBase:              80,
			FillerPenalty:            3,
			FillerPenaltyMax:         30,
			RepeatedPenalty:          2,
			RepeatedPenaltyMax:       10,
			IncompletePenalty:        3,
			IncompletePenaltyMax:     12,
			LowConfidencePenalty:     2,
			LowConfidencePenaltyMax:  10,
			LowConfidenceThreshold:   0.5,
			WordLengthBonusThreshold: 4.5,
			WordLengthBonus:          5,

			PacingBase:               75,
			OptimalWPMLow:            120,
			OptimalWPMHigh:           160,
			WPMPenaltyDivisor:        4,
			SegmentsPenaltyDivisor:   1,
			RatePenaltyMax:           20,
			OptimalPacingBonus:       10,
			NoPauseDurationThreshold: 30,
			NoPausePenalty:           8,
			LongPauseCountThreshold:  3,
			LongPausePenalty:         3,
			IntentionalPauseBonus:    5,

			ConfidenceBase:         75,
			HedgingPenalty:         4,
			HedgingPenaltyMax:      20,
			WeakOpenerPenalty:      5,
			WeakOpenerPenaltyMax:   15,
			ApologeticPenalty:      4,
			ApologeticPenaltyMax:   12,
			AssertiveBonus:         3,
			AssertiveBonusMax:      15,
			QuestionRatioThreshold: 0.15,
			QuestionRatioPenalty:   8,

			ToneBase:                70,
			SentimentMultiplier:     20,
			EmotionBalanceThreshold: 2,
			EmotionBalanceBonus:     4,
			FormalRangeMin:          1,
			FormalRangeMax:          3,
			FormalBonus:             5,
			FormalExcessThreshold:   6,
			FormalExcessPenalty:     5,
			ContractionRangeMin:     2,
			ContractionRangeMax:     10,
			ContractionBonus:        3,
		},
		Tuning: ScoreTuning{
			QuietVoicePenalty:     8,
			SteadyVolumeBonus:     5,
			SteadyVolumeStdDevMax: 0.08,
			HighSilencePenalty:    6,
			SpikeRatioThreshold:   0.1,
			SpikePenalty:          4,
		},
		Weights: ScoreWeights{Clarity: 1, Pacing: 1, Tone: 1, Confidence: 1},
	}
}

// Scenario selects the conversation-type weight table
type Scenario string

const (
	ScenarioBoundaries    Scenario = "boundaries"
	ScenarioCareer        Scenario = "career"
	ScenarioRelationships Scenario = "relationships"
	ScenarioDifficult     Scenario = "difficult"
)

// Valid reports whether the scenario is one of the closed set
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioBoundaries, ScenarioCareer, ScenarioRelationships, ScenarioDifficult:
		return true
	}
	return false
}

// Weights returns the per-category dimension multipliers. Unknown scenarios
// fall back to neutral weights.
func (s Scenario) Weights() ScoreWeights {
	switch s {
	case ScenarioBoundaries:
		return ScoreWeights{Clarity: 1.10, Pacing: 0.90, Tone: 1.00, Confidence: 1.20}
	case ScenarioCareer:
		return ScoreWeights{Clarity: 1.20, Pacing: 1.00, Tone: 0.90, Confidence: 1.10}
	case ScenarioRelationships:
		return ScoreWeights{Clarity: 0.90, Pacing: 1.00, Tone: 1.25, Confidence: 0.95}
	case ScenarioDifficult:
		return ScoreWeights{Clarity: 1.00, Pacing: 1.10, Tone: 1.15, Confidence: 1.05}
	default:
		return ScoreWeights{Clarity: 1, Pacing: 1, Tone: 1, Confidence: 1}
	}
}

// CoachTone is the coaching style bias applied on top of scenario weights
type CoachTone string

const (
	ToneGentle    CoachTone = "gentle"
	ToneDirect    CoachTone = "direct"
	ToneExecutive CoachTone = "executive"
)

// Valid reports whether the coach tone is one of the closed set
func (t CoachTone) Valid() bool {
	switch t {
	case ToneGentle, ToneDirect, ToneExecutive:
		return true
	}
	return false
}

// Bias returns the fixed weight multipliers for the coaching style. The bias
// never changes penalty or bonus magnitudes, only relative weighting.
func (t CoachTone) Bias() ScoreWeights {
	switch t {
	case ToneGentle:
		return ScoreWeights{Clarity: 0.95, Pacing: 1.00, Tone: 1.15, Confidence: 0.90}
	case ToneDirect:
		return ScoreWeights{Clarity: 1.10, Pacing: 1.00, Tone: 0.90, Confidence: 1.10}
	case ToneExecutive:
		return ScoreWeights{Clarity: 1.05, Pacing: 1.10, Tone: 0.95, Confidence: 1.15}
	default:
		return ScoreWeights{Clarity: 1, Pacing: 1, Tone: 1, Confidence: 1}
	}
}

// BaselineMetrics are rolling averages over a user's recent sessions for one
// scenario. Every field is independently optional; absent fields leave the
// corresponding thresholds untouched. Baselines shift thresholds only, never
// raw measurements.
type BaselineMetrics struct {
	SegmentsPerMinute *float64 `json:"segments_per_minute,omitempty"`
	AverageLevel      *float64 `json:"average_level,omitempty"`
	SilenceRatio      *float64 `json:"silence_ratio,omitempty"`
	VolumeStability   *float64 `json:"volume_stability,omitempty"`
	WordsPerMinute    *float64 `json:"words_per_minute,omitempty"`
}

// Personalization bounds. Whatever the baseline says, the adjusted thresholds
// never leave these ranges.
const (
	baselineBandShiftFactor = 0.25
	segmentsPerMinuteFloor  = 6.0
	segmentsPerMinuteCeil   = 60.0
	averageLevelFloor       = 0.05
	levelBaselineFactor     = 0.6
	silenceRatioCeil        = 0.7
	silenceBaselineMargin   = 0.1
)

// BuildProfile composes the scoring profile for one pass: default tables,
// scenario weight table, coach tone bias, then bounded baseline
// personalization. The result is a fresh value; nothing shared is mutated.
func BuildProfile(scenario Scenario, baseline *BaselineMetrics, tone CoachTone) Profile {
	profile := DefaultProfile()
	profile.Weights = scenario.Weights().Multiply(tone.Bias())

	if baseline == nil {
		return profile
	}

	a := profile.Audio
	if baseline.SegmentsPerMinute != nil {
		midpoint := (a.SegmentsPerMinuteOptimalLow + a.SegmentsPerMinuteOptimalHigh) / 2
		shift := baselineBandShiftFactor * (*baseline.SegmentsPerMinute - midpoint)
		a.SegmentsPerMinuteSlow += shift
		a.SegmentsPerMinuteOptimalLow += shift
		a.SegmentsPerMinuteOptimalHigh += shift
		a.SegmentsPerMinuteFast += shift
		a.SegmentsPerMinuteSlow = math.Max(segmentsPerMinuteFloor, a.SegmentsPerMinuteSlow)
		a.SegmentsPerMinuteFast = math.Min(segmentsPerMinuteCeil, a.SegmentsPerMinuteFast)
	}
	if baseline.AverageLevel != nil {
		a.AverageLevelMinimum = math.Max(averageLevelFloor,
			math.Min(a.AverageLevelMinimum, *baseline.AverageLevel*levelBaselineFactor))
	}
	if baseline.SilenceRatio != nil {
		a.SilenceRatioMax = math.Min(silenceRatioCeil,
			math.Max(a.SilenceRatioMax, *baseline.SilenceRatio+silenceBaselineMargin))
	}
	profile.Audio = a

	return profile
}

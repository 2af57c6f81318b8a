package scoring

import (
	"math"

	"github.com/rehearseiq/feedback-engine/internal/audio"
)

// The analyses are immutable value objects holding raw counts and
// measurements. Each exposes a pure Score method over a profile; every final
// score clamps to [0, 100], and every division guards its denominator so no
// input can make scoring fail.

// ClarityAnalysis holds the raw inputs to the clarity score
type ClarityAnalysis struct {
	FillerCount           int     `json:"filler_count"`
	RepeatedCount         int     `json:"repeated_count"`
	IncompleteCount       int     `json:"incomplete_count"`
	LowConfidenceSegments int     `json:"low_confidence_segments"`
	AverageWordLength     float64 `json:"average_word_length"`
	SilenceRatio          float64 `json:"silence_ratio"`
	HasAudio              bool    `json:"has_audio"`
}

// Score computes the clarity score: base minus independently capped penalties
// for fillers, repeats, incomplete sentences, and low-confidence recognition,
// plus a vocabulary bonus for longer average word length.
func (a ClarityAnalysis) Score(p Profile) int {
	score := p.Nlp.ClarityBase
	score -= cappedPenalty(a.FillerCount, p.Nlp.FillerPenalty, p.Nlp.FillerPenaltyMax)
	score -= cappedPenalty(a.RepeatedCount, p.Nlp.RepeatedPenalty, p.Nlp.RepeatedPenaltyMax)
	score -= cappedPenalty(a.IncompleteCount, p.Nlp.IncompletePenalty, p.Nlp.IncompletePenaltyMax)
	score -= cappedPenalty(a.LowConfidenceSegments, p.Nlp.LowConfidencePenalty, p.Nlp.LowConfidencePenaltyMax)
	if a.AverageWordLength > p.Nlp.WordLengthBonusThreshold {
		score += p.Nlp.WordLengthBonus
	}
	if a.HasAudio && a.SilenceRatio > p.Audio.SilenceRatioMax {
		score -= p.Tuning.HighSilencePenalty
	}
	return clampScore(score)
}

// PacingAnalysis holds the raw inputs to the pacing score
type PacingAnalysis struct {
	WordsPerMinute          float64            `json:"words_per_minute"`
	VoicedSegmentsPerMinute float64            `json:"voiced_segments_per_minute"`
	Pauses                  audio.PauseBuckets `json:"pauses"`
	PauseCount              int                `json:"pause_count"`
	Duration                float64            `json:"duration_seconds"`
}

// Score computes the pacing score. The speech-rate branch uses words per
// minute when a transcript exists and falls back to the voiced-segment rate
// otherwise; a zero rate is neutral. The fallback judges the rate against all
// four band thresholds: penalties start past the slow and fast marks, the
// optimal band earns the bonus, and the gaps between stay neutral. Pause
// structure adjusts independently: no pauses across a long recording reads as
// rushing, too many long pauses penalize, and a dominance of medium pauses
// earns an intentional-pausing bonus.
func (a PacingAnalysis) Score(p Profile) int {
	score := p.Nlp.PacingBase

	if a.WordsPerMinute > 0 {
		score += rateAdjustment(a.WordsPerMinute,
			p.Nlp.OptimalWPMLow, p.Nlp.OptimalWPMHigh,
			p.Nlp.WPMPenaltyDivisor, p.Nlp.RatePenaltyMax, p.Nlp.OptimalPacingBonus)
	} else if a.VoicedSegmentsPerMinute > 0 {
		score += segmentRateAdjustment(a.VoicedSegmentsPerMinute, p.Audio, p.Nlp)
	}

	if a.PauseCount == 0 && a.Duration > p.Nlp.NoPauseDurationThreshold {
		score -= p.Nlp.NoPausePenalty
	}
	if a.Pauses.Long > p.Nlp.LongPauseCountThreshold {
		score -= (a.Pauses.Long - p.Nlp.LongPauseCountThreshold) * p.Nlp.LongPausePenalty
	}
	if a.Pauses.Medium > a.Pauses.Short && a.Pauses.Medium > a.Pauses.Long {
		score += p.Nlp.IntentionalPauseBonus
	}

	return clampScore(score)
}

// rateAdjustment penalizes rates outside the optimal band proportionally,
// capped like every other adjustment, and rewards rates inside it with a
// flat bonus
func rateAdjustment(rate, low, high, divisor float64, penaltyMax, bonus int) int {
	switch {
	case rate < low:
		return -cappedPenalty(int(math.Round((low-rate)/divisor)), 1, penaltyMax)
	case rate > high:
		return -cappedPenalty(int(math.Round((rate-high)/divisor)), 1, penaltyMax)
	default:
		return bonus
	}
}

// segmentRateAdjustment judges a voiced-segment rate against the full band:
// below slow or above fast penalizes proportionally from that mark, the
// optimal band earns the bonus, and rates in between are neutral
func segmentRateAdjustment(rate float64, bands AudioThresholds, nlp NlpThresholds) int {
	switch {
	case rate < bands.SegmentsPerMinuteSlow:
		return -cappedPenalty(int(math.Round((bands.SegmentsPerMinuteSlow-rate)/nlp.SegmentsPenaltyDivisor)),
			1, nlp.RatePenaltyMax)
	case rate > bands.SegmentsPerMinuteFast:
		return -cappedPenalty(int(math.Round((rate-bands.SegmentsPerMinuteFast)/nlp.SegmentsPenaltyDivisor)),
			1, nlp.RatePenaltyMax)
	case rate >= bands.SegmentsPerMinuteOptimalLow && rate <= bands.SegmentsPerMinuteOptimalHigh:
		return nlp.OptimalPacingBonus
	default:
		return 0
	}
}

// ConfidenceAnalysis holds the raw inputs to the confidence score
type ConfidenceAnalysis struct {
	HedgingCount      int     `json:"hedging_count"`
	WeakOpenerCount   int     `json:"weak_opener_count"`
	ApologeticCount   int     `json:"apologetic_count"`
	AssertiveCount    int     `json:"assertive_count"`
	QuestionWordCount int     `json:"question_word_count"`
	WordCount         int     `json:"word_count"`
	AverageRMS        float64 `json:"average_rms"`
	RMSStdDev         float64 `json:"rms_std_dev"`
	HasAudio          bool    `json:"has_audio"`
}

// Score computes the confidence score: base minus capped hedging, weak-opener,
// and apologetic penalties, plus a capped assertive bonus. A high ratio of
// question words reads as uncertainty. Voice level contributes when audio is
// present: too quiet penalizes, a steady adequate level earns a bonus.
func (a ConfidenceAnalysis) Score(p Profile) int {
	score := p.Nlp.ConfidenceBase
	score -= cappedPenalty(a.HedgingCount, p.Nlp.HedgingPenalty, p.Nlp.HedgingPenaltyMax)
	score -= cappedPenalty(a.WeakOpenerCount, p.Nlp.WeakOpenerPenalty, p.Nlp.WeakOpenerPenaltyMax)
	score -= cappedPenalty(a.ApologeticCount, p.Nlp.ApologeticPenalty, p.Nlp.ApologeticPenaltyMax)
	score += cappedPenalty(a.AssertiveCount, p.Nlp.AssertiveBonus, p.Nlp.AssertiveBonusMax)

	if a.WordCount > 0 {
		ratio := float64(a.QuestionWordCount) / float64(a.WordCount)
		if ratio > p.Nlp.QuestionRatioThreshold {
			score -= p.Nlp.QuestionRatioPenalty
		}
	}

	if a.HasAudio {
		if a.AverageRMS < p.Audio.AverageLevelMinimum {
			score -= p.Tuning.QuietVoicePenalty
		} else if a.RMSStdDev < p.Tuning.SteadyVolumeStdDevMax {
			score += p.Tuning.SteadyVolumeBonus
		}
	}

	return clampScore(score)
}

// ToneAnalysis holds the raw inputs to the tone score
type ToneAnalysis struct {
	PositiveCount    int `json:"positive_count"`
	NegativeCount    int `json:"negative_count"`
	FormalCount      int `json:"formal_count"`
	ContractionCount int `json:"contraction_count"`
	SpikeCount       int `json:"spike_count"`
	WindowCount      int `json:"window_count"`
}

// SentimentScore returns the word-level sentiment in [-1, 1], 0 when no
// sentiment words were found
func (a ToneAnalysis) SentimentScore() float64 {
	total := a.PositiveCount + a.NegativeCount
	if total == 0 {
		return 0
	}
	return float64(a.PositiveCount-a.NegativeCount) / float64(total)
}

// Score computes the tone score: base plus scaled sentiment, an emotion
// balance adjustment on the positive/negative word gap, a formality bonus or
// excess penalty, and a conversational-register contraction bonus. Frequent
// volume spikes penalize.
func (a ToneAnalysis) Score(p Profile) int {
	score := p.Nlp.ToneBase
	score += int(math.Round(a.SentimentScore() * p.Nlp.SentimentMultiplier))

	diff := a.PositiveCount - a.NegativeCount
	if diff > p.Nlp.EmotionBalanceThreshold {
		score += p.Nlp.EmotionBalanceBonus
	} else if diff < -p.Nlp.EmotionBalanceThreshold {
		score -= p.Nlp.EmotionBalanceBonus
	}

	if a.FormalCount >= p.Nlp.FormalRangeMin && a.FormalCount <= p.Nlp.FormalRangeMax {
		score += p.Nlp.FormalBonus
	} else if a.FormalCount > p.Nlp.FormalExcessThreshold {
		score -= p.Nlp.FormalExcessPenalty
	}

	if a.ContractionCount >= p.Nlp.ContractionRangeMin && a.ContractionCount <= p.Nlp.ContractionRangeMax {
		score += p.Nlp.ContractionBonus
	}

	if a.WindowCount > 0 {
		spikeRatio := float64(a.SpikeCount) / float64(a.WindowCount)
		if spikeRatio > p.Tuning.SpikeRatioThreshold {
			score -= p.Tuning.SpikePenalty
		}
	}

	return clampScore(score)
}

// cappedPenalty multiplies a count by a per-unit amount and caps the total.
// Negative counts from misbehaving upstreams clamp to zero.
func cappedPenalty(count, perUnit, max int) int {
	if count < 0 {
		count = 0
	}
	total := count * perUnit
	if total > max {
		return max
	}
	return total
}

// clampScore clamps a computed score to [0, 100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

package scoring

// Dimension names one of the four delivery dimensions. Enumeration order is
// fixed: clarity, pacing, tone, confidence. Ties in strength/weakness
// selection resolve to the first dimension in this order.
type Dimension string

const (
	DimClarity    Dimension = "clarity"
	DimPacing     Dimension = "pacing"
	DimTone       Dimension = "tone"
	DimConfidence Dimension = "confidence"
)

// Dimensions lists the four dimensions in enumeration order
func Dimensions() []Dimension {
	return []Dimension{DimClarity, DimPacing, DimTone, DimConfidence}
}

// Tier buckets the overall score
type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGood       Tier = "good"
	TierDeveloping Tier = "developing"
	TierNeedsWork  Tier = "needsWork"
)

// FeedbackScores is the persisted scoring artifact: four 0-100 dimension
// scores plus derived fields. Immutable; one instance per completed session.
type FeedbackScores struct {
	Clarity    int `json:"clarity"`
	Pacing     int `json:"pacing"`
	Tone       int `json:"tone"`
	Confidence int `json:"confidence"`

	Overall int  `json:"overall"`
	Tier    Tier `json:"tier"`

	PrimaryStrength  Dimension `json:"primary_strength"`
	PrimaryWeakness  Dimension `json:"primary_weakness"`
	WeightedStrength Dimension `json:"weighted_strength"`
	WeightedWeakness Dimension `json:"weighted_weakness"`
}

// NewFeedbackScores aggregates the four dimension scores. Overall is the
// integer-floor average; strengths and weaknesses are argmax/argmin over raw
// scores and weight-adjusted scores, first-in-order winning ties.
func NewFeedbackScores(clarity, pacing, tone, confidence int, weights ScoreWeights) FeedbackScores {
	fs := FeedbackScores{
		Clarity:    clampScore(clarity),
		Pacing:     clampScore(pacing),
		Tone:       clampScore(tone),
		Confidence: clampScore(confidence),
	}
	fs.Overall = (fs.Clarity + fs.Pacing + fs.Tone + fs.Confidence) / 4
	fs.Tier = tierFor(fs.Overall)

	raw := fs.dimensionValues(ScoreWeights{Clarity: 1, Pacing: 1, Tone: 1, Confidence: 1})
	fs.PrimaryStrength = argBest(raw, true)
	fs.PrimaryWeakness = argBest(raw, false)

	weighted := fs.dimensionValues(weights)
	fs.WeightedStrength = argBest(weighted, true)
	fs.WeightedWeakness = argBest(weighted, false)

	return fs
}

// Score returns the raw score for one dimension
func (fs FeedbackScores) Score(d Dimension) int {
	switch d {
	case DimClarity:
		return fs.Clarity
	case DimPacing:
		return fs.Pacing
	case DimTone:
		return fs.Tone
	case DimConfidence:
		return fs.Confidence
	}
	return 0
}

func (fs FeedbackScores) dimensionValues(weights ScoreWeights) []float64 {
	return []float64{
		float64(fs.Clarity) * weights.Clarity,
		float64(fs.Pacing) * weights.Pacing,
		float64(fs.Tone) * weights.Tone,
		float64(fs.Confidence) * weights.Confidence,
	}
}

// argBest picks the max (or min) value's dimension; strict comparison keeps
// the first dimension on ties
func argBest(values []float64, max bool) Dimension {
	dims := Dimensions()
	best := 0
	for i := 1; i < len(values); i++ {
		if max && values[i] > values[best] {
			best = i
		}
		if !max && values[i] < values[best] {
			best = i
		}
	}
	return dims[best]
}

func tierFor(overall int) Tier {
	switch {
	case overall >= 85:
		return TierExcellent
	case overall >= 70:
		return TierGood
	case overall >= 55:
		return TierDeveloping
	default:
		return TierNeedsWork
	}
}

// ScoreDelta is the pairwise difference between two FeedbackScores (current
// minus previous). Derived for trend display, never stored.
type ScoreDelta struct {
	Clarity    int `json:"clarity"`
	Pacing     int `json:"pacing"`
	Tone       int `json:"tone"`
	Confidence int `json:"confidence"`
	Overall    int `json:"overall"`
}

// Delta computes current minus previous
func Delta(current, previous FeedbackScores) ScoreDelta {
	return ScoreDelta{
		Clarity:    current.Clarity - previous.Clarity,
		Pacing:     current.Pacing - previous.Pacing,
		Tone:       current.Tone - previous.Tone,
		Confidence: current.Confidence - previous.Confidence,
		Overall:    current.Overall - previous.Overall,
	}
}

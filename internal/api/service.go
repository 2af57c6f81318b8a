package api

import (
	"fmt"
	"time"

	"github.com/rehearseiq/feedback-engine/internal/audio"
	"github.com/rehearseiq/feedback-engine/internal/config"
	"github.com/rehearseiq/feedback-engine/internal/history"
	"github.com/rehearseiq/feedback-engine/internal/observability"
	"github.com/rehearseiq/feedback-engine/internal/scoring"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

// MetricsPayload is the wire form of a finished recording's audio metrics
type MetricsPayload struct {
	RMSWindows      []float64 `json:"rms_windows"`
	PeakWindows     []float64 `json:"peak_windows"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// ScoreRequest is one scoring invocation
type ScoreRequest struct {
	SessionID  string                   `json:"session_id,omitempty"`
	Scenario   scoring.Scenario         `json:"scenario"`
	CoachTone  scoring.CoachTone        `json:"coach_tone"`
	Metrics    MetricsPayload           `json:"metrics"`
	Transcript *stt.TranscriptionResult `json:"transcript,omitempty"`
}

// ScoreResponse carries the scoring result, the per-dimension analyses for
// raw-count display, and the trend delta against the previous session in the
// same scenario when one exists
type ScoreResponse struct {
	SessionID string              `json:"session_id"`
	Scenario  scoring.Scenario    `json:"scenario"`
	CoachTone scoring.CoachTone   `json:"coach_tone"`
	Baseline  bool                `json:"baseline_applied"`
	Result    scoring.Result      `json:"result"`
	Delta     *scoring.ScoreDelta `json:"delta,omitempty"`
}

// Service runs scoring passes end to end: profile composition, the pure
// scoring pipeline, persistence, and trend deltas
type Service struct {
	cfg    *config.Config
	engine *scoring.Engine
	store  *history.Store
}

// NewService creates the scoring service
func NewService(cfg *config.Config, engine *scoring.Engine, store *history.Store) *Service {
	return &Service{cfg: cfg, engine: engine, store: store}
}

// ScoreSession validates the request, builds the per-pass profile from the
// scenario, coach tone, and the caller's rolling baseline, runs the scoring
// pipeline, and persists the result. Persistence failures are logged but do
// not lose the computed scores.
func (s *Service) ScoreSession(req ScoreRequest) (*ScoreResponse, error) {
	if !req.Scenario.Valid() {
		return nil, fmt.Errorf("unknown scenario %q", req.Scenario)
	}
	if !req.CoachTone.Valid() {
		return nil, fmt.Errorf("unknown coach tone %q", req.CoachTone)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = observability.NewSessionID()
	}
	logger := observability.WithSession(sessionID)

	baseline, err := s.store.Baseline(req.Scenario, s.cfg.BaselineSessions)
	if err != nil {
		logger.Warn().Err(err).Msg("Baseline lookup failed, scoring without personalization")
		observability.RecordError("baseline", "api")
		baseline = nil
	}

	previous, err := s.store.Latest(req.Scenario)
	if err != nil {
		logger.Warn().Err(err).Msg("Previous session lookup failed, omitting delta")
		previous = nil
	}

	metrics := audio.NewMetrics(req.Metrics.RMSWindows, req.Metrics.PeakWindows, req.Metrics.DurationSeconds)
	profile := scoring.BuildProfile(req.Scenario, baseline, req.CoachTone)
	result := s.engine.Score(metrics, req.Transcript, profile)

	sess := history.Session{
		ID:        sessionID,
		Scenario:  req.Scenario,
		CoachTone: req.CoachTone,
		CreatedAt: time.Now().UTC(),
		Duration:  metrics.Duration,
		Scores:    result.Scores,
		Measured:  result.Measurements,
	}
	if err := s.store.Save(sess); err != nil {
		logger.Error().Err(err).Msg("Failed to persist session scores")
		observability.RecordError("persist", "api")
	}

	observability.RecordSessionScored(string(req.Scenario), string(req.CoachTone), metrics.Duration)
	observability.RecordDimensionScore("clarity", result.Scores.Clarity)
	observability.RecordDimensionScore("pacing", result.Scores.Pacing)
	observability.RecordDimensionScore("tone", result.Scores.Tone)
	observability.RecordDimensionScore("confidence", result.Scores.Confidence)

	response := &ScoreResponse{
		SessionID: sessionID,
		Scenario:  req.Scenario,
		CoachTone: req.CoachTone,
		Baseline:  baseline != nil,
		Result:    result,
	}
	if previous != nil {
		delta := scoring.Delta(result.Scores, previous.Scores)
		response.Delta = &delta
	}

	logger.Info().
		Int("overall", result.Scores.Overall).
		Str("tier", string(result.Scores.Tier)).
		Str("scenario", string(req.Scenario)).
		Bool("transcript", req.Transcript != nil).
		Msg("Session scored")

	return response, nil
}

// History returns recent persisted sessions
func (s *Service) History(scenario scoring.Scenario, limit int) ([]history.Session, error) {
	if scenario != "" && !scenario.Valid() {
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
	return s.store.Recent(scenario, limit)
}

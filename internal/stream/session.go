package stream

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rehearseiq/feedback-engine/internal/api"
	"github.com/rehearseiq/feedback-engine/internal/audio"
	"github.com/rehearseiq/feedback-engine/internal/config"
	"github.com/rehearseiq/feedback-engine/internal/observability"
	"github.com/rehearseiq/feedback-engine/internal/scoring"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The rehearsal clients are first-party; tighten this when the
		// app is served from a fixed origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Message is the envelope for both directions of the level stream
type Message struct {
	Event   string             `json:"event"`
	Start   *StartEvent        `json:"start,omitempty"`
	Level   *LevelEvent        `json:"level,omitempty"`
	Stop    *StopEvent         `json:"stop,omitempty"`
	Quality *QualityEvent      `json:"quality,omitempty"`
	Result  *api.ScoreResponse `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// StartEvent opens a recording session
type StartEvent struct {
	SessionID        string            `json:"session_id,omitempty"`
	Scenario         scoring.Scenario  `json:"scenario"`
	CoachTone        scoring.CoachTone `json:"coach_tone"`
	SampleIntervalMs int               `json:"sample_interval_ms,omitempty"`
}

// LevelEvent carries one sampler window
type LevelEvent struct {
	RMS  float64 `json:"rms"`
	Peak float64 `json:"peak"`
}

// StopEvent ends the recording; the client may attach a transcript obtained
// on-device so scoring can run the lexical pass
type StopEvent struct {
	Transcript *stt.TranscriptionResult `json:"transcript,omitempty"`
}

// QualityEvent is pushed to the client when the recording quality state
// changes while the stream is live
type QualityEvent struct {
	Kind string `json:"kind"`
}

// levelSession holds the state of one live recording. All fields are owned
// by the read loop; the connection is never written from another goroutine.
type levelSession struct {
	conn      *websocket.Conn
	cfg       *config.Config
	service   *api.Service
	recorder  *audio.Recorder
	sessionID string
	scenario  scoring.Scenario
	coachTone scoring.CoachTone
	started   bool
	logger    zerolog.Logger
}

// HandleLevelsWS upgrades the connection and runs the level-stream protocol:
// a start event, any number of level events, then a stop event that freezes
// the metrics, scores the session, and replies with the result
func HandleLevelsWS(cfg *config.Config, service *api.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger := observability.GetLogger()
			logger.Error().Err(err).Msg("Failed to upgrade level stream")
			return
		}
		defer conn.Close()

		observability.StreamOpened()
		defer observability.StreamClosed()

		session := &levelSession{
			conn:    conn,
			cfg:     cfg,
			service: service,
			logger:  observability.GetLogger(),
		}
		session.run()
	}
}

func (s *levelSession) run() {
	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("Level stream read error")
			}
			return
		}

		switch msg.Event {
		case "start":
			if err := s.handleStart(msg.Start); err != nil {
				s.sendError(err.Error())
				return
			}

		case "level":
			s.handleLevel(msg.Level)

		case "stop":
			s.handleStop(msg.Stop)
			return

		default:
			s.logger.Warn().Str("event", msg.Event).Msg("Unknown level stream event")
		}
	}
}

func (s *levelSession) handleStart(start *StartEvent) error {
	if start == nil {
		return fmt.Errorf("start event is missing its payload")
	}
	if s.started {
		return fmt.Errorf("stream already started")
	}
	if !start.Scenario.Valid() {
		return fmt.Errorf("unknown scenario %q", start.Scenario)
	}
	if !start.CoachTone.Valid() {
		return fmt.Errorf("unknown coach tone %q", start.CoachTone)
	}

	interval := float64(s.cfg.SampleIntervalMs) / 1000.0
	if start.SampleIntervalMs > 0 {
		interval = float64(start.SampleIntervalMs) / 1000.0
	}

	recorderCfg := audio.DefaultRecorderConfig()
	recorderCfg.SampleInterval = interval
	recorderCfg.QualityWindow = s.cfg.QualityWindowSize
	if s.cfg.CalibrationWarmupMs > 0 && interval > 0 {
		recorderCfg.WarmupSamples = int(float64(s.cfg.CalibrationWarmupMs) / 1000.0 / interval)
	}

	s.sessionID = start.SessionID
	if s.sessionID == "" {
		s.sessionID = observability.NewSessionID()
	}
	s.scenario = start.Scenario
	s.coachTone = start.CoachTone
	s.recorder = audio.NewRecorder(recorderCfg)
	s.started = true
	s.logger = observability.WithSession(s.sessionID)

	s.logger.Info().
		Str("scenario", string(start.Scenario)).
		Str("coach_tone", string(start.CoachTone)).
		Float64("sample_interval", interval).
		Msg("Level stream started")
	return nil
}

func (s *levelSession) handleLevel(level *LevelEvent) {
	if !s.started || level == nil {
		return
	}

	warning, changed := s.recorder.Append(level.RMS, level.Peak)
	observability.RecordLevelSample()
	if !changed {
		return
	}

	observability.RecordQualityWarning(string(warning))
	s.logger.Debug().Str("kind", string(warning)).Msg("Quality state changed")
	s.send(Message{Event: "quality", Quality: &QualityEvent{Kind: string(warning)}})
}

func (s *levelSession) handleStop(stop *StopEvent) {
	if !s.started {
		s.sendError("stream was never started")
		return
	}

	metrics := s.recorder.Stop()
	req := api.ScoreRequest{
		SessionID: s.sessionID,
		Scenario:  s.scenario,
		CoachTone: s.coachTone,
		Metrics: api.MetricsPayload{
			RMSWindows:      metrics.RMSWindows,
			PeakWindows:     metrics.PeakWindows,
			DurationSeconds: metrics.Duration,
		},
	}
	if stop != nil {
		req.Transcript = stop.Transcript
	}

	resp, err := s.service.ScoreSession(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to score streamed session")
		s.sendError("scoring failed")
		return
	}

	s.logger.Info().
		Int("samples", s.recorder.SampleCount()).
		Int("overall", resp.Result.Scores.Overall).
		Msg("Level stream scored")
	s.send(Message{Event: "result", Result: resp})
}

func (s *levelSession) send(msg Message) {
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write level stream message")
	}
}

func (s *levelSession) sendError(message string) {
	s.send(Message{Event: "error", Error: message})
}

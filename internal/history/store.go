package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rehearseiq/feedback-engine/internal/scoring"
)

// Session is one persisted scoring session: the FeedbackScores artifact plus
// the measurements that feed future baselines.
type Session struct {
	ID        string                 `json:"id"`
	Scenario  scoring.Scenario       `json:"scenario"`
	CoachTone scoring.CoachTone      `json:"coach_tone"`
	CreatedAt time.Time              `json:"created_at"`
	Duration  float64                `json:"duration_seconds"`
	Scores    scoring.FeedbackScores `json:"scores"`
	Measured  scoring.Measurements   `json:"measurements"`
}

// Store persists sessions in SQLite and answers baseline queries
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database and ensures the schema
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id                  TEXT PRIMARY KEY,
			scenario            TEXT NOT NULL,
			coach_tone          TEXT NOT NULL,
			created_at          REAL NOT NULL,
			duration            REAL NOT NULL,
			clarity             INTEGER NOT NULL,
			pacing              INTEGER NOT NULL,
			tone                INTEGER NOT NULL,
			confidence          INTEGER NOT NULL,
			overall             INTEGER NOT NULL,
			tier                TEXT NOT NULL,
			segments_per_minute REAL NOT NULL,
			average_level       REAL NOT NULL,
			silence_ratio       REAL NOT NULL,
			volume_stability    REAL NOT NULL,
			words_per_minute    REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scenario_created
			ON sessions (scenario, created_at DESC);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection, for readiness checks
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save persists one completed session
func (s *Store) Save(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (
			id, scenario, coach_tone, created_at, duration,
			clarity, pacing, tone, confidence, overall, tier,
			segments_per_minute, average_level, silence_ratio,
			volume_stability, words_per_minute
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sess.ID, string(sess.Scenario), string(sess.CoachTone),
		float64(sess.CreatedAt.UnixMilli())/1000.0, sess.Duration,
		sess.Scores.Clarity, sess.Scores.Pacing, sess.Scores.Tone,
		sess.Scores.Confidence, sess.Scores.Overall, string(sess.Scores.Tier),
		sess.Measured.SegmentsPerMinute, sess.Measured.AverageLevel,
		sess.Measured.SilenceRatio, sess.Measured.VolumeStability,
		sess.Measured.WordsPerMinute,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Recent returns the most recent sessions, newest first. An empty scenario
// matches all scenarios.
func (s *Store) Recent(scenario scoring.Scenario, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, scenario, coach_tone, created_at, duration,
		       clarity, pacing, tone, confidence, overall, tier,
		       segments_per_minute, average_level, silence_ratio,
		       volume_stability, words_per_minute
		FROM sessions
	`
	args := []interface{}{}
	if scenario != "" {
		query += " WHERE scenario = ?"
		args = append(args, string(scenario))
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Latest returns the most recent session for a scenario, or nil when the
// scenario has no history yet
func (s *Store) Latest(scenario scoring.Scenario) (*Session, error) {
	sessions, err := s.Recent(scenario, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// Baseline computes the rolling-average baseline over the last n sessions of
// a scenario. Nil when the scenario has no history: every baseline field is
// all-or-nothing since the same rows feed each average.
func (s *Store) Baseline(scenario scoring.Scenario, n int) (*scoring.BaselineMetrics, error) {
	if n <= 0 {
		n = 5
	}

	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       AVG(segments_per_minute), AVG(average_level), AVG(silence_ratio),
		       AVG(volume_stability), AVG(words_per_minute)
		FROM (
			SELECT segments_per_minute, average_level, silence_ratio,
			       volume_stability, words_per_minute
			FROM sessions
			WHERE scenario = ?
			ORDER BY created_at DESC
			LIMIT ?
		)
	`, string(scenario), n)

	var count int
	var segments, level, silence, stability, wpm sql.NullFloat64
	if err := row.Scan(&count, &segments, &level, &silence, &stability, &wpm); err != nil {
		return nil, fmt.Errorf("scan baseline: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	baseline := &scoring.BaselineMetrics{}
	if segments.Valid {
		baseline.SegmentsPerMinute = &segments.Float64
	}
	if level.Valid {
		baseline.AverageLevel = &level.Float64
	}
	if silence.Valid {
		baseline.SilenceRatio = &silence.Float64
	}
	if stability.Valid {
		baseline.VolumeStability = &stability.Float64
	}
	if wpm.Valid {
		baseline.WordsPerMinute = &wpm.Float64
	}
	return baseline, nil
}

func scanSession(rows *sql.Rows) (Session, error) {
	var sess Session
	var scenario, coachTone, tier string
	var createdAt float64

	if err := rows.Scan(&sess.ID, &scenario, &coachTone, &createdAt, &sess.Duration,
		&sess.Scores.Clarity, &sess.Scores.Pacing, &sess.Scores.Tone,
		&sess.Scores.Confidence, &sess.Scores.Overall, &tier,
		&sess.Measured.SegmentsPerMinute, &sess.Measured.AverageLevel,
		&sess.Measured.SilenceRatio, &sess.Measured.VolumeStability,
		&sess.Measured.WordsPerMinute); err != nil {
		return sess, fmt.Errorf("scan session: %w", err)
	}

	sess.Scenario = scoring.Scenario(scenario)
	sess.CoachTone = scoring.CoachTone(coachTone)
	sess.Scores.Tier = scoring.Tier(tier)
	sess.CreatedAt = time.UnixMilli(int64(createdAt * 1000))

	// Strength/weakness fields are derived, not stored; rebuild them from the
	// raw scores with neutral weights for display.
	rebuilt := scoring.NewFeedbackScores(sess.Scores.Clarity, sess.Scores.Pacing,
		sess.Scores.Tone, sess.Scores.Confidence,
		scoring.ScoreWeights{Clarity: 1, Pacing: 1, Tone: 1, Confidence: 1})
	sess.Scores.PrimaryStrength = rebuilt.PrimaryStrength
	sess.Scores.PrimaryWeakness = rebuilt.PrimaryWeakness
	sess.Scores.WeightedStrength = rebuilt.WeightedStrength
	sess.Scores.WeightedWeakness = rebuilt.WeightedWeakness

	return sess, nil
}

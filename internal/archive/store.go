package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/scrivenlabs/scriven/internal/config"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Interview is the archived record of one processed recording.
type Interview struct {
	ID          string
	Fingerprint string
	AudioPath   string
	Language    string
	Model       string
	Duration    float64
	Quality     string
	TotalWords  int
	Stats       []byte // statistics document as JSON
	CreatedAt   time.Time
}

// Turn is one archived transcript turn. Timing is stored in integer
// milliseconds so ordering queries never compare floats.
type Turn struct {
	InterviewID string
	Position    int
	Speaker     string
	StartMS     int64
	EndMS       int64
	Text        string
	Words       int
	Confidence  float64
}

// Store wraps the SQLite-backed interview archive.
type Store struct {
	db    *sql.DB
	cfg   config.ArchiveConfig
	log   *slog.Logger
	clock func() time.Time
}

// Open initializes the archive according to config. A disabled archive and
// ephemeral retention both yield a store whose writes are no-ops.
func Open(ctx context.Context, cfg config.ArchiveConfig, log *slog.Logger) (*Store, error) {
	if !cfg.Enabled || cfg.RetentionMode == "ephemeral" {
		return &Store{cfg: cfg, log: log, clock: time.Now}, nil
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, cfg: cfg, log: log, clock: time.Now}

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.VacuumOnStart {
		if err := s.vacuum(ctx); err != nil {
			log.Warn("archive vacuum failed", slog.String("error", err.Error()))
		}
	}

	if err := s.Prune(ctx); err != nil {
		log.Warn("archive prune on start failed", slog.String("error", err.Error()))
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS interviews (
    interview_id TEXT PRIMARY KEY,
    fingerprint TEXT NOT NULL,
    audio_path TEXT,
    language TEXT,
    model TEXT,
    duration_seconds REAL,
    audio_quality TEXT,
    total_words INTEGER,
    stats_json BLOB,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interviews_fingerprint ON interviews(fingerprint);
CREATE TABLE IF NOT EXISTS turns (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    interview_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    speaker TEXT NOT NULL,
    start_ms INTEGER NOT NULL,
    end_ms INTEGER NOT NULL,
    text TEXT,
    words INTEGER,
    confidence REAL,
    FOREIGN KEY(interview_id) REFERENCES interviews(interview_id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_turns_interview_position ON turns(interview_id, position);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *Store) vacuum(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

// Close releases underlying resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveInterview writes the interview record and its turns in one
// transaction.
func (s *Store) SaveInterview(ctx context.Context, rec Interview, turns []transcript.Turn) error {
	if s.db == nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.clock().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interviews(interview_id, fingerprint, audio_path, language, model,
		                        duration_seconds, audio_quality, total_words, stats_json, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Fingerprint, rec.AudioPath, rec.Language, rec.Model,
		rec.Duration, rec.Quality, rec.TotalWords, rec.Stats, rec.CreatedAt)
	if err != nil {
		return err
	}

	for i, t := range turns {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO turns(interview_id, position, speaker, start_ms, end_ms, text, words, confidence)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i, string(t.Speaker), toMillis(t.Start), toMillis(t.End), t.Text, t.Words, t.Confidence)
		if err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// FindByFingerprint returns the most recent interview archived for the given
// audio fingerprint, or nil when the recording has never been processed.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*Interview, error) {
	if s.db == nil {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT interview_id, fingerprint, audio_path, language, model,
		        duration_seconds, audio_quality, total_words, stats_json, created_at
		 FROM interviews WHERE fingerprint = ? ORDER BY created_at DESC LIMIT 1`, fingerprint)

	var rec Interview
	var created string
	err := row.Scan(&rec.ID, &rec.Fingerprint, &rec.AudioPath, &rec.Language, &rec.Model,
		&rec.Duration, &rec.Quality, &rec.TotalWords, &rec.Stats, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		rec.CreatedAt = ts
	}
	return &rec, nil
}

// ListTurns retrieves up to limit turns for an interview in stream order.
func (s *Store) ListTurns(ctx context.Context, interviewID string, limit int) ([]Turn, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT interview_id, position, speaker, start_ms, end_ms, text, words, confidence
		 FROM turns WHERE interview_id = ? ORDER BY position ASC LIMIT ?`, interviewID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.InterviewID, &t.Position, &t.Speaker, &t.StartMS, &t.EndMS, &t.Text, &t.Words, &t.Confidence); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Prune applies configured retention (called on startup and can be
// scheduled).
func (s *Store) Prune(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if s.cfg.RetentionMode == "days" && s.cfg.RetentionDays > 0 {
		cutoff := s.clock().Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour)
		if _, err = tx.ExecContext(ctx, `DELETE FROM interviews WHERE created_at < ?`, cutoff.UTC()); err != nil {
			return err
		}
	}
	if s.cfg.MaxInterviews > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM interviews WHERE interview_id IN (
			SELECT interview_id FROM interviews ORDER BY created_at DESC LIMIT -1 OFFSET ?
		)`, s.cfg.MaxInterviews)
		if err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

// toMillis converts seconds to whole milliseconds, truncating toward zero
// without binary float drift.
func toMillis(seconds float64) int64 {
	return decimal.NewFromFloat(seconds).Mul(decimal.NewFromInt(1000)).IntPart()
}

package runs

import (
	"context"
	"database/sql"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

// Record inserts a run.
func (s *PGStore) Record(ctx context.Context, run Run) error {
	const query = `
INSERT INTO analysis_runs (
	id, request_id, created_at, http_status, outcome, provider, model,
	input_source, jd_sha256, resume_sha256, overall_score, score_label, duration_ms
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	var score sql.NullInt64
	if run.OverallScore != nil {
		score = sql.NullInt64{Int64: int64(*run.OverallScore), Valid: true}
	}
	var label sql.NullString
	if run.ScoreLabel != nil {
		label = sql.NullString{String: *run.ScoreLabel, Valid: true}
	}
	_, err := s.DB.ExecContext(ctx, query,
		run.ID,
		run.RequestID,
		run.CreatedAt,
		run.HTTPStatus,
		run.Outcome,
		run.Provider,
		run.Model,
		run.InputSource,
		run.JDHash,
		run.ResumeHash,
		score,
		label,
		run.DurationMs,
	)
	return err
}

// List returns the newest runs.
func (s *PGStore) List(ctx context.Context, limit int) ([]Run, error) {
	limit, err := ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	const query = `
SELECT id, request_id, created_at, http_status, outcome, provider, model,
       input_source, jd_sha256, resume_sha256, overall_score, score_label, duration_ms
FROM analysis_runs
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var score sql.NullInt64
		var label sql.NullString
		if err := rows.Scan(
			&r.ID,
			&r.RequestID,
			&r.CreatedAt,
			&r.HTTPStatus,
			&r.Outcome,
			&r.Provider,
			&r.Model,
			&r.InputSource,
			&r.JDHash,
			&r.ResumeHash,
			&score,
			&label,
			&r.DurationMs,
		); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			r.OverallScore = &v
		}
		if label.Valid {
			v := label.String
			r.ScoreLabel = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

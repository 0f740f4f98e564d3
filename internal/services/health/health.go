package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. db may be nil when the run
// ledger is in memory.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Ready reports which run ledger backs the process and whether it answers.
func (s *Service) Ready(ctx context.Context) (map[string]any, error) {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "ledger": "memory"}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "ledger": "postgres"}, err
	}
	return map[string]any{"ok": true, "ledger": "postgres"}, nil
}

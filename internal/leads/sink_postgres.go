package leads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const insertLeadSQL = `
	INSERT INTO leads (id, name, email, phone, budget, message, created_at, source_ip, user_agent)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING
`

// PostgresSink inserts leads into the leads table created by the migrations.
type PostgresSink struct {
	db Execer
}

// NewPostgresSink accepts a *pgxpool.Pool or any compatible executor.
func NewPostgresSink(db Execer) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	_, err := s.db.Exec(ctx, insertLeadSQL,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Budget,
		lead.Message,
		lead.CreatedAt,
		lead.SourceIP,
		lead.UserAgent,
	)
	if err != nil {
		return false, fmt.Errorf("leads: insert lead: %w", err)
	}
	return true, nil
}

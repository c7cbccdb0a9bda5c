package events

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkauth/internal/dbx"
	"github.com/dmitrijs2005/zkauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, userID string, kind models.EventKind) error {
	query := `
		INSERT INTO credential_events (user_id, kind)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, string(kind)); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.CredentialEvent, error) {
	query := `
		SELECT user_id, kind, created_at
		FROM credential_events
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.CredentialEvent
	for rows.Next() {
		var (
			e    models.CredentialEvent
			kind string
		)
		if err := rows.Scan(&e.UserID, &kind, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Kind = models.EventKind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

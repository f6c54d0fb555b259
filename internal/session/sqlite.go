package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventora/backoffice/internal/dbx"
	"github.com/eventora/backoffice/internal/models"
)

// SQLiteStore keeps session markers in a local key/value table so a session
// survives client restarts.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to load session markers: %w", err)
	}
	defer rows.Close()

	markers := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Session{}, fmt.Errorf("failed to scan session marker: %w", err)
		}
		markers[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Session{}, fmt.Errorf("failed to iterate session markers: %w", err)
	}

	return models.Session{
		Token:     markers[markerToken],
		UserType:  markers[markerUserType],
		UserRole:  markers[markerUserRole],
		UserID:    markers[markerUserID],
		CompanyID: markers[markerCompanyID],
	}, nil
}

// Save writes all markers in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	markers := map[string]string{
		markerToken:     sess.Token,
		markerUserType:  sess.UserType,
		markerUserRole:  sess.UserRole,
		markerUserID:    sess.UserID,
		markerCompanyID: sess.CompanyID,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range markers {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session marker[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes every marker. A single DELETE is already atomic, and running
// it against an empty table is harmless.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session markers: %w", err)
	}
	return nil
}

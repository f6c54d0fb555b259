package session

import (
	"context"

	"github.com/eventora/backoffice/internal/models"
)

// Marker keys under which session fields are persisted.
const (
	markerToken     = "auth_token"
	markerUserType  = "user_type"
	markerUserRole  = "user_role"
	markerUserID    = "user_id"
	markerCompanyID = "company_id"
)

// Store persists the session marker set.
//
// Contract:
//   - Load: absent markers read as empty strings, never as an error.
//   - Save: writes the full marker set as one atomic operation.
//   - Clear: removes the full marker set as one atomic operation; calling
//     Clear on an already empty store is a no-op.
//
// A reader must never observe a partially written or partially cleared
// session.
type Store interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

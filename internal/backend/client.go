// Package backend talks to the remote marketplace API. The rest of the
// client depends on the Client interface only; the concrete transport lives
// in the HTTP implementation.
package backend

import (
	"context"

	"github.com/eventora/backoffice/internal/models"
)

// LoginResult is the marker set returned by a successful authentication.
type LoginResult struct {
	Token     string `json:"token"`
	UserType  string `json:"userType"`
	UserRole  string `json:"userRole"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
}

// Session converts the login payload into the persisted marker set.
func (r LoginResult) Session() models.Session {
	return models.Session{
		Token:     r.Token,
		UserType:  r.UserType,
		UserRole:  r.UserRole,
		UserID:    r.UserID,
		CompanyID: r.CompanyID,
	}
}

// Client defines the backend operations used by the back-office screens.
//
// All methods honor context cancellation/timeouts. Errors wrap the sentinel
// values in internal/common where a category applies (ErrUnauthorized,
// ErrNotFound, ErrUnavailable).
type Client interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)

	Cities(ctx context.Context) ([]models.City, error)
	Districts(ctx context.Context, cityID int64) ([]models.District, error)

	Organizations(ctx context.Context) ([]models.Organization, error)
	Organization(ctx context.Context, id int64) (models.Organization, error)
	CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	UpdateOrganization(ctx context.Context, org models.Organization) error
	DeleteOrganization(ctx context.Context, id int64) error

	Company(ctx context.Context) (models.Company, error)
	UpdateCompany(ctx context.Context, company models.Company) error

	Messages(ctx context.Context) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}

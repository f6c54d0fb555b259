// Package models defines the domain types shared by the back-office client:
// session markers, geography, organizations, company profile, inbox messages.
package models

// UserType classifies the account kind behind a session.
type UserType string

const (
	UserTypeAdmin   UserType = "admin"
	UserTypeCompany UserType = "company"
)

// Role claim strings issued by the backend. The persisted role marker must
// agree with the persisted user type, otherwise the session is rejected.
const (
	RoleClaimAdmin   = "Admin"
	RoleClaimCompany = "Company"
)

// Session is the full persisted marker set. It is written and cleared as a
// unit: a reader must never observe a partially written session.
type Session struct {
	Token     string
	UserType  string
	UserRole  string
	UserID    string
	CompanyID string
}

// Present reports whether a token is stored at all. Presence is independent
// of validity.
func (s Session) Present() bool {
	return s.Token != ""
}

// Empty reports whether no marker is set.
func (s Session) Empty() bool {
	return s == Session{}
}

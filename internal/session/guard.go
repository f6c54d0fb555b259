package session

import (
	"context"

	"github.com/eventora/backoffice/internal/common"
	"github.com/eventora/backoffice/internal/logging"
	"github.com/eventora/backoffice/internal/models"
)

// RequiredRole names the account kind a screen demands. RoleAny means the
// screen only needs some authenticated session.
type RequiredRole string

const (
	RoleAny     RequiredRole = ""
	RoleAdmin   RequiredRole = RequiredRole(models.UserTypeAdmin)
	RoleCompany RequiredRole = RequiredRole(models.UserTypeCompany)
)

// State is the guard's verdict for one evaluation. Exactly one visible
// outcome holds at a time: render (Authorized), redirect (Redirect set), or
// still evaluating (Pending). Authorized is never true while Pending is.
type State struct {
	Authorized bool
	Pending    bool
	Redirect   string
}

func redirectState() State {
	return State{Redirect: common.LoginRoute}
}

// Guard gates rendering of screens that require an authenticated session.
type Guard struct {
	store     Store
	validator *Validator
	log       logging.Logger
}

func NewGuard(store Store, validator *Validator, log logging.Logger) *Guard {
	if validator == nil {
		validator = NewValidator(nil)
	}
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Guard{store: store, validator: validator, log: log}
}

// Authorize decides whether a screen demanding the given role may render.
// The checks run in a fixed order and the first match wins:
//
//  1. token absent or invalid            -> clear markers, redirect
//  2. type or role marker absent         -> clear markers, redirect
//  3. required role does not match type  -> redirect, markers kept
//  4. type "admin" with a non-admin role -> clear markers, redirect
//  5. type "company" with a non-company role -> clear markers, redirect
//  6. otherwise                          -> authorized
//
// Rule 3 deliberately keeps the markers: the session may be perfectly valid
// for a different screen, so a wrong-role view must not destroy it.
func (g *Guard) Authorize(ctx context.Context, required RequiredRole) State {
	sess, err := g.store.Load(ctx)
	if err != nil {
		g.log.Warn(ctx, "session load failed, treating as absent", "error", err)
		sess = models.Session{}
	}

	if !sess.Present() || !g.validator.IsValid(sess.Token) {
		g.clear(ctx)
		return redirectState()
	}

	if sess.UserType == "" || sess.UserRole == "" {
		g.clear(ctx)
		return redirectState()
	}

	if required != RoleAny && sess.UserType != string(required) {
		g.log.Debug(ctx, "session valid but wrong role for screen",
			"have", sess.UserType, "want", string(required))
		return redirectState()
	}

	if sess.UserType == string(models.UserTypeAdmin) && sess.UserRole != models.RoleClaimAdmin {
		g.clear(ctx)
		return redirectState()
	}

	if sess.UserType == string(models.UserTypeCompany) && sess.UserRole != models.RoleClaimCompany {
		g.clear(ctx)
		return redirectState()
	}

	return State{Authorized: true}
}

func (g *Guard) clear(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to clear session markers", "error", err)
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventora/backoffice/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return err
	}

	result, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable, try again later.")
		} else {
			fmt.Fprintf(a.out, "Login unsuccessful: %s\n", err.Error())
		}
		return nil
	}

	// The full marker set is written as one atomic operation.
	if err := a.store.Save(ctx, result.Session()); err != nil {
		a.log.Error(ctx, "failed to persist session", "error", err)
		return err
	}

	a.startWatcher()
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.stopWatcher()
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if !sess.Present() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "user=%s type=%s role=%s company=%s\n",
		sess.UserID, sess.UserType, sess.UserRole, sess.CompanyID)
	return nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/eventora/backoffice/internal/session"
)

func (a *App) getStatus() string {
	ctx := context.Background()
	sess, err := a.store.Load(ctx)
	if err != nil || !sess.Present() {
		return "(not logged in)"
	}
	if a.sessionExpired() {
		return "(session expired)"
	}
	return fmt.Sprintf("(%s %s)", sess.UserType, sess.UserID)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Event marketplace back-office (type 'help' for commands)")

	// A session persisted from a previous run resumes background
	// revalidation right away.
	if state := a.guard.Authorize(ctx, session.RoleAny); state.Authorized {
		a.startWatcher()
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

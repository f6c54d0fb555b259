package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ListOrganizations(ctx context.Context) error
	AddOrganization(ctx context.Context) error
	EditOrganization(ctx context.Context, arg string) error
	DeleteOrganization(ctx context.Context, arg string) error
	EditCompany(ctx context.Context) error
	Inbox(ctx context.Context) error
	ReadMessage(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the back-office client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands when not logged in: help, login, exit.
// Commands when logged in: help, orgs, addorg, editorg <id>, delorg <id>,
// company, inbox, read <id>, whoami, logout, exit.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bo> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: orgs, addorg, editorg <id>, delorg <id>, company, inbox, read <id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "orgs":
			_ = a.ListOrganizations(ctx)
		case "addorg":
			_ = a.AddOrganization(ctx)
		case "editorg":
			_ = a.EditOrganization(ctx, arg)
		case "delorg":
			_ = a.DeleteOrganization(ctx, arg)
		case "company":
			_ = a.EditCompany(ctx)
		case "inbox":
			_ = a.Inbox(ctx)
		case "read":
			_ = a.ReadMessage(ctx, arg)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}

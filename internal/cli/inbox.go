package cli

import (
	"context"
	"fmt"

	"github.com/eventora/backoffice/internal/cascade"
	"github.com/eventora/backoffice/internal/session"
)

func (a *App) Inbox(ctx context.Context) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		messages, err := a.client.Messages(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Could not load inbox: %s\n", err.Error())
			return nil
		}
		if len(messages) == 0 {
			fmt.Fprintln(a.out, "Inbox is empty.")
			return nil
		}
		for _, msg := range messages {
			marker := " "
			if !msg.IsRead {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %d\t%s <%s>\tevent %s\n",
				marker, msg.ID, msg.SenderName, msg.SenderEmail,
				msg.EventDate.Format("2006-01-02"))
		}
		return nil
	})
}

func (a *App) ReadMessage(ctx context.Context, arg string) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		id, ok := cascade.ParseID(arg)
		if !ok {
			fmt.Fprintln(a.out, "Usage: read <id>")
			return nil
		}

		messages, err := a.client.Messages(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Could not load inbox: %s\n", err.Error())
			return nil
		}

		for _, msg := range messages {
			if msg.ID != id {
				continue
			}
			fmt.Fprintf(a.out, "From: %s <%s> %s\nEvent date: %s\n\n%s\n",
				msg.SenderName, msg.SenderEmail, msg.SenderPhone,
				msg.EventDate.Format("2006-01-02"), msg.Body)
			if !msg.IsRead {
				if err := a.client.MarkMessageRead(ctx, msg.ID); err != nil {
					a.log.Warn(ctx, "failed to mark message read", "id", msg.ID, "error", err)
				}
			}
			return nil
		}

		fmt.Fprintln(a.out, "No such message.")
		return nil
	})
}

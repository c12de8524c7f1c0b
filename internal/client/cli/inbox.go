package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/google/uuid"
)

// notify records a local event in the inbox.
func (a *App) notify(kind, title, message string) {
	a.inbox.Add(models.Notification{
		ID:        uuid.NewString()[:8],
		Type:      kind,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Inbox lists notifications, or with a sub-command marks them all read or
// approves, declines or dismisses one.
func (a *App) Inbox(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printInbox()
		return nil
	}

	sub := args[0]
	if sub == "read" {
		a.inbox.MarkAllRead(ctx)
		a.println("All notifications marked as read")
		return nil
	}
	if len(args) != 2 {
		a.println("Usage: inbox [read|approve <id>|decline <id>|dismiss <id>]")
		return nil
	}

	id := args[1]
	var ok bool
	var done string
	switch sub {
	case "approve":
		ok, done = a.inbox.Approve(ctx, id), "Join request has been approved"
	case "decline":
		ok, done = a.inbox.Decline(ctx, id), "Join request has been declined"
	case "dismiss":
		ok, done = a.inbox.Dismiss(ctx, id), "Notification dismissed"
	default:
		a.println("Unknown inbox command:", sub)
		return nil
	}
	if !ok {
		a.println("No notification", id)
		return nil
	}
	a.println(done)
	return nil
}

func (a *App) printInbox() {
	items := a.inbox.List()
	if len(items) == 0 {
		a.println("Inbox is empty")
		return
	}
	a.printf("%d unread\n", a.inbox.Unread())
	for _, n := range items {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		action := ""
		if n.ActionRequired {
			action = " [action required]"
		}
		a.printf("%s %s  %s: %s%s (%s)\n", mark, n.ID, n.Title, n.Message, action, n.Timestamp.Format(time.DateTime))
	}
}

package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/dmitrijs2005/tripcart/internal/logging"
)

// Inbox is an in-memory notification list.
type Inbox struct {
	log logging.Logger

	mu    sync.Mutex
	items []models.Notification
}

func NewInbox(initial []models.Notification, logger logging.Logger) *Inbox {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Inbox{
		log:   logger.With("component", "inbox"),
		items: append([]models.Notification(nil), initial...),
	}
}

// Add puts n at the top of the inbox.
func (in *Inbox) Add(n models.Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = append([]models.Notification{n}, in.items...)
}

// List returns a copy of the notifications, newest first.
func (in *Inbox) List() []models.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]models.Notification(nil), in.items...)
}

func (in *Inbox) Unread() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := 0
	for _, it := range in.items {
		if !it.IsRead {
			n++
		}
	}
	return n
}

func (in *Inbox) MarkAllRead(ctx context.Context) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		in.items[i].IsRead = true
	}
	in.log.Info(ctx, "all notifications marked as read")
}

// Approve accepts the join request behind id and removes it. It reports
// whether id was present.
func (in *Inbox) Approve(ctx context.Context, id string) bool {
	if !in.remove(id) {
		return false
	}
	in.log.Info(ctx, "join request approved", "notification_id", id)
	return true
}

// Decline rejects the join request behind id and removes it.
func (in *Inbox) Decline(ctx context.Context, id string) bool {
	if !in.remove(id) {
		return false
	}
	in.log.Info(ctx, "join request declined", "notification_id", id)
	return true
}

func (in *Inbox) Dismiss(_ context.Context, id string) bool {
	return in.remove(id)
}

func (in *Inbox) remove(id string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i, it := range in.items {
		if it.ID == id {
			in.items = append(in.items[:i], in.items[i+1:]...)
			return true
		}
	}
	return false
}

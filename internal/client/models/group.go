package models

import (
	"strings"
	"time"
)

// Group is a travel group sharing one shopping list.
type Group struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	Members     []User
	ItemCount   int
	CreatedAt   time.Time
}

// FilterGroups returns the groups whose name or description contains query,
// ignoring case. An empty query returns groups unchanged.
func FilterGroups(groups []Group, query string) []Group {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return groups
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), q) ||
			strings.Contains(strings.ToLower(g.Description), q) {
			out = append(out, g)
		}
	}
	return out
}

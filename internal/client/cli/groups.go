package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
)

// ListGroups prints the user's groups, narrowed by filter when given.
func (a *App) ListGroups(ctx context.Context, filter string) error {
	groups, err := a.groups.List(ctx)
	if err != nil {
		return err
	}
	a.printGroups(a.groups.Filter(groups, filter))
	return nil
}

func (a *App) printGroups(groups []models.Group) {
	if len(groups) == 0 {
		a.println("No groups")
		return
	}
	for _, g := range groups {
		line := fmt.Sprintf("%s  %s", g.ID, g.Name)
		if g.Description != "" {
			line += " - " + g.Description
		}
		var extra []string
		if n := len(g.Members); n > 0 {
			extra = append(extra, fmt.Sprintf("%d members", n))
		}
		if g.ItemCount > 0 {
			extra = append(extra, fmt.Sprintf("%d items", g.ItemCount))
		}
		if len(extra) > 0 {
			line += " (" + strings.Join(extra, ", ") + ")"
		}
		a.println(line)
	}
}

func (a *App) CreateGroup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	g, err := a.groups.Create(ctx, name, password)
	if err != nil {
		return err
	}
	a.printf("Group %q created (id %s)\n", g.Name, g.ID)
	a.notify("group_created", "Group created", fmt.Sprintf("You created %s", g.Name))
	return nil
}

func (a *App) DeleteGroup(ctx context.Context, groupID string) error {
	if err := a.groups.Delete(ctx, groupID); err != nil {
		return err
	}
	a.println("Group deleted")
	return nil
}

func (a *App) SearchGroups(ctx context.Context, query string) error {
	groups, err := a.groups.Search(ctx, query)
	if err != nil {
		return err
	}
	a.printGroups(groups)
	return nil
}

func (a *App) JoinGroup(ctx context.Context, groupID string) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.groups.Join(ctx, groupID, password); err != nil {
		return err
	}
	a.println("Joined group", groupID)
	a.notify("group_joined", "Joined group", fmt.Sprintf("You joined group %s", groupID))
	return nil
}

func (a *App) LeaveGroup(ctx context.Context, groupID string) error {
	if err := a.groups.Leave(ctx, groupID); err != nil {
		return err
	}
	a.println("Left group", groupID)
	return nil
}

func (a *App) AddMember(ctx context.Context, groupID, userID string) error {
	if err := a.groups.AddMember(ctx, groupID, userID); err != nil {
		return err
	}
	a.println("Member added")
	return nil
}

func (a *App) RemoveMember(ctx context.Context, groupID, userID string) error {
	if err := a.groups.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}
	a.println("Member removed")
	return nil
}

func (a *App) SearchUsers(ctx context.Context, username string) error {
	users, err := a.groups.SearchUsers(ctx, username)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		a.println("No users found")
		return nil
	}
	for _, u := range users {
		a.printf("%s  %s (@%s)\n", u.ID, u.Name, u.Username)
	}
	return nil
}

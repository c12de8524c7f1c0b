package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/dmitrijs2005/tripcart/internal/logging"
)

// Logouter ends the session.
type Logouter interface {
	Logout(ctx context.Context)
}

// GroupsService covers group and membership operations plus user search and
// account deletion. It keeps no state; every call goes to the server.
type GroupsService struct {
	client  client.Client
	session Logouter
	log     logging.Logger
}

func NewGroupsService(c client.Client, session Logouter, logger logging.Logger) *GroupsService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &GroupsService{client: c, session: session, log: logger.With("component", "groups")}
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return nil
}

func (g *GroupsService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := g.client.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (g *GroupsService) Create(ctx context.Context, name, password string) (*models.Group, error) {
	if err := required("group name", name); err != nil {
		return nil, err
	}
	if err := required("group password", password); err != nil {
		return nil, err
	}
	group, err := g.client.CreateGroup(ctx, strings.TrimSpace(name), password)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	g.log.Info(ctx, "group created", "group_id", group.ID)
	return group, nil
}

func (g *GroupsService) Delete(ctx context.Context, groupID string) error {
	if err := required("group id", groupID); err != nil {
		return err
	}
	if err := g.client.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	g.log.Info(ctx, "group deleted", "group_id", groupID)
	return nil
}

func (g *GroupsService) Search(ctx context.Context, query string) ([]models.Group, error) {
	if err := required("search query", query); err != nil {
		return nil, err
	}
	groups, err := g.client.SearchGroups(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	return groups, nil
}

func (g *GroupsService) Join(ctx context.Context, groupID, password string) error {
	if err := required("group id", groupID); err != nil {
		return err
	}
	if err := g.client.JoinGroup(ctx, groupID, password); err != nil {
		return fmt.Errorf("join group: %w", err)
	}
	g.log.Info(ctx, "joined group", "group_id", groupID)
	return nil
}

func (g *GroupsService) Leave(ctx context.Context, groupID string) error {
	if err := required("group id", groupID); err != nil {
		return err
	}
	if err := g.client.LeaveGroup(ctx, groupID); err != nil {
		return fmt.Errorf("leave group: %w", err)
	}
	g.log.Info(ctx, "left group", "group_id", groupID)
	return nil
}

func (g *GroupsService) AddMember(ctx context.Context, groupID, memberID string) error {
	if err := required("group id", groupID); err != nil {
		return err
	}
	if err := required("member id", memberID); err != nil {
		return err
	}
	if err := g.client.AddMember(ctx, groupID, memberID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (g *GroupsService) RemoveMember(ctx context.Context, groupID, memberID string) error {
	if err := required("group id", groupID); err != nil {
		return err
	}
	if err := required("member id", memberID); err != nil {
		return err
	}
	if err := g.client.RemoveMember(ctx, groupID, memberID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (g *GroupsService) SearchUsers(ctx context.Context, username string) ([]models.User, error) {
	if err := required("username", username); err != nil {
		return nil, err
	}
	users, err := g.client.SearchUsers(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// DeleteAccount deletes the signed-in account and, on success, logs out.
func (g *GroupsService) DeleteAccount(ctx context.Context) error {
	if err := g.client.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	g.log.Info(ctx, "account deleted")
	g.session.Logout(ctx)
	return nil
}

// Filter narrows groups to those whose name or description contains query,
// ignoring case.
func (g *GroupsService) Filter(groups []models.Group, query string) []models.Group {
	return models.FilterGroups(groups, query)
}

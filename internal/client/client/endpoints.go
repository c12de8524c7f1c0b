package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
)

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) authenticate(ctx context.Context, route string, payload any) (*AuthResult, error) {
	var dto authDTO
	err := c.do(ctx, request{
		method: http.MethodPost,
		route:  route,
		path:   route,
		body:   payload,
		out:    &dto,
		noAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return dto.toResult()
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/auth/", map[string]string{
		"username": username,
		"password": password,
	})
}

func (c *HTTPClient) Register(ctx context.Context, name, username, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/users/", map[string]string{
		"name":     name,
		"username": username,
		"password": password,
	})
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var dto userDTO
	if err := c.do(ctx, request{method: http.MethodGet, route: "/auth/", path: "/auth/", out: &dto}); err != nil {
		return nil, err
	}
	u, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentProfile reads the same endpoint as CurrentUser but keeps the
// extended fields.
func (c *HTTPClient) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	var dto profileDTO
	if err := c.do(ctx, request{method: http.MethodGet, route: "/auth/", path: "/auth/", out: &dto}); err != nil {
		return nil, err
	}
	p, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile sends the patch; the response body is not interpreted.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/users/{id}",
		path:   "/users/" + url.PathEscape(userID),
		body:   patch,
	})
}

func (c *HTTPClient) SearchUsers(ctx context.Context, username string) ([]models.User, error) {
	var dtos []userDTO
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/users/search",
		path:   "/users/search",
		query:  url.Values{"username": {username}},
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return toUsers(dtos)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, route: "/users/", path: "/users/"})
}

func (c *HTTPClient) ListGroups(ctx context.Context) ([]models.Group, error) {
	var dtos []groupDTO
	if err := c.do(ctx, request{method: http.MethodGet, route: "/groups/", path: "/groups/", out: &dtos}); err != nil {
		return nil, err
	}
	return toGroups(dtos)
}

func (c *HTTPClient) CreateGroup(ctx context.Context, name, password string) (*models.Group, error) {
	var dto groupDTO
	err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/groups/",
		path:   "/groups/",
		body:   map[string]string{"name": name, "password": password},
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	g, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) DeleteGroup(ctx context.Context, groupID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/groups/{id}",
		path:   "/groups/" + url.PathEscape(groupID),
	})
}

func (c *HTTPClient) SearchGroups(ctx context.Context, query string) ([]models.Group, error) {
	var dtos []groupDTO
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/groups/search",
		path:   "/groups/search",
		query:  url.Values{"q": {query}},
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return toGroups(dtos)
}

func (c *HTTPClient) JoinGroup(ctx context.Context, groupID, password string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/groups/{id}/join",
		path:   "/groups/" + url.PathEscape(groupID) + "/join",
		body:   map[string]string{"password": password},
	})
}

func (c *HTTPClient) LeaveGroup(ctx context.Context, groupID string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/groups/{id}/leave",
		path:   "/groups/" + url.PathEscape(groupID) + "/leave",
	})
}

func (c *HTTPClient) AddMember(ctx context.Context, groupID, memberID string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/groups/members",
		path:   "/groups/members",
		body:   map[string]string{"groupId": groupID, "memberId": memberID},
	})
}

func (c *HTTPClient) RemoveMember(ctx context.Context, groupID, memberID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/groups/{id}/members/{memberId}",
		path:   "/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(memberID),
	})
}

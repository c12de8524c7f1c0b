package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// The server is inconsistent about identifiers: some payloads carry "id",
// others the raw Mongo "_id". Every DTO accepts both and normalises to one
// ID; a payload with neither is rejected.

type userDTO struct {
	ID       string `json:"id"`
	MongoID  string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username" validate:"required"`
}

func pickID(id, mongoID string) string {
	if id != "" {
		return id
	}
	return mongoID
}

func (d userDTO) toModel() (models.User, error) {
	id := pickID(d.ID, d.MongoID)
	if id == "" {
		return models.User{}, malformed("user has neither id nor _id")
	}
	if err := validate.Struct(d); err != nil {
		return models.User{}, malformed("user: %v", err)
	}
	return models.User{ID: id, Name: d.Name, Username: d.Username}, nil
}

type authDTO struct {
	Token string   `json:"token" validate:"required"`
	User  *userDTO `json:"user"`
}

func (d authDTO) toResult() (*AuthResult, error) {
	if err := validate.Struct(d); err != nil {
		return nil, malformed("auth response: %v", err)
	}
	res := &AuthResult{Token: d.Token}
	if d.User != nil {
		u, err := d.User.toModel()
		if err != nil {
			return nil, err
		}
		res.User = &u
	}
	return res, nil
}

type profileDTO struct {
	userDTO
	Email     *string `json:"email"`
	Avatar    *string `json:"avatar"`
	CreatedAt string  `json:"createdAt"`
}

func (d profileDTO) toModel() (models.Profile, error) {
	u, err := d.userDTO.toModel()
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     d.Email,
		Avatar:    d.Avatar,
		CreatedAt: parseTime(d.CreatedAt),
	}, nil
}

type groupDTO struct {
	ID          string            `json:"id"`
	MongoID     string            `json:"_id"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Owner       json.RawMessage   `json:"owner"`
	Members     []json.RawMessage `json:"members"`
	ItemCount   int               `json:"itemCount"`
	CreatedAt   string            `json:"createdAt"`
}

func (d groupDTO) toModel() (models.Group, error) {
	id := pickID(d.ID, d.MongoID)
	if id == "" {
		return models.Group{}, malformed("group has neither id nor _id")
	}
	if err := validate.Struct(d); err != nil {
		return models.Group{}, malformed("group: %v", err)
	}

	g := models.Group{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		ItemCount:   d.ItemCount,
		CreatedAt:   parseTime(d.CreatedAt),
	}
	if owner, ok := parseUserRef(d.Owner); ok {
		g.OwnerID = owner.ID
	}
	for _, raw := range d.Members {
		if m, ok := parseUserRef(raw); ok {
			g.Members = append(g.Members, m)
		}
	}
	return g, nil
}

// parseUserRef reads a reference that is either a bare id string or an
// embedded user object. Username is optional here.
func parseUserRef(raw json.RawMessage) (models.User, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.User{}, false
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return models.User{ID: id}, id != ""
	}

	var u userDTO
	if err := json.Unmarshal(raw, &u); err != nil {
		return models.User{}, false
	}
	id = pickID(u.ID, u.MongoID)
	return models.User{ID: id, Name: u.Name, Username: u.Username}, id != ""
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toUsers(in []userDTO) ([]models.User, error) {
	out := make([]models.User, 0, len(in))
	for _, d := range in {
		u, err := d.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func toGroups(in []groupDTO) ([]models.Group, error) {
	out := make([]models.Group, 0, len(in))
	for _, d := range in {
		g, err := d.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

package models

import "time"

// User is the identity held by an authenticated session.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Profile is the extended, server-owned view of the current user.
type Profile struct {
	ID        string
	Name      string
	Username  string
	Email     *string
	Avatar    *string
	CreatedAt time.Time
}

// ProfilePatch carries the fields of a partial profile update. Nil fields
// are left out of the request and untouched by Apply.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Username == nil && p.Email == nil && p.Avatar == nil
}

// Apply merges the patch into a copy of p.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Email != nil {
		v := *patch.Email
		p.Email = &v
	}
	if patch.Avatar != nil {
		v := *patch.Avatar
		p.Avatar = &v
	}
	return p
}

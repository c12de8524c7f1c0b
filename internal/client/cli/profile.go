package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
)

func (a *App) ShowProfile(ctx context.Context) error {
	a.profile.Fetch(ctx)
	if msg := a.profile.Err(); msg != "" {
		return errors.New(msg)
	}
	p := a.profile.Profile()
	if p == nil {
		a.println("No profile loaded")
		return nil
	}

	a.printf("Name:     %s\n", p.Name)
	a.printf("Username: %s\n", p.Username)
	a.printf("Email:    %s\n", deref(p.Email))
	a.printf("Avatar:   %s\n", deref(p.Avatar))
	if !p.CreatedAt.IsZero() {
		a.printf("Member since %s\n", p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// EditProfile prompts for each editable field; empty answers keep the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	var patch models.ProfilePatch
	var err error

	if patch.Name, err = getOptionalText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if patch.Username, err = getOptionalText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if patch.Email, err = getOptionalText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if patch.Avatar, err = getOptionalText(a.reader, "Avatar URL", a.out); err != nil {
		return err
	}

	if patch.IsEmpty() {
		a.println("Nothing to change")
		return nil
	}
	if !a.profile.Update(ctx, patch) {
		return errors.New(a.profile.Err())
	}
	a.println("Profile updated")
	return nil
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

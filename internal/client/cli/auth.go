package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tripcart/internal/client/services"
)

// Register prompts for a display name, username and password and creates
// the account. On success the new session is active.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, username, password); err != nil {
		return authFailure(err)
	}
	a.println("Welcome,", a.session.User().Username+"!")
	return nil
}

// Login prompts for credentials and signs in. A failed attempt leaves any
// existing session in place.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		return authFailure(err)
	}
	a.println("Login successful")
	return nil
}

// authFailure keeps the short message of a failed login or registration
// and appends the server's reason when there is one.
func authFailure(err error) error {
	var ae *services.AuthError
	if !errors.As(err, &ae) {
		return err
	}
	if reason := services.ErrorMessage(ae.Err); reason != "" && reason != ae.Msg {
		return fmt.Errorf("%s: %s", ae.Msg, reason)
	}
	return errors.New(ae.Msg)
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("Not signed in")
		return nil
	}
	a.printf("%s (@%s) id=%s\n", u.Name, u.Username, u.ID)
	return nil
}

// DeleteAccount asks for confirmation, deletes the account and ends the
// session.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type DELETE to remove your account permanently", a.out)
	if err != nil {
		return err
	}
	if answer != "DELETE" {
		a.println("Cancelled")
		return nil
	}
	if err := a.groups.DeleteAccount(ctx); err != nil {
		return err
	}
	a.println("Account deleted")
	return nil
}

// Forget signs out and erases the local store after confirmation. Settings
// return to their defaults.
func (a *App) Forget(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type FORGET to erase all local data", a.out)
	if err != nil {
		return err
	}
	if answer != "FORGET" {
		a.println("Cancelled")
		return nil
	}

	a.settings.Reset(ctx)
	n, err := a.session.Forget(ctx)
	if err != nil {
		return err
	}
	a.printf("Signed out, %d local entries erased\n", n)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

func (a *App) register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.api.Register(ctx, email, string(pw)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. Use 'login' to sign in.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.api.Login(ctx, email, string(pw)); err != nil {
		return err
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.userEmail = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

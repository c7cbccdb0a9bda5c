package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

// Prompt seams, swapped in tests.
var (
	promptLine   = PromptLine
	promptSecret = PromptSecret
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for a username, an email and a password and creates the
// account. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := promptLine(a.reader, os.Stdout, "Username")
	if err != nil {
		return err
	}
	email, err := promptLine(a.reader, os.Stdout, "Email")
	if err != nil {
		return err
	}

	password, err := promptSecret(a.reader, os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, email, password); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and runs the full login. On success the
// session (and its master key) is kept until logout.
func (a *App) Login(ctx context.Context) error {
	userName, err := promptLine(a.reader, os.Stdout, "Username")
	if err != nil {
		return err
	}

	password, err := promptSecret(a.reader, os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if a.isLoggedIn() {
		a.authService.Logout(ctx, a.session)
		a.session = nil
	}

	s, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.session = s
	a.userName = userName
	a.setMode(ModeOnline)
	fmt.Println("Login successful")
	return nil
}

// ChangePassword asks for the current password and the new one twice. The
// local session ends on success since the server revokes it.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	oldPassword, err := promptSecret(a.reader, os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := promptSecret(a.reader, os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	repeat, err := promptSecret(a.reader, os.Stdout, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if !bytes.Equal(newPassword, repeat) {
		return errPasswordMismatch
	}

	if err := a.authService.ChangePassword(ctx, a.session.Username, oldPassword, newPassword); err != nil {
		return err
	}

	_ = a.Logout(ctx)
	fmt.Println("Password changed, please log in again")
	return nil
}

// Logout wipes the master key and forgets the access token.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx, a.session)
	a.session = nil
	a.userName = ""
	return nil
}

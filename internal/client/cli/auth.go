package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dpetrovs/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username, a project id and a password and
// attempts to create a new account via the API client.
//
// On success it prints a confirmation and returns nil. The password byte
// slice is securely wiped before returning. Any I/O or API error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	projectID, err := getSimpleText(a.reader, "Enter project id (empty for the default project)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, userName, string(password), projectID); err != nil {
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// On success the client stores the issued token pair and a.userName is set
// for the prompt. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	projectID, err := getSimpleText(a.reader, "Enter project id (empty for the default project)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Authenticate(ctx, userName, string(password), projectID); err != nil {
		return err
	}

	a.userName = userName
	fmt.Println("Logged in.")
	return nil
}

// Refresh trades the stored refresh token for a fresh pair. The old refresh
// token is consumed server-side, so a subsequent replay of it would fail.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.api.Refresh(ctx); err != nil {
		return err
	}

	fmt.Println("Token pair rotated.")
	return nil
}

// Whoami calls the protected endpoint with the stored access token and prints
// the server's greeting. An expired access token is rotated transparently by
// the client before the request is retried.
func (a *App) Whoami(ctx context.Context) error {
	message, err := a.api.Protected(ctx)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

// Logout revokes the stored refresh token server-side and clears the cached
// pair. It is safe to call when not logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}

	a.userName = ""
	fmt.Println("Logged out.")
	return nil
}

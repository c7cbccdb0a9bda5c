package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/filex"
)

var errNotLoggedIn = errors.New("login first")

// readFile and writePrivateFile are test seams.
var (
	readFile         = os.ReadFile
	writePrivateFile = filex.WritePrivateFile
)

// Enroll seals the file at path under the master key and uploads it.
func (a *App) Enroll(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	data, err := readFile(path)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(data)

	if err := a.authService.EnrollTemplate(ctx, a.session, data); err != nil {
		return err
	}

	fmt.Println("Template enrolled")
	return nil
}

// Fetch downloads the template, opens it and writes the plaintext to the
// configured template directory.
func (a *App) Fetch(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	data, err := a.authService.FetchTemplate(ctx, a.session)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(data)

	name := base64.RawURLEncoding.EncodeToString([]byte(a.session.Username)) + ".tpl"
	path, err := writePrivateFile(a.config.TemplateDir, name, data)
	if err != nil {
		return err
	}

	fmt.Printf("Template written to %s\n", path)
	return nil
}

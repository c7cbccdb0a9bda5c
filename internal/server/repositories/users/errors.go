package users

import (
	"fmt"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

// Both wrap common.ErrorAlreadyExists; the detail tells the caller which
// field to change.
var (
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", common.ErrorAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
)

// Unique constraint names from the users migration.
const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

package domain

import "errors"

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
)

// User statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User holds back-office operator data.
type User struct {
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
	Status         string `json:"status"`
}

// UpdateUserParams is the patch applied to an operator user.
//
// A nil field leaves the stored value unchanged.
type UpdateUserParams struct {
	HashedPassword *string
	Status         *string
}

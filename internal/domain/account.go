// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberTaken indicates that the assigned account number collided with a concurrent creation.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrInsufficientFunds indicates that the withdrawal exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNonZeroBalance indicates that the account cannot be closed with a non-zero balance.
	ErrNonZeroBalance = errors.New("cannot close account with non-zero balance")
	// ErrInvalidAmount indicates that the amount is not a positive number.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrNegativeBalance indicates that the initial balance is negative.
	ErrNegativeBalance = errors.New("initial balance must not be negative")
	// ErrSecretTooShort indicates that the access secret is shorter than allowed.
	ErrSecretTooShort = errors.New("access secret must be at least 4 characters long")
)

// Account holds a customer's account data.
//
// Number is the public identifier assigned sequentially at creation;
// it is distinct from any internal storage key. AccessSecret holds the
// bcrypt hash of the holder's credential and is never serialized.
type Account struct {
	Number           int64     `json:"account_number"`
	CustomerDocument string    `json:"customer_document"`
	OpenedAt         time.Time `json:"opened_at"`
	Balance          string    `json:"balance"`
	AccessSecret     string    `json:"-"`

	// CustomerName is joined in at read time and never stored.
	CustomerName string `json:"customer_name,omitempty"`
}

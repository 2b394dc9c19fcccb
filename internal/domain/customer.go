package domain

import (
	"errors"
	"time"
)

var (
	// ErrCustomerNotFound indicates that the customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDocumentAlreadyExists indicates that a customer with the given document already exists.
	ErrDocumentAlreadyExists = errors.New("customer document already exists")
)

// Customer holds the account holder data.
//
// Document is the national identity document and the customer's
// unique external key.
type Customer struct {
	Document  string    `json:"document"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
}

// Package customerservice manages business logic layer of customers.
package customerservice

import (
	"context"
	"time"

	"github.com/monteverde/bank-backoffice/internal/domain"
)

// Repo provides data access layer interface needed by customer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package customerservice
type Repo interface {
	Create(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Customer, error)
	Update(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error)
	Delete(ctx context.Context, document string) error
	Exists(ctx context.Context, document string) (bool, error)
}

// Service facilitates customer service layer logic.
type Service struct {
	repo Repo
}

// New returns customer service struct to manage customer business logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

// Create registers and returns a customer.
func (s *Service) Create(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error) {
	return s.repo.Create(ctx, document, fullName, phone, birthDate)
}

// List returns the requested page of customers.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Customer, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}

// Update replaces the customer's mutable fields.
func (s *Service) Update(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error) {
	return s.repo.Update(ctx, document, fullName, phone, birthDate)
}

// Delete removes the customer with the given document.
func (s *Service) Delete(ctx context.Context, document string) error {
	return s.repo.Delete(ctx, document)
}

// Exists reports whether a customer with the given document is registered.
func (s *Service) Exists(ctx context.Context, document string) (bool, error) {
	return s.repo.Exists(ctx, document)
}

// Package userservice manages business logic layer of back-office operator users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/errorspkg"
	"github.com/monteverde/bank-backoffice/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, username, hashedPassword, status string) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, limit, offset int32) ([]domain.User, error)
	Update(ctx context.Context, username string, arg domain.UpdateUserParams) (domain.User, error)
	Delete(ctx context.Context, username string) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create hashes the password and creates the operator user.
// An empty status defaults to active.
func (s *Service) Create(ctx context.Context, username, password, status string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return u, errorspkg.ErrInternal
	}

	if status == "" {
		status = domain.UserStatusActive
	}

	return s.repo.Create(ctx, username, hashedPassword, status)
}

// List returns the requested page of operator users.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.User, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}

// Update patches the user. A non-empty password is re-hashed; the stored
// hash is never run through the hasher again.
func (s *Service) Update(ctx context.Context, username, password, status string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var arg domain.UpdateUserParams

	if password != "" {
		hashedPassword, err := passpkg.Hash(password)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.User{}, errorspkg.ErrInternal
		}

		arg.HashedPassword = &hashedPassword
	}

	if status != "" {
		arg.Status = &status
	}

	return s.repo.Update(ctx, username, arg)
}

// Delete removes the user with the given username.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return u, err
	}

	err = passpkg.Check(password, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return u, domain.ErrWrongPassword
	}

	return gotUser, nil
}

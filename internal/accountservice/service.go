// Package accountservice manages business logic layer of accounts.
//
// It is the only writer of account records: number assignment, the
// non-negative balance invariant and access secret hashing all live here.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/monteverde/bank-backoffice/internal/accountrepo"
	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/errorspkg"
	"github.com/monteverde/bank-backoffice/pkg/passpkg"
)

// MinSecretLength is the shortest accepted access secret.
const MinSecretLength = 4

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	MaxNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, arg accountrepo.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, number int64) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
	AddToBalance(ctx context.Context, amount string, number int64) (domain.Account, error)
	SetAccessSecret(ctx context.Context, hashedSecret string, number int64) (domain.Account, error)
	Delete(ctx context.Context, number int64) error
}

// CustomerChecker resolves customer references at account creation.
type CustomerChecker interface {
	Exists(ctx context.Context, document string) (bool, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	customers CustomerChecker
}

// New returns account service struct to manage account business logic.
func New(ar Repo, cc CustomerChecker) *Service {
	return &Service{repo: ar, customers: cc}
}

// Open creates an account for an existing customer.
//
// The pipeline is ordered: validate input, resolve the customer reference,
// hash the secret, assign the next account number, persist. It short-circuits
// on the first failure, so a rejected customer reference never reads the
// number sequence.
func (s *Service) Open(ctx context.Context, customerDocument string, openedAt time.Time, initialBalance, accessSecret string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	balance, err := decimal.NewFromString(initialBalance)
	if err != nil {
		return a, domain.ErrInvalidAmount
	}

	if balance.IsNegative() {
		return a, domain.ErrNegativeBalance
	}

	if len(accessSecret) < MinSecretLength {
		return a, domain.ErrSecretTooShort
	}

	exists, err := s.customers.Exists(ctx, customerDocument)
	if err != nil {
		return a, err
	}

	if !exists {
		return a, domain.ErrCustomerNotFound
	}

	hashedSecret, err := passpkg.Hash(accessSecret)
	if err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	max, err := s.repo.MaxNumber(ctx)
	if err != nil {
		return a, err
	}

	arg := accountrepo.CreateAccountParams{
		Number:           max + 1,
		CustomerDocument: customerDocument,
		OpenedAt:         openedAt,
		Balance:          balance.String(),
		HashedSecret:     hashedSecret,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the account with the given number.
func (s *Service) Get(ctx context.Context, number int64) (domain.Account, error) {
	return s.repo.Get(ctx, number)
}

// List returns the requested page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}

// Deposit adds the given positive amount to the account's balance.
func (s *Service) Deposit(ctx context.Context, number int64, amount string) (domain.Account, error) {
	delta, err := positiveAmount(amount)
	if err != nil {
		return domain.Account{}, err
	}

	return s.repo.AddToBalance(ctx, delta.String(), number)
}

// Withdraw subtracts the given positive amount from the account's balance.
//
// A withdrawal exceeding the balance fails with domain.ErrInsufficientFunds
// and leaves the balance unchanged.
func (s *Service) Withdraw(ctx context.Context, number int64, amount string) (domain.Account, error) {
	delta, err := positiveAmount(amount)
	if err != nil {
		return domain.Account{}, err
	}

	return s.repo.AddToBalance(ctx, delta.Neg().String(), number)
}

// UpdateAccessSecret hashes and persists a new access secret for the account.
func (s *Service) UpdateAccessSecret(ctx context.Context, number int64, newSecret string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	if len(newSecret) < MinSecretLength {
		return a, domain.ErrSecretTooShort
	}

	hashedSecret, err := passpkg.Hash(newSecret)
	if err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	return s.repo.SetAccessSecret(ctx, hashedSecret, number)
}

// Close permanently removes the account if its balance is exactly zero.
func (s *Service) Close(ctx context.Context, number int64) error {
	return s.repo.Delete(ctx, number)
}

func positiveAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return d, domain.ErrInvalidAmount
	}

	if !d.IsPositive() {
		return d, domain.ErrInvalidAmount
	}

	return d, nil
}

// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/dbpkg"
	"github.com/monteverde/bank-backoffice/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateAccountParams is the input data to insert an account row.
type CreateAccountParams struct {
	Number           int64
	CustomerDocument string
	OpenedAt         time.Time
	Balance          string
	HashedSecret     string
}

const maxNumberQuery = `
SELECT COALESCE(MAX(account_number), 0)
FROM accounts
`

// MaxNumber returns the greatest assigned account number, or 0 if no accounts exist.
//
// The read is not atomic with the subsequent insert; a concurrent creation
// may observe the same maximum. The unique index on account_number turns
// that race into domain.ErrAccountNumberTaken at insert time.
func (r *RepoPGS) MaxNumber(ctx context.Context) (int64, error) {
	l := zerolog.Ctx(ctx)

	var max int64

	err := r.db.QueryRowContext(ctx, maxNumberQuery).Scan(&max)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return max, nil
}

const createQuery = `
INSERT INTO
    accounts (account_number, customer_document, opened_at, balance, access_secret)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING account_number, customer_document, opened_at, balance, access_secret
`

// Create inserts the account row and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Number,
		arg.CustomerDocument,
		arg.OpenedAt,
		arg.Balance,
		arg.HashedSecret,
	)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.CustomerDocument,
		&a.OpenedAt,
		&a.Balance,
		&a.AccessSecret,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_pkey", "accounts_account_number_key":
				return a, domain.ErrAccountNumberTaken
			case "accounts_customer_document_fkey":
				return a, domain.ErrCustomerNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	a.account_number, a.customer_document, a.opened_at, a.balance, a.access_secret,
	COALESCE(c.full_name, '')
FROM accounts a
LEFT JOIN customers c ON c.document = a.customer_document
WHERE a.account_number = $1
`

// Get returns the account with the given number, including
// the holder's display name joined in at read time.
func (r *RepoPGS) Get(ctx context.Context, number int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.CustomerDocument,
		&a.OpenedAt,
		&a.Balance,
		&a.AccessSecret,
		&a.CustomerName,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	a.account_number, a.customer_document, a.opened_at, a.balance, a.access_secret,
	COALESCE(c.full_name, '')
FROM accounts a
LEFT JOIN customers c ON c.document = a.customer_document
ORDER BY a.account_number
LIMIT $1 OFFSET $2
`

// List returns the specified page of accounts ordered by account number.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.Number, &a.CustomerDocument, &a.OpenedAt, &a.Balance, &a.AccessSecret, &a.CustomerName); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const addToBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_number = $2
RETURNING account_number, customer_document, opened_at, balance, access_secret
`

// AddToBalance applies the given signed delta to the account's balance
// in a single statement and returns the changed account.
//
// The accounts_balance_check constraint rejects any update that would
// drive the balance negative.
func (r *RepoPGS) AddToBalance(ctx context.Context, amount string, number int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addToBalanceQuery, amount, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.CustomerDocument,
		&a.OpenedAt,
		&a.Balance,
		&a.AccessSecret,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setAccessSecretQuery = `
UPDATE accounts
SET access_secret = $1
WHERE account_number = $2
RETURNING account_number, customer_document, opened_at, balance, access_secret
`

// SetAccessSecret replaces the account's hashed access secret.
func (r *RepoPGS) SetAccessSecret(ctx context.Context, hashedSecret string, number int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setAccessSecretQuery, hashedSecret, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.CustomerDocument,
		&a.OpenedAt,
		&a.Balance,
		&a.AccessSecret,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE account_number = $1 AND balance = 0
`

const existsQuery = `
SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)
`

// Delete removes the account with the given number if its balance is exactly zero.
//
// The balance condition is part of the DELETE itself so a concurrent
// deposit cannot slip between the check and the removal.
func (r *RepoPGS) Delete(ctx context.Context, number int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, number)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsQuery, number).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if exists {
		return domain.ErrNonZeroBalance
	}

	return domain.ErrAccountNotFound
}

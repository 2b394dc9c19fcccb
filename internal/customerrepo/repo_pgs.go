// Package customerrepo manages repository layer of customers.
package customerrepo

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

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    customers (document, full_name, phone, birth_date)
VALUES
    ($1, $2, $3, $4)
RETURNING document, full_name, phone, birth_date
`

// Create inserts the customer and then returns it.
func (r *RepoPGS) Create(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, document, fullName, phone, birthDate)

	var c domain.Customer

	err := row.Scan(&c.Document, &c.FullName, &c.Phone, &c.BirthDate)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return c, domain.ErrDocumentAlreadyExists
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT document, full_name, phone, birth_date
FROM customers
ORDER BY document
LIMIT $1 OFFSET $2
`

// List returns the specified page of customers ordered by document.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Customer{}

	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.Document, &c.FullName, &c.Phone, &c.BirthDate); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE customers
SET full_name = $2, phone = $3, birth_date = $4
WHERE document = $1
RETURNING document, full_name, phone, birth_date
`

// Update replaces the customer's mutable fields and returns the changed customer.
func (r *RepoPGS) Update(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, document, fullName, phone, birthDate)

	var c domain.Customer

	err := row.Scan(&c.Document, &c.FullName, &c.Phone, &c.BirthDate)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const deleteQuery = `
DELETE FROM customers
WHERE document = $1
`

// Delete removes the customer with the given document.
func (r *RepoPGS) Delete(ctx context.Context, document string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, document)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

const existsQuery = `
SELECT EXISTS (SELECT 1 FROM customers WHERE document = $1)
`

// Exists reports whether a customer with the given document is registered.
func (r *RepoPGS) Exists(ctx context.Context, document string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	err := r.db.QueryRowContext(ctx, existsQuery, document).Scan(&exists)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

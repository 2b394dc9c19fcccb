// Package userrepo manages repository layer of back-office operator users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/dbpkg"
	"github.com/monteverde/bank-backoffice/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO users (username, hashed_password, status)
VALUES ($1, $2, $3)
RETURNING username, hashed_password, status
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, username, hashedPassword, status string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, hashedPassword, status)

	var u domain.User

	err := row.Scan(&u.Username, &u.HashedPassword, &u.Status)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return u, domain.ErrUsernameAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT username, hashed_password, status
FROM users
WHERE username = $1
`

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, username)

	var u domain.User

	err := row.Scan(&u.Username, &u.HashedPassword, &u.Status)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listQuery = `
SELECT username, hashed_password, status
FROM users
ORDER BY username
LIMIT $1 OFFSET $2
`

// List returns the specified page of users ordered by username.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.User{}

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.HashedPassword, &u.Status); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE users
SET hashed_password = COALESCE($2, hashed_password),
    status = COALESCE($3, status)
WHERE username = $1
RETURNING username, hashed_password, status
`

// Update patches the user's password hash and status, keeping
// stored values for nil fields.
func (r *RepoPGS) Update(ctx context.Context, username string, arg domain.UpdateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, username, arg.HashedPassword, arg.Status)

	var u domain.User

	err := row.Scan(&u.Username, &u.HashedPassword, &u.Status)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const deleteQuery = `
DELETE FROM users
WHERE username = $1
`

// Delete removes the user with the given username.
func (r *RepoPGS) Delete(ctx context.Context, username string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, username)
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
		return domain.ErrUserNotFound
	}

	return nil
}

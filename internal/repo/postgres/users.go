package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dochub/internal/domain/user"
	"dochub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, firstname, lastname, email, password_hash, role_id, active, created_at, updated_at`

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
		&u.RoleID,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

// mapUniqueViolation turns a 23505 on one of the users unique indexes
// into the matching domain sentinel.
func mapUserUnique(err error) error {
	constraint := uniqueConstraint(err)

	switch {
	case strings.Contains(constraint, "username"):
		return user.ErrUsernameTaken
	case strings.Contains(constraint, "email"):
		return user.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	var created user.User

	err := r.prom.ObserveDB("users.create", func() error {
		var scanErr error
		created, scanErr = scanUser(r.pool.QueryRow(ctx,
			`INSERT INTO users (username, firstname, lastname, email, password_hash, role_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+userColumns,
			u.Username, u.Firstname, u.Lastname, u.Email, u.PasswordHash, u.RoleID,
		))
		return scanErr
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, mapUserUnique(err)
		}
		return user.User{}, err
	}

	return created, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// GetByLogin resolves a login identifier, which may be a username or an
// email address.
func (r *UsersRepo) GetByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get_by_login", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, login))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, limit, offset int) ([]user.User, int, error) {
	query := `SELECT ` + userColumns + `, COUNT(*) OVER() AS total FROM users ORDER BY id ASC`
	var args []interface{}
	argsPosition := 1

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argsPosition)
		args = append(args, limit)
		argsPosition++
	}

	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argsPosition)
		args = append(args, offset)
	}

	var output []user.User
	total := 0

	err := r.prom.ObserveDB("users.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]user.User, 0, limit)

		for rows.Next() {
			var u user.User
			var t int

			err = rows.Scan(
				&u.ID, &u.Username, &u.Firstname, &u.Lastname, &u.Email,
				&u.PasswordHash, &u.RoleID, &u.Active, &u.CreatedAt, &u.UpdatedAt, &t,
			)

			if err != nil {
				return err
			}

			total = t
			output = append(output, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

// Update applies a partial patch. PasswordHash must already be derived
// by the caller when the password changes.
func (r *UsersRepo) Update(ctx context.Context, id int64, firstname, lastname, email, passwordHash *string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.update", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(ctx,
			`UPDATE users
				SET firstname = COALESCE($2, firstname),
						lastname = COALESCE($3, lastname),
						email = COALESCE($4, email),
						password_hash = COALESCE($5, password_hash),
						updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+userColumns,
			id, firstname, lastname, email, passwordHash,
		))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		if IsUniqueViolation(err) {
			return user.User{}, mapUserUnique(err)
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.prom.ObserveDB("users.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return user.ErrNotFound
		}

		return nil
	})
}

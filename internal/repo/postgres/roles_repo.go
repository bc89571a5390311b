package postgres

import (
	"context"
	"errors"

	"dochub/internal/domain/role"
	"dochub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RolesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRolesRepo(pool *pgxpool.Pool, prom *observability.Prom) *RolesRepo {
	return &RolesRepo{pool: pool, prom: prom}
}

func (r *RolesRepo) Create(ctx context.Context, title string) (role.Role, error) {
	var created role.Role

	err := r.prom.ObserveDB("roles.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO roles (title) VALUES ($1)
			 RETURNING id, title, created_at, updated_at`,
			title,
		).Scan(&created.ID, &created.Title, &created.CreatedAt, &created.UpdatedAt)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return role.Role{}, role.ErrTitleTaken
		}
		return role.Role{}, err
	}

	return created, nil
}

func (r *RolesRepo) GetByID(ctx context.Context, id int64) (role.Role, error) {
	var found role.Role

	err := r.prom.ObserveDB("roles.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, created_at, updated_at FROM roles WHERE id = $1`, id,
		).Scan(&found.ID, &found.Title, &found.CreatedAt, &found.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}
		return role.Role{}, err
	}

	return found, nil
}

func (r *RolesRepo) List(ctx context.Context) ([]role.Role, error) {
	var output []role.Role

	err := r.prom.ObserveDB("roles.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, created_at, updated_at FROM roles ORDER BY id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]role.Role, 0, 8)

		for rows.Next() {
			var item role.Role

			err = rows.Scan(&item.ID, &item.Title, &item.CreatedAt, &item.UpdatedAt)

			if err != nil {
				return err
			}

			output = append(output, item)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *RolesRepo) Update(ctx context.Context, id int64, title string) (role.Role, error) {
	var updated role.Role

	err := r.prom.ObserveDB("roles.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE roles SET title = $2, updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, title, created_at, updated_at`,
			id, title,
		).Scan(&updated.ID, &updated.Title, &updated.CreatedAt, &updated.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}
		if IsUniqueViolation(err) {
			return role.Role{}, role.ErrTitleTaken
		}
		return role.Role{}, err
	}

	return updated, nil
}

func (r *RolesRepo) Delete(ctx context.Context, id int64) error {
	return r.prom.ObserveDB("roles.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return role.ErrNotFound
		}

		return nil
	})
}

package db

import (
	"context"
	"errors"

	"dochub/internal/config"
	"dochub/internal/domain/role"
	"dochub/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSystemRoles pins the reserved admin/regular roles to their
// fixed ids. The sequence is bumped past them so user-created roles
// never collide.
func EnsureSystemRoles(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO roles (id, title)
		VALUES ($1, 'admin'), ($2, 'regular')
		ON CONFLICT (id) DO NOTHING
	`, role.AdminID, role.RegularID)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		SELECT setval('roles_id_seq', GREATEST((SELECT MAX(id) FROM roles), $1))
	`, role.RegularID)

	return err
}

func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1 OR email = $2`,
		cfg.AdminUsername, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, firstname, lastname, email, password_hash, role_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		cfg.AdminUsername, "System", "Admin", cfg.AdminEmail, hash, role.AdminID,
	)

	return err
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dochub/internal/domain/document"
	"dochub/internal/observability"
	"dochub/internal/policy"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewDocumentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *DocumentsRepo {
	return &DocumentsRepo{pool: pool, prom: prom}
}

func (r *DocumentsRepo) Create(ctx context.Context, ownerID int64, req document.CreateDocumentRequest) (document.Document, error) {
	var d document.Document
	op := "documents.create"

	err := r.prom.ObserveDB(op, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO documents(title, content, access, owner_id)
			 VALUES($1, $2, $3, $4)
			 RETURNING id, title, content, access, owner_id, created_at, updated_at`,
			req.Title, req.Content, req.Access, ownerID,
		).Scan(&d.ID, &d.Title, &d.Content, &d.Access, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt)
	})

	if err != nil {
		return document.Document{}, err
	}

	return d, nil
}

// GetByID also returns the owner's role id, which the access policy
// needs for role-scoped documents.
func (r *DocumentsRepo) GetByID(ctx context.Context, id int64) (document.Document, int64, error) {
	var d document.Document
	var ownerRoleID int64

	err := r.prom.ObserveDB("documents.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT d.id, d.title, d.content, d.access, d.owner_id, d.created_at, d.updated_at, u.role_id
			 FROM documents d
			 JOIN users u ON u.id = d.owner_id
			 WHERE d.id = $1`,
			id,
		).Scan(&d.ID, &d.Title, &d.Content, &d.Access, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt, &ownerRoleID)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, 0, document.ErrNotFound
		}
		return document.Document{}, 0, err
	}

	return d, ownerRoleID, nil
}

// List renders the visibility predicate plus the filter into one query.
// The filter is applied before the slice so the total only counts rows
// the requester may see.
func (r *DocumentsRepo) List(ctx context.Context, vis policy.Visibility, f document.ListFilter) ([]document.Document, int, error) {
	baseQuery :=
		`SELECT d.id,
		d.title,
		d.content,
		d.access,
		d.owner_id,
		d.created_at,
		d.updated_at,
		COUNT(*) OVER() AS TOTAL
	FROM documents d
	JOIN users u ON u.id = d.owner_id
	`

	var conds []string
	var args []interface{}

	argsPosition := 1

	// visibility predicate, unless the requester sees everything
	if !vis.All {
		conds = append(conds, fmt.Sprintf(
			"(d.owner_id = $%d OR d.access = 'public' OR (d.access = 'role' AND u.role_id = $%d))",
			argsPosition, argsPosition+1))
		args = append(args, vis.UserID, vis.RoleID)
		argsPosition += 2
	}

	// restrict to a single owner's documents

	if f.OwnerID != nil {
		conds = append(conds, fmt.Sprintf("d.owner_id = $%d", argsPosition))
		args = append(args, *f.OwnerID)
		argsPosition++
	}

	// search terms: any term matching title OR content qualifies
	if len(f.Terms) > 0 {
		termConds := make([]string, 0, len(f.Terms))

		for _, term := range f.Terms {
			termConds = append(termConds, fmt.Sprintf(
				"(d.title ILIKE $%d OR d.content ILIKE $%d)", argsPosition, argsPosition))
			args = append(args, "%"+term+"%")
			argsPosition++
		}

		conds = append(conds, "("+strings.Join(termConds, " OR ")+")")
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	direction := "DESC"
	if f.SortAsc {
		direction = "ASC"
	}

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY d.created_at %s, d.id %s", direction, direction)

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argsPosition)
		args = append(args, f.Limit)
		argsPosition++
	}

	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argsPosition)
		args = append(args, f.Offset)
	}

	var output []document.Document
	total := 0

	err := r.prom.ObserveDB("documents.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]document.Document, 0, f.Limit)

		for rows.Next() {
			var d document.Document
			var t int

			err = rows.Scan(&d.ID, &d.Title, &d.Content, &d.Access, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, d)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *DocumentsRepo) Update(ctx context.Context, id int64, req document.UpdateDocumentRequest) (document.Document, error) {
	var d document.Document

	err := r.prom.ObserveDB("documents.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE documents
				SET title = COALESCE($2, title),
						content = COALESCE($3, content),
						access = COALESCE($4, access),
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, content, access, owner_id, created_at, updated_at`,
			id,
			req.Title,
			req.Content,
			req.Access,
		).Scan(
			&d.ID,
			&d.Title,
			&d.Content,
			&d.Access,
			&d.OwnerID,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		// if it is any other type of error
		return document.Document{}, err
	}

	return d, nil
}

func (r *DocumentsRepo) Delete(ctx context.Context, id int64) error {
	return r.prom.ObserveDB("documents.delete", func() error {
		tag, err := r.pool.Exec(ctx, `
			DELETE FROM documents WHERE id = $1
		`, id)

		if err != nil {
			return err
		}

		// if no rows were deleted as a result return a not found error
		if tag.RowsAffected() == 0 {
			return document.ErrNotFound
		}

		return nil
	})
}

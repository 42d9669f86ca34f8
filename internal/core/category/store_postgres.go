// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/yonota/internal/platform/database/schema"
	"github.com/taibuivan/yonota/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreCategory.Table)

	args := []any{}
	countArgs := []any{}

	if search != "" {
		searchTerm := "%" + search + "%"
		query += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.CoreCategory.Name)
		countQuery += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.CoreCategory.Name)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.CoreCategory.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)

	return c, dberr.Wrap(err, "get_category_by_slug")
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteCategoryBySlug(context context.Context, slug string) error {
	// Titles referencing the category keep their rows; the FK is ON DELETE
	// SET NULL so they simply lose their classification.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

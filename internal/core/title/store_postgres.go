// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
	"github.com/taibuivan/yonota/internal/platform/constants"
	"github.com/taibuivan/yonota/internal/platform/database/schema"
	"github.com/taibuivan/yonota/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectClause joins the title row with its category and the on-read rating
// aggregate. Aliases: t = title, c = category, r = per-title rating.
func selectClause() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       r.rating,
		       c.%s, c.%s, c.%s
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		LEFT JOIN (
			SELECT %s, ROUND(AVG(%s)::numeric, %d)::float8 AS rating
			FROM %s
			GROUP BY %s
		) r ON r.%s = t.%s
	`,
		schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreTitle.Table,
		schema.CoreCategory.Table, schema.CoreTitle.CategoryID, schema.CoreCategory.ID,
		schema.SocialReview.TitleID, schema.SocialReview.Score, constants.RatingPrecision,
		schema.SocialReview.Table, schema.SocialReview.TitleID,
		schema.SocialReview.TitleID, schema.CoreTitle.ID,
	)
}

func (repository *PostgresRepository) ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error) {
	conditions := []string{}
	args := []any{}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", schema.CoreTitle.Name, len(args)))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.CoreTitle.Year, len(args)))
	}
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", schema.CoreCategory.Slug, len(args)))
	}
	if f.GenreSlug != "" {
		args = append(args, f.GenreSlug)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s WHERE tg.%s = t.%s AND g.%s = $%d)`,
			schema.CoreTitleGenre.Table, schema.CoreGenre.Table,
			schema.CoreGenre.ID, schema.CoreTitleGenre.GenreID,
			schema.CoreTitleGenre.TitleID, schema.CoreTitle.ID,
			schema.CoreGenre.Slug, len(args),
		))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t LEFT JOIN %s c ON t.%s = c.%s%s`,
		schema.CoreTitle.Table, schema.CoreCategory.Table,
		schema.CoreTitle.CategoryID, schema.CoreCategory.ID, whereClause,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := selectClause() + whereClause +
		fmt.Sprintf(" ORDER BY t.%s ASC LIMIT $%d OFFSET $%d", schema.CoreTitle.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows.Scan)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
	}

	if err := repository.loadGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetTitle(context context.Context, id int) (*Title, error) {
	query := selectClause() + fmt.Sprintf(" WHERE t.%s = $1", schema.CoreTitle.ID)

	t, err := scanTitle(repository.db.QueryRow(context, query, id).Scan)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title")
	}

	if err := repository.loadGenres(context, []*Title{t}); err != nil {
		return nil, err
	}

	return t, nil
}

func (repository *PostgresRepository) TitleExists(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreTitle.Table, schema.CoreTitle.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) CreateTitle(context context.Context, t *Title, genreIDs []int) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_title_begin")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CategoryID, schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
	)

	err = tx.QueryRow(context, query, t.Name, t.Year, t.Description, categoryID(t)).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenres(context, tx, t.ID, genreIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "create_title_commit")
}

func (repository *PostgresRepository) UpdateTitle(context context.Context, t *Title, genreIDs []int, replaceGenres bool) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_title_begin")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CategoryID, schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.UpdatedAt,
	)

	err = tx.QueryRow(context, query, t.ID, t.Name, t.Year, t.Description, categoryID(t)).Scan(&t.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}

	if replaceGenres {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID,
		)
		if _, err := tx.Exec(context, deleteQuery, t.ID); err != nil {
			return dberr.Wrap(err, "update_title_clear_genres")
		}
		if err := insertGenres(context, tx, t.ID, genreIDs); err != nil {
			return err
		}
	}

	return dberr.Wrap(tx.Commit(context), "update_title_commit")
}

func (repository *PostgresRepository) DeleteTitle(context context.Context, id int) error {
	// Reviews and their comments cascade at the schema level.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreTitle.Table, schema.CoreTitle.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Helpers

// insertGenres writes one junction row per genre ID inside the transaction.
func insertGenres(context context.Context, tx pgx.Tx, titleID int, genreIDs []int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID, schema.CoreTitleGenre.GenreID,
	)

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, query, titleID, genreID); err != nil {
			return dberr.Wrap(err, "insert_title_genre")
		}
	}
	return nil
}

// scanTitle hydrates one joined row. The category columns are nullable
// because a title survives its category's deletion.
func scanTitle(scan func(dest ...any) error) (*Title, error) {
	t := &Title{Genres: make([]genre.Genre, 0)}

	var catID *int
	var catName, catSlug *string

	err := scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		&t.Rating,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil {
		t.Category = &category.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	return t, nil
}

// loadGenres hydrates the genre lists for a batch of titles in one query.
func (repository *PostgresRepository) loadGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int, 0, len(titles))
	byID := make(map[int]*Title, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		schema.CoreTitleGenre.TitleID, schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreTitleGenre.Table, schema.CoreGenre.Table,
		schema.CoreGenre.ID, schema.CoreTitleGenre.GenreID,
		schema.CoreTitleGenre.TitleID, schema.CoreGenre.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "load_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		g := genre.Genre{}
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}

	return nil
}

// categoryID extracts the nullable FK value for persistence.
func categoryID(t *Title) any {
	if t.Category == nil {
		return nil
	}
	return t.Category.ID
}

// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// reviewSelect joins the author's username in. Aliases: r = review, u = account.
func reviewSelect() string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, u.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
	`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.Body,
		schema.SocialReview.Score, schema.SocialReview.AuthorID, schema.SocialReview.PubDate,
		schema.UserAccount.Username,
		schema.SocialReview.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialReview.AuthorID,
	)
}

func (repository *PostgresRepository) ListReviews(context context.Context, titleID int, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.TitleID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := reviewSelect() + fmt.Sprintf(
		` WHERE r.%s = $1 ORDER BY r.%s DESC LIMIT $2 OFFSET $3`,
		schema.SocialReview.TitleID, schema.SocialReview.PubDate,
	)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.TitleID, &r.Body, &r.Score, &r.AuthorID, &r.PubDate, &r.Author); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	query := reviewSelect() + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`,
		schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	r := &Review{}
	err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(
		&r.ID, &r.TitleID, &r.Body, &r.Score, &r.AuthorID, &r.PubDate, &r.Author,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, reviewID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) HasAuthorReview(context context.Context, titleID int, authorID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "has_author_review")
	}
	return exists, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s, %s
	`,
		schema.SocialReview.Table, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
		schema.SocialReview.Body, schema.SocialReview.Score, schema.SocialReview.PubDate,
		schema.SocialReview.ID, schema.SocialReview.PubDate,
	)

	err := repository.db.QueryRow(context, query, r.TitleID, r.AuthorID, r.Body, r.Score).
		Scan(&r.ID, &r.PubDate)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	// pubdate is intentionally not in the SET list: it marks first publication.
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.Body, schema.SocialReview.Score,
		schema.SocialReview.ID,
	)

	cmd, err := repository.db.Exec(context, query, r.ID, r.Body, r.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	cmd, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

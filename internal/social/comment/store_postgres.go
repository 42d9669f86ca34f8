// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// commentSelect joins the author's username in. Aliases: c = comment, u = account.
func commentSelect() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, u.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
	`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.Body,
		schema.SocialComment.AuthorID, schema.SocialComment.PubDate,
		schema.UserAccount.Username,
		schema.SocialComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.AuthorID,
	)
}

func (repository *PostgresRepository) ListComments(context context.Context, reviewID int, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ReviewID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := commentSelect() + fmt.Sprintf(
		` WHERE c.%s = $1 ORDER BY c.%s ASC LIMIT $2 OFFSET $3`,
		schema.SocialComment.ReviewID, schema.SocialComment.PubDate,
	)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.Body, &c.AuthorID, &c.PubDate, &c.Author); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int) (*Comment, error) {
	query := commentSelect() + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID,
	)

	c := &Comment{}
	err := repository.db.QueryRow(context, query, commentID, reviewID).Scan(
		&c.ID, &c.ReviewID, &c.Body, &c.AuthorID, &c.PubDate, &c.Author,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s, %s
	`,
		schema.SocialComment.Table, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
		schema.SocialComment.Body, schema.SocialComment.PubDate,
		schema.SocialComment.ID, schema.SocialComment.PubDate,
	)

	err := repository.db.QueryRow(context, query, c.ReviewID, c.AuthorID, c.Body).
		Scan(&c.ID, &c.PubDate)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) UpdateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.Body, schema.SocialComment.ID,
	)

	cmd, err := repository.db.Exec(context, query, c.ID, c.Body)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialComment.Table, schema.SocialComment.ID, schema.SocialComment.ReviewID,
	)

	cmd, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

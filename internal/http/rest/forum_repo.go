package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

func (api *API) CreateForumPostRepo(ctx context.Context, post model.ForumPost) (model.ForumPost, error) {
	query := `
        INSERT INTO forum_posts (user_id, title, slug, content, category)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, user_id, title, slug, content, category, likes, replies, active, created_at, updated_at`

	var created model.ForumPost
	err := api.DB.QueryRow(ctx, query,
		post.UserID, post.Title, post.Slug, post.Content, post.Category,
	).Scan(
		&created.ID, &created.UserID, &created.Title, &created.Slug, &created.Content,
		&created.Category, &created.Likes, &created.Replies, &created.Active,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return model.ForumPost{}, err
	}
	return created, nil
}

func (api *API) GetForumPostRepo(ctx context.Context, id int64) (model.ForumPost, error) {
	query := `
        SELECT id, user_id, title, slug, content, category, likes, replies, active, created_at, updated_at
        FROM forum_posts
        WHERE id = $1 AND active = TRUE`

	var post model.ForumPost
	err := api.DB.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
		&post.Category, &post.Likes, &post.Replies, &post.Active,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return model.ForumPost{}, err
	}
	return post, nil
}

func (api *API) ListForumPostsRepo(ctx context.Context, category string, page, pageSize int) ([]model.ForumPost, error) {
	query := `
        SELECT id, user_id, title, slug, content, category, likes, replies, active, created_at, updated_at
        FROM forum_posts
        WHERE active = TRUE`

	args := []interface{}{}
	argCount := 0

	if category != "" {
		argCount++
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, category)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying forum posts: %w", err)
	}
	defer rows.Close()

	var posts []model.ForumPost
	for rows.Next() {
		var post model.ForumPost
		err := rows.Scan(
			&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
			&post.Category, &post.Likes, &post.Replies, &post.Active,
			&post.CreatedAt, &post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning forum post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (api *API) UpdateForumPostRepo(ctx context.Context, id int64, req model.UpdatePostRequest) (model.ForumPost, error) {
	query := `
        UPDATE forum_posts
        SET title = COALESCE(NULLIF($2, ''), title),
            content = COALESCE(NULLIF($3, ''), content),
            category = COALESCE(NULLIF($4, ''), category),
            updated_at = NOW()
        WHERE id = $1 AND active = TRUE
        RETURNING id, user_id, title, slug, content, category, likes, replies, active, created_at, updated_at`

	var post model.ForumPost
	err := api.DB.QueryRow(ctx, query, id, req.Title, req.Content, req.Category).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
		&post.Category, &post.Likes, &post.Replies, &post.Active,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return model.ForumPost{}, err
	}
	return post, nil
}

func (api *API) DeactivateForumPostRepo(ctx context.Context, id int64) error {
	query := `UPDATE forum_posts SET active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := api.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (api *API) LikeForumPostRepo(ctx context.Context, id int64) (int, error) {
	query := `
        UPDATE forum_posts
        SET likes = likes + 1, updated_at = NOW()
        WHERE id = $1 AND active = TRUE
        RETURNING likes`

	var likes int
	err := api.DB.QueryRow(ctx, query, id).Scan(&likes)
	if err != nil {
		log.Println("error liking post", err)
		return 0, err
	}
	return likes, nil
}

// AddForumCommentRepo inserts the comment and bumps the post's reply
// counter in the same transaction.
func (api *API) AddForumCommentRepo(ctx context.Context, comment model.ForumComment) (model.ForumComment, error) {
	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		stmt := `
            UPDATE forum_posts
            SET replies = replies + 1, updated_at = NOW()
            WHERE id = $1 AND active = TRUE
            RETURNING id`

		var postID int64
		if err := tx.QueryRow(ctx, stmt, comment.PostID).Scan(&postID); err != nil {
			return err
		}

		stmt = `
            INSERT INTO forum_comments (post_id, user_id, content)
            VALUES ($1, $2, $3)
            RETURNING id, created_at`

		return tx.QueryRow(ctx, stmt, comment.PostID, comment.UserID, comment.Content).
			Scan(&comment.ID, &comment.CreatedAt)
	})
	if err != nil {
		return model.ForumComment{}, err
	}
	return comment, nil
}

func (api *API) GetForumCommentsRepo(ctx context.Context, postID int64) ([]model.ForumComment, error) {
	query := `
        SELECT id, post_id, user_id, content, created_at
        FROM forum_comments
        WHERE post_id = $1
        ORDER BY created_at ASC`

	rows, err := api.DB.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.ForumComment
	for rows.Next() {
		var comment model.ForumComment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

package rest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util"
	"github.com/raastabuzz/raastabuzz-api/util/values"
)

// CreateForumPostHelper derives the post slug from the title and retries
// with a fresh suffix when it collides with an existing one.
func (api *API) CreateForumPostHelper(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (model.ForumPost, string, string, error) {
	base := util.Slugify(req.Title)

	maxAttempts := 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		post := model.ForumPost{
			UserID:   userID,
			Title:    req.Title,
			Slug:     base + "-" + util.GenerateShortCode(6),
			Content:  req.Content,
			Category: req.Category,
		}

		created, err := api.CreateForumPostRepo(ctx, post)
		if err == nil {
			return created, values.Created, "Post created successfully", nil
		}
		// Unique violation on the slug means the suffix collided
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" && pgErr.ConstraintName == "forum_posts_slug_key" {
			continue
		}
		return model.ForumPost{}, values.Error, "Failed to create post", err
	}
	return model.ForumPost{}, values.Error, "Could not generate unique post slug", nil
}

func (api *API) GetForumPostHelper(ctx context.Context, id int64) (model.ForumPost, string, string, error) {
	post, err := api.GetForumPostRepo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ForumPost{}, values.NotFound, "Post not found", err
		}
		return model.ForumPost{}, values.Error, "Failed to fetch post", err
	}
	return post, values.Success, "Post fetched successfully", nil
}

// UpdateForumPostHelper applies partial edits to a post. Only the owner or
// a moderator may edit; the slug stays stable across title changes.
func (api *API) UpdateForumPostHelper(ctx context.Context, id int64, userID uuid.UUID, role string, req model.UpdatePostRequest) (model.ForumPost, string, string, error) {
	post, err := api.GetForumPostRepo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ForumPost{}, values.NotFound, "Post not found", err
		}
		return model.ForumPost{}, values.Error, "Failed to fetch post", err
	}

	if post.UserID != userID && role != model.RoleModerator {
		return model.ForumPost{}, values.NotAllowed, "You cannot edit this post", errors.New("not post owner")
	}

	updated, err := api.UpdateForumPostRepo(ctx, id, req)
	if err != nil {
		return model.ForumPost{}, values.Error, "Failed to update post", err
	}
	return updated, values.Success, "Post updated successfully", nil
}

func (api *API) DeleteForumPostHelper(ctx context.Context, id int64, userID uuid.UUID, role string) (string, string, error) {
	post, err := api.GetForumPostRepo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return values.NotFound, "Post not found", err
		}
		return values.Error, "Failed to fetch post", err
	}

	if post.UserID != userID && role != model.RoleModerator {
		return values.NotAllowed, "You cannot delete this post", errors.New("not post owner")
	}

	if err := api.DeactivateForumPostRepo(ctx, id); err != nil {
		return values.Error, "Failed to delete post", err
	}
	return values.Success, "Post deleted successfully", nil
}

func (api *API) AddForumCommentHelper(ctx context.Context, comment model.ForumComment) (model.ForumComment, string, string, error) {
	saved, err := api.AddForumCommentRepo(ctx, comment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ForumComment{}, values.NotFound, "Post not found", err
		}
		return model.ForumComment{}, values.Error, "Failed to add comment", err
	}
	return saved, values.Success, "Comment added successfully", nil
}

package rest

import (
	"context"

	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

func (api *API) UpdateUserRepo(ctx context.Context, user model.User) error {
	stmt := `
        UPDATE users
        SET firstname = $2, lastname = $3, username = $4, updated_at = NOW()
        WHERE id = $1
    `
	_, err := api.DB.Exec(ctx, stmt, user.ID, user.FirstName, user.LastName, user.Username)
	if err != nil {
		return err
	}
	return nil
}

func (api *API) UpdateLanguageRepo(ctx context.Context, userID, language string) error {
	stmt := `
        UPDATE users
        SET preferred_language = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := api.DB.Exec(ctx, stmt, userID, language)
	if err != nil {
		return err
	}
	return nil
}

// GetUserStatsRepo aggregates the user's reporting activity.
func (api *API) GetUserStatsRepo(ctx context.Context, userID string) (model.UserStats, error) {
	var stats model.UserStats
	stmt := `
        SELECT
            (SELECT COUNT(*) FROM reports WHERE user_id = $1 AND active = TRUE),
            (SELECT COUNT(*) FROM reports WHERE user_id = $1 AND verified = TRUE),
            (SELECT points FROM users WHERE id = $1)
    `
	err := api.DB.QueryRow(ctx, stmt, userID).Scan(
		&stats.ActiveReports,
		&stats.VerifiedReports,
		&stats.Points,
	)
	if err != nil {
		return model.UserStats{}, err
	}
	return stats, nil
}

// AddUserPointsRepo bumps the user's contribution points. Report creation
// and verification award points.
func (api *API) AddUserPointsRepo(ctx context.Context, userID string, points int) error {
	stmt := `UPDATE users SET points = points + $2, updated_at = NOW() WHERE id = $1`

	_, err := api.DB.Exec(ctx, stmt, userID, points)
	return err
}

// DeleteUserRepo soft deletes the account so existing reports keep a valid
// author reference.
func (api *API) DeleteUserRepo(ctx context.Context, userID string) error {
	stmt := `UPDATE users SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`

	_, err := api.DB.Exec(ctx, stmt, userID)
	if err != nil {
		return err
	}
	return nil
}

package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

func (api *API) CreateSavedRouteRepo(ctx context.Context, route model.SavedRoute) (model.SavedRoute, error) {
	stmt := `
        INSERT INTO saved_routes (user_id, name, origin_name, destination_name, geometry, length_meters)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	err := api.DB.QueryRow(ctx, stmt,
		route.UserID,
		route.Name,
		route.OriginName,
		route.DestinationName,
		route.Geometry,
		route.LengthMeters,
	).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return model.SavedRoute{}, fmt.Errorf("creating saved route: %w", err)
	}
	return route, nil
}

func (api *API) GetSavedRouteRepo(ctx context.Context, id int64, userID uuid.UUID) (model.SavedRoute, error) {
	stmt := `
        SELECT id, user_id, name, origin_name, destination_name, geometry, length_meters, created_at
        FROM saved_routes
        WHERE id = $1 AND user_id = $2`

	var route model.SavedRoute
	err := api.DB.QueryRow(ctx, stmt, id, userID).Scan(
		&route.ID,
		&route.UserID,
		&route.Name,
		&route.OriginName,
		&route.DestinationName,
		&route.Geometry,
		&route.LengthMeters,
		&route.CreatedAt,
	)
	if err != nil {
		return model.SavedRoute{}, fmt.Errorf("getting saved route: %w", err)
	}
	return route, nil
}

func (api *API) GetSavedRoutesRepo(ctx context.Context, userID uuid.UUID) ([]model.SavedRoute, error) {
	stmt := `
        SELECT id, user_id, name, origin_name, destination_name, geometry, length_meters, created_at
        FROM saved_routes
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := api.DB.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("getting saved routes: %w", err)
	}
	defer rows.Close()

	var routes []model.SavedRoute
	for rows.Next() {
		var route model.SavedRoute
		err := rows.Scan(
			&route.ID,
			&route.UserID,
			&route.Name,
			&route.OriginName,
			&route.DestinationName,
			&route.Geometry,
			&route.LengthMeters,
			&route.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning saved route: %w", err)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (api *API) DeleteSavedRouteRepo(ctx context.Context, id int64, userID uuid.UUID) error {
	stmt := `DELETE FROM saved_routes WHERE id = $1 AND user_id = $2`

	result, err := api.DB.Exec(ctx, stmt, id, userID)
	if err != nil {
		return fmt.Errorf("deleting saved route: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route with ID %d not found", id)
	}
	return nil
}

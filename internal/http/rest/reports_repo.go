package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

const reportColumns = `
            id, user_id, title, description, category, severity,
            ST_X(position) as longitude, ST_Y(position) as latitude,
            address, image_url, verified, active, upvotes, downvotes,
            created_at, updated_at`

// CreateReportRepo inserts a new report and returns the stored row, which
// doubles as the first broadcast snapshot.
func (api *API) CreateReportRepo(ctx context.Context, req model.CreateReportRequest) (model.Report, error) {
	query := `
        INSERT INTO reports (
            user_id, title, description, category, severity, position, address, image_url
        ) VALUES (
            $1, $2, NULLIF($3, ''), $4, $5,
            ST_SetSRID(ST_MakePoint($6, $7), 4326),
            NULLIF($8, ''), NULLIF($9, '')
        ) RETURNING` + reportColumns

	var report model.Report
	err := api.DB.QueryRow(ctx, query,
		req.UserID, req.Title, req.Description, req.Category, req.Severity,
		req.Longitude, req.Latitude, req.Address, req.ImageURL,
	).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
		&report.Address, &report.ImageURL, &report.Verified, &report.Active,
		&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		log.Println("error creating report", err)
		return model.Report{}, err
	}
	return report, nil
}

func (api *API) GetReportByIDRepo(ctx context.Context, id int64) (model.Report, error) {
	query := `SELECT` + reportColumns + `
        FROM reports
        WHERE id = $1`

	var report model.Report
	err := api.DB.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
		&report.Address, &report.ImageURL, &report.Verified, &report.Active,
		&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// ListReportsRepo returns recent active reports, newest first, with
// optional category and severity filters.
func (api *API) ListReportsRepo(ctx context.Context, params model.ReportListParams) ([]model.Report, error) {
	query := `SELECT` + reportColumns + `
        FROM reports
        WHERE active = TRUE
        AND created_at > NOW() - ($1 * INTERVAL '1 hour')`

	args := []interface{}{params.Hours}
	argCount := 1

	if params.Category != "" {
		argCount++
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, params.Category)
	}
	if params.Severity != "" {
		argCount++
		query += fmt.Sprintf(" AND severity = $%d", argCount)
		args = append(args, params.Severity)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.UserID, &report.Title, &report.Description,
			&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
			&report.Address, &report.ImageURL, &report.Verified, &report.Active,
			&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (api *API) GetNearbyReportsRepo(ctx context.Context, params model.NearbyReportsParams) ([]model.Report, error) {
	query := `SELECT` + reportColumns + `,
            ST_Distance(position::geography, ST_MakePoint($1, $2)::geography) as distance
        FROM reports
        WHERE ST_DWithin(
            position::geography,
            ST_MakePoint($1, $2)::geography,
            $3
        )
        AND active = TRUE`

	args := []interface{}{
		params.Longitude, // $1
		params.Latitude,  // $2
		params.Radius,    // $3
	}
	argCount := 3

	if params.Category != "" {
		argCount++
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, params.Category)
	}

	query += fmt.Sprintf(" ORDER BY distance LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying nearby reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		var distance float64

		err := rows.Scan(
			&report.ID, &report.UserID, &report.Title, &report.Description,
			&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
			&report.Address, &report.ImageURL, &report.Verified, &report.Active,
			&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
			&distance,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetReportsInAreaRepo returns active reports inside a bounding box, for
// map viewport queries.
func (api *API) GetReportsInAreaRepo(ctx context.Context, params model.AreaParams) ([]model.Report, error) {
	query := `SELECT` + reportColumns + `
        FROM reports
        WHERE position && ST_MakeEnvelope($1, $2, $3, $4, 4326)
        AND active = TRUE
        ORDER BY created_at DESC`

	rows, err := api.DB.Query(ctx, query, params.MinLng, params.MinLat, params.MaxLng, params.MaxLat)
	if err != nil {
		return nil, fmt.Errorf("querying reports in area: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.UserID, &report.Title, &report.Description,
			&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
			&report.Address, &report.ImageURL, &report.Verified, &report.Active,
			&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (api *API) UpdateReportRepo(ctx context.Context, req model.UpdateReportRequest) (model.Report, error) {
	query := `
        UPDATE reports
        SET
            title = $2,
            description = NULLIF($3, ''),
            category = $4,
            severity = $5,
            position = ST_SetSRID(ST_MakePoint($6, $7), 4326),
            address = NULLIF($8, ''),
            image_url = COALESCE(NULLIF($9, ''), image_url),
            updated_at = NOW()
        WHERE id = $1
        RETURNING` + reportColumns

	var report model.Report
	err := api.DB.QueryRow(ctx, query,
		req.ID, req.Title, req.Description, req.Category, req.Severity,
		req.Longitude, req.Latitude, req.Address, req.ImageURL,
	).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
		&report.Address, &report.ImageURL, &report.Verified, &report.Active,
		&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// DeactivateReportRepo soft deletes a report and returns the final
// snapshot for the live feed.
func (api *API) DeactivateReportRepo(ctx context.Context, id int64) (model.Report, error) {
	query := `
        UPDATE reports
        SET active = FALSE, updated_at = NOW()
        WHERE id = $1
        RETURNING` + reportColumns

	var report model.Report
	err := api.DB.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
		&report.Address, &report.ImageURL, &report.Verified, &report.Active,
		&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// GetUserReportsRepo retrieves all reports for a specific user
func (api *API) GetUserReportsRepo(ctx context.Context, userID string) ([]model.Report, error) {
	query := `SELECT` + reportColumns + `
        FROM reports
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := api.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.UserID, &report.Title, &report.Description,
			&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
			&report.Address, &report.ImageURL, &report.Verified, &report.Active,
			&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (api *API) GetVotesRepo(ctx context.Context, reportID int64) ([]model.Vote, error) {
	query := `
        SELECT id, report_id, user_id, vote_type, created_at
        FROM votes
        WHERE report_id = $1
        ORDER BY created_at DESC`

	rows, err := api.DB.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var vote model.Vote
		err := rows.Scan(&vote.ID, &vote.ReportID, &vote.UserID, &vote.VoteType, &vote.CreatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

func (api *API) AddCommentRepo(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `
        INSERT INTO report_comments (report_id, user_id, comment)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := api.DB.QueryRow(ctx, query, comment.ReportID, comment.UserID, comment.Comment).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		log.Println("error adding comment", err)
		return model.Comment{}, err
	}
	return comment, nil
}

func (api *API) GetCommentsRepo(ctx context.Context, reportID int64) ([]model.Comment, error) {
	query := `
        SELECT id, report_id, user_id, comment, created_at
        FROM report_comments
        WHERE report_id = $1
        ORDER BY created_at ASC`

	rows, err := api.DB.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(&comment.ID, &comment.ReportID, &comment.UserID, &comment.Comment, &comment.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

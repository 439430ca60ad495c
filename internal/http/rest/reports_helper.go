package rest

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util/values"
)

// Points awarded for a published report.
const reportCreationPoints = 10

func (api *API) CreateReportHelper(ctx context.Context, req model.CreateReportRequest) (model.Report, string, string, error) {
	if req.ImageURL != "" {
		imageURL, err := api.Deps.Cloudinary.UploadImage(ctx, req.ImageURL, "reports")
		if err != nil {
			return model.Report{}, values.Error, "Failed to upload report image", err
		}
		req.ImageURL = imageURL
	}

	report, err := api.CreateReportRepo(ctx, req)
	if err != nil {
		return model.Report{}, values.Error, "Failed to create report", err
	}

	if err := api.AddUserPointsRepo(ctx, req.UserID.String(), reportCreationPoints); err != nil {
		log.Println("failed to award report points", err)
	}

	// Push the new report to the live feed.
	api.Votes.PublishReport(report)

	return report, values.Created, "Report created successfully", nil
}

func (api *API) GetReportByIDHelper(ctx context.Context, id int64) (model.Report, string, string, error) {
	report, err := api.GetReportByIDRepo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Report{}, values.NotFound, "Report not found", err
		}
		return model.Report{}, values.Error, "Failed to fetch report", err
	}
	return report, values.Success, "Report fetched successfully", nil
}

func (api *API) ListReportsHelper(ctx context.Context, params model.ReportListParams) ([]model.Report, string, string, error) {
	reports, err := api.ListReportsRepo(ctx, params)
	if err != nil {
		return nil, values.Error, "Failed to fetch reports", err
	}
	return reports, values.Success, "Reports fetched successfully", nil
}

func (api *API) GetNearbyReportsHelper(ctx context.Context, params model.NearbyReportsParams) ([]model.Report, string, string, error) {
	reports, err := api.GetNearbyReportsRepo(ctx, params)
	if err != nil {
		return nil, values.Error, "Failed to fetch nearby reports", err
	}
	return reports, values.Success, "Nearby reports fetched successfully", nil
}

func (api *API) GetReportsInAreaHelper(ctx context.Context, params model.AreaParams) ([]model.Report, string, string, error) {
	reports, err := api.GetReportsInAreaRepo(ctx, params)
	if err != nil {
		return nil, values.Error, "Failed to fetch reports in area", err
	}
	return reports, values.Success, "Reports fetched successfully", nil
}

// canModifyReport enforces the ownership rule: authors manage their own
// reports, moderators manage any.
func canModifyReport(report model.Report, userID uuid.UUID, role string) bool {
	return report.UserID == userID || role == model.RoleModerator
}

func (api *API) UpdateReportHelper(ctx context.Context, req model.UpdateReportRequest, userID uuid.UUID, role string) (model.Report, string, string, error) {
	existing, err := api.GetReportByIDRepo(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Report{}, values.NotFound, "Report not found", err
		}
		return model.Report{}, values.Error, "Failed to fetch report", err
	}

	if !canModifyReport(existing, userID, role) {
		return model.Report{}, values.NotAllowed, "You cannot modify this report", errors.New("not report owner")
	}

	updated, err := api.UpdateReportRepo(ctx, req)
	if err != nil {
		return model.Report{}, values.Error, "Failed to update report", err
	}

	api.Votes.PublishReport(updated)

	return updated, values.Success, "Report updated successfully", nil
}

func (api *API) DeleteReportHelper(ctx context.Context, id int64, userID uuid.UUID, role string) (string, string, error) {
	existing, err := api.GetReportByIDRepo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return values.NotFound, "Report not found", err
		}
		return values.Error, "Failed to fetch report", err
	}

	if !canModifyReport(existing, userID, role) {
		return values.NotAllowed, "You cannot delete this report", errors.New("not report owner")
	}

	deactivated, err := api.DeactivateReportRepo(ctx, id)
	if err != nil {
		return values.Error, "Failed to delete report", err
	}

	// Subscribers see the report wink out rather than silently stale data.
	api.Votes.PublishReport(deactivated)

	return values.Success, "Report deleted successfully", nil
}

func (api *API) AddCommentHelper(ctx context.Context, comment model.Comment) (model.Comment, string, string, error) {
	saved, err := api.AddCommentRepo(ctx, comment)
	if err != nil {
		return model.Comment{}, values.Error, "Failed to add comment", err
	}

	// Watchers of this report see new comments live.
	api.Votes.PublishComment(saved)

	return saved, values.Success, "Comment added successfully", nil
}

package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/internal/vote"
	"github.com/raastabuzz/raastabuzz-api/util"
	"github.com/raastabuzz/raastabuzz-api/util/tracing"
	"github.com/raastabuzz/raastabuzz-api/util/values"
)

func (api *API) ReportRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.CreateReport))
		r.Method(http.MethodGet, "/", Handler(api.ListReports))
		r.Method(http.MethodGet, "/nearby", Handler(api.GetNearbyReports))
		r.Method(http.MethodGet, "/area", Handler(api.GetReportsInArea))

		r.Method(http.MethodGet, "/{reportID}", Handler(api.GetReportByID))
		r.Method(http.MethodPut, "/{reportID}", Handler(api.UpdateReport))
		r.Method(http.MethodDelete, "/{reportID}", Handler(api.DeleteReport))
		r.Method(http.MethodPost, "/{reportID}/votes", Handler(api.VoteOnReport))
		r.Method(http.MethodGet, "/{reportID}/votes", Handler(api.GetVotes))
		r.Method(http.MethodPost, "/{reportID}/comments", Handler(api.CommentOnReport))
		r.Method(http.MethodGet, "/{reportID}/comments", Handler(api.GetComments))
	})

	return mux
}

func reportIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
}

func (api *API) CreateReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreateReportRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userId, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	req.UserID = userId

	newReport, status, message, err := api.CreateReportHelper(r.Context(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       newReport,
	}
}

func (api *API) GetReportByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	report, status, message, err := api.GetReportByIDHelper(r.Context(), id)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
	}
}

func (api *API) ListReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	hours, err := strconv.Atoi(r.URL.Query().Get("hours"))
	if err != nil || hours <= 0 {
		hours = 24 // Default window
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 20
	}

	params := model.ReportListParams{
		Category: r.URL.Query().Get("category"),
		Severity: r.URL.Query().Get("severity"),
		Hours:    hours,
		Page:     page,
		PageSize: pageSize,
	}

	reports, status, message, err := api.ListReportsHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
	}
}

func (api *API) GetNearbyReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	longitude, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		return respondWithError(err, "invalid longitude", values.BadRequestBody, &tc)
	}

	latitude, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		return respondWithError(err, "invalid latitude", values.BadRequestBody, &tc)
	}

	radius, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	if err != nil || radius <= 0 {
		radius = 1000 // Default radius in meters
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	params := model.NearbyReportsParams{
		Latitude:  latitude,
		Longitude: longitude,
		Radius:    radius,
		Category:  r.URL.Query().Get("category"),
		Page:      page,
		PageSize:  pageSize,
	}

	reports, status, message, err := api.GetNearbyReportsHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
	}
}

func (api *API) GetReportsInArea(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var params model.AreaParams
	var err error
	if params.MinLat, err = strconv.ParseFloat(r.URL.Query().Get("minLat"), 64); err != nil {
		return respondWithError(err, "invalid minLat", values.BadRequestBody, &tc)
	}
	if params.MaxLat, err = strconv.ParseFloat(r.URL.Query().Get("maxLat"), 64); err != nil {
		return respondWithError(err, "invalid maxLat", values.BadRequestBody, &tc)
	}
	if params.MinLng, err = strconv.ParseFloat(r.URL.Query().Get("minLng"), 64); err != nil {
		return respondWithError(err, "invalid minLng", values.BadRequestBody, &tc)
	}
	if params.MaxLng, err = strconv.ParseFloat(r.URL.Query().Get("maxLng"), 64); err != nil {
		return respondWithError(err, "invalid maxLng", values.BadRequestBody, &tc)
	}

	reports, status, message, err := api.GetReportsInAreaHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
	}
}

func (api *API) UpdateReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	var req model.UpdateReportRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userId, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	role := util.GetUserRoleFromContext(r.Context())

	req.ID = id

	report, status, message, err := api.UpdateReportHelper(r.Context(), req, userId, role)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
	}
}

func (api *API) DeleteReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	role := util.GetUserRoleFromContext(r.Context())

	status, message, err := api.DeleteReportHelper(r.Context(), id, userID, role)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) VoteOnReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	var req model.VoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	report, err := api.Votes.CastVote(r.Context(), userID, id, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, vote.ErrInvalidVoteType):
			return respondWithError(err, "invalid vote type", values.BadRequestBody, &tc)
		case errors.Is(err, vote.ErrReportNotFound):
			return respondWithError(err, "report not found", values.NotFound, &tc)
		case errors.Is(err, vote.ErrContention):
			return respondWithError(err, "vote conflicted with concurrent updates, please retry", values.Unavailable, &tc)
		default:
			return respondWithError(err, "failed to record vote", values.Error, &tc)
		}
	}

	return &ServerResponse{
		Message:    "Vote recorded successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       report,
	}
}

func (api *API) GetVotes(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	votes, err := api.GetVotesRepo(r.Context(), id)
	if err != nil {
		return respondWithError(err, "failed to get votes", values.Error, &tc)
	}
	if votes == nil {
		votes = []model.Vote{}
	}

	return &ServerResponse{
		Message:    "Votes retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       votes,
	}
}

func (api *API) CommentOnReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	var req struct {
		Content string `json:"content"`
	}
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if !util.NotBlank(req.Content) {
		return respondWithError(errors.New("empty comment"), "comment cannot be empty", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	comment := model.Comment{
		ReportID: id,
		UserID:   userID,
		Comment:  req.Content,
	}

	saved, status, message, err := api.AddCommentHelper(r.Context(), comment)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       saved,
	}
}

func (api *API) GetComments(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := reportIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid report ID", values.BadRequestBody, &tc)
	}

	comments, err := api.GetCommentsRepo(r.Context(), id)
	if err != nil {
		return respondWithError(err, "failed to get comments", values.Error, &tc)
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	return &ServerResponse{
		Message:    "Comments retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       comments,
	}
}

package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util"
	"github.com/raastabuzz/raastabuzz-api/util/tracing"
	"github.com/raastabuzz/raastabuzz-api/util/values"
)

func (api *API) SavedRouteRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Route("/", func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.CreateSavedRoute))
		r.Method(http.MethodGet, "/", Handler(api.GetAllSavedRoutes))
		r.Method(http.MethodGet, "/{id}", Handler(api.GetSavedRoute))
		r.Method(http.MethodDelete, "/{id}", Handler(api.DeleteSavedRoute))
	})

	return mux
}

func (api *API) CreateSavedRoute(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SaveRouteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	// The geometry must be a decodable polyline; its length is derived
	// here rather than trusted from the client.
	coords, err := util.DecodePolyLines(req.Geometry)
	if err != nil {
		return respondWithError(err, "invalid route geometry", values.BadRequestBody, &tc)
	}

	route := model.SavedRoute{
		UserID:       userID,
		Name:         req.Name,
		Geometry:     req.Geometry,
		LengthMeters: util.PolylineLengthMeters(coords),
	}
	if req.OriginName != "" {
		route.OriginName = &req.OriginName
	}
	if req.DestinationName != "" {
		route.DestinationName = &req.DestinationName
	}

	saved, err := api.CreateSavedRouteRepo(r.Context(), route)
	if err != nil {
		return respondWithError(err, "failed to save route", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Route saved successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       saved,
	}
}

func (api *API) GetAllSavedRoutes(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	routes, err := api.GetSavedRoutesRepo(r.Context(), userID)
	if err != nil {
		return respondWithError(err, "failed to get saved routes", values.Error, &tc)
	}
	if routes == nil {
		routes = []model.SavedRoute{}
	}

	return &ServerResponse{
		Message:    "Saved routes retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       routes,
	}
}

func (api *API) GetSavedRoute(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return respondWithError(err, "invalid ID format", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	route, err := api.GetSavedRouteRepo(r.Context(), id, userID)
	if err != nil {
		return respondWithError(err, "failed to get saved route", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Saved route retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       route,
	}
}

func (api *API) DeleteSavedRoute(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return respondWithError(err, "invalid ID format", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	err = api.DeleteSavedRouteRepo(r.Context(), id, userID)
	if err != nil {
		return respondWithError(err, "failed to delete saved route", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Saved route deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

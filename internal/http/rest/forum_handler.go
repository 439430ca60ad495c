package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util"
	"github.com/raastabuzz/raastabuzz-api/util/tracing"
	"github.com/raastabuzz/raastabuzz-api/util/values"
)

func (api *API) ForumRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/posts", Handler(api.CreateForumPost))
		r.Method(http.MethodGet, "/posts", Handler(api.ListForumPosts))
		r.Method(http.MethodGet, "/posts/{postID}", Handler(api.GetForumPost))
		r.Method(http.MethodPut, "/posts/{postID}", Handler(api.UpdateForumPost))
		r.Method(http.MethodDelete, "/posts/{postID}", Handler(api.DeleteForumPost))
		r.Method(http.MethodPost, "/posts/{postID}/like", Handler(api.LikeForumPost))
		r.Method(http.MethodPost, "/posts/{postID}/comments", Handler(api.CommentOnForumPost))
		r.Method(http.MethodGet, "/posts/{postID}/comments", Handler(api.GetForumComments))
	})

	return mux
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}

func (api *API) CreateForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreatePostRequest
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

	post, status, message, err := api.CreateForumPostHelper(r.Context(), userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) ListForumPosts(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 20
	}

	posts, err := api.ListForumPostsRepo(r.Context(), r.URL.Query().Get("category"), page, pageSize)
	if err != nil {
		return respondWithError(err, "failed to get posts", values.Error, &tc)
	}
	if posts == nil {
		posts = []model.ForumPost{}
	}

	return &ServerResponse{
		Message:    "Posts retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       posts,
	}
}

func (api *API) GetForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}

	post, status, message, err := api.GetForumPostHelper(r.Context(), id)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) UpdateForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}

	var req model.UpdatePostRequest
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
	role := util.GetUserRoleFromContext(r.Context())

	post, status, message, err := api.UpdateForumPostHelper(r.Context(), id, userID, role, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) DeleteForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	role := util.GetUserRoleFromContext(r.Context())

	status, message, err := api.DeleteForumPostHelper(r.Context(), id, userID, role)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) LikeForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}

	likes, err := api.LikeForumPostRepo(r.Context(), id)
	if err != nil {
		return respondWithError(err, "failed to like post", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Post liked successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]interface{}{
			"likes": likes,
		},
	}
}

func (api *API) CommentOnForumPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
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

	comment := model.ForumComment{
		PostID:  id,
		UserID:  userID,
		Content: req.Content,
	}

	saved, status, message, err := api.AddForumCommentHelper(r.Context(), comment)
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

func (api *API) GetForumComments(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id, err := postIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}

	comments, err := api.GetForumCommentsRepo(r.Context(), id)
	if err != nil {
		return respondWithError(err, "failed to get comments", values.Error, &tc)
	}
	if comments == nil {
		comments = []model.ForumComment{}
	}

	return &ServerResponse{
		Message:    "Comments retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       comments,
	}
}

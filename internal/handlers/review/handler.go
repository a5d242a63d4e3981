package review

import (
	"naturekids/infras/otel"
	"naturekids/internal/domains/review/model/dto"
	"naturekids/internal/domains/review/service"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/validator"
	"naturekids/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/activities/{id}/reviews", handler.GetReviews)
	router.Post("/activities/{id}/reviews", handler.AddReview)
}

func activityID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid activity id") // nolint:wrapcheck
	}

	return id, nil
}

// GetReviews lists an activity's reviews in submission order.
// @Summary List reviews
// @Tags Review
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} response.Data[dto.GetReviewsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id}/reviews [get]
func (handler *Handler) GetReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	id, err := activityID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ListByActivity(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("activityID", id).Msg("failed to list reviews")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AddReview submits a review as the signed-in user.
// @Summary Add review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param request body dto.AddReviewRequest true "Review"
// @Success 201 {object} response.Data[dto.ReviewResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/activities/{id}/reviews [post]
// @Security BearerAuth
func (handler *Handler) AddReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddReview")
	defer scope.End()

	id, err := activityID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.AddReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Add(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("activityID", id).Msg("failed to add review")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

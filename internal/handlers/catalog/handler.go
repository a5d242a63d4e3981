package catalog

import (
	"naturekids/infras/otel"
	"naturekids/internal/domains/catalog/model/dto"
	"naturekids/internal/domains/catalog/service"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/activities", handler.GetActivities)
	router.Get("/activities/{id}", handler.GetActivity)
}

// GetActivities lists the catalog.
// @Summary List activities
// @Description List activities, optionally filtered by location, price range, minimum rating and title search.
// @Tags Activity
// @Produce json
// @Param location query []string false "Locations" collectionFormat(multi)
// @Param min_price query int false "Minimum price per participant"
// @Param max_price query int false "Maximum price per participant"
// @Param min_rating query number false "Minimum rating"
// @Param search query string false "Title search"
// @Success 200 {object} response.Data[dto.GetActivitiesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/activities [get]
func (handler *Handler) GetActivities(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivities")
	defer scope.End()

	res, err := handler.service.List(ctx, dto.FilterFromRequest(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list activities")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetActivity returns one activity.
// @Summary Get activity
// @Tags Activity
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} response.Data[dto.ActivityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [get]
func (handler *Handler) GetActivity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivity")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("invalid activity id"))

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

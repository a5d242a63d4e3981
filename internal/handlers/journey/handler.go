package journey

import (
	"naturekids/infras/otel"
	"naturekids/internal/domains/journey/service"
	"naturekids/shared/constant"
	"naturekids/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Journey
	otel    otel.Otel
}

func New(service service.Journey, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/users/journey", handler.GetJourney)
	router.Get("/users/rewards", handler.GetRewards)
}

// GetJourney lists the signed-in user's booked activities, newest first, with
// progress toward the next reward.
// @Summary User journey
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.GetJourneyResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/journey [get]
// @Security BearerAuth
func (handler *Handler) GetJourney(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJourney")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get journey")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRewards lists the rewards the signed-in user has earned.
// @Summary User rewards
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.GetRewardsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/rewards [get]
// @Security BearerAuth
func (handler *Handler) GetRewards(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRewards")
	defer scope.End()

	res, err := handler.service.Rewards(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rewards")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

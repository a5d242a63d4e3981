package recommendation

import (
	"naturekids/infras/otel"
	"naturekids/internal/domains/recommendation/model/dto"
	"naturekids/internal/domains/recommendation/service"
	"naturekids/shared/constant"
	"naturekids/shared/validator"
	"naturekids/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Recommendation
	otel    otel.Otel
}

func New(service service.Recommendation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/recommendations", handler.Recommend)
}

// Recommend suggests nature activities for a child. It always answers with
// three suggestions; source tells whether they came from the model or the
// built-in fallback.
// @Summary Recommend activities
// @Tags Recommendation
// @Accept json
// @Produce json
// @Param request body dto.RecommendRequest true "Preferences"
// @Success 200 {object} response.Data[dto.RecommendResponse]
// @Failure 400 {object} response.Error
// @Router /v1/recommendations [post]
func (handler *Handler) Recommend(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Recommend")
	defer scope.End()

	req := dto.RecommendRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res := handler.service.Recommend(ctx, req)
	scope.SetAttribute("source", res.Source)

	response.WithJSON(writer, http.StatusOK, res)
}

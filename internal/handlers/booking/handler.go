package booking

import (
	"naturekids/infras/otel"
	"naturekids/internal/domains/booking/model/dto"
	"naturekids/internal/domains/booking/service"
	"naturekids/shared/constant"
	"naturekids/shared/validator"
	"naturekids/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Checkout)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
	})

	router.Post("/internal/bookings/{owner}/{id}/complete", handler.CompleteBooking)
}

// Checkout validates the booking form, charges the card and records the booking.
// @Summary Book an activity
// @Description Validate the booking against the activity, charge the card and record an upcoming booking.
// @Description A declined charge answers 402 with the flow state payment_failed and the payment outcome.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 201 {object} response.Data[dto.CheckoutResponse]
// @Failure 400 {object} response.ErrorData[dto.CheckoutResponse]
// @Failure 401 {object} response.Error
// @Failure 402 {object} response.ErrorData[dto.CheckoutResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 504 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) Checkout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Checkout(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("state", res.State).Msg("checkout failed")

		if res.State != constant.Empty {
			response.WithErrorData(writer, err, res)

			return
		}

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking confirmed " + res.Booking.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists the signed-in user's bookings.
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBooking returns one of the signed-in user's bookings.
// @Summary Get booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels an upcoming booking. Cancelling twice, or cancelling an
// unknown booking, is not an error.
// @Summary Cancel booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking cancelled")
}

// CompleteBooking marks an upcoming booking as completed.
// @Summary Complete booking (internal)
// @Tags Internal
// @Produce json
// @Param owner path string true "Owner user ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/internal/bookings/{owner}/{id}/complete [post]
// @Security ApiKeyAuth
func (handler *Handler) CompleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteBooking")
	defer scope.End()

	res, err := handler.service.Complete(ctx,
		chi.URLParam(request, constant.RequestParamOwner),
		chi.URLParam(request, constant.RequestParamID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/infras/otel/mocks"
	bookingMocks "naturekids/internal/domains/booking/mocks"
	"naturekids/internal/domains/booking/model"
	"naturekids/internal/domains/booking/model/dto"
	paymentDto "naturekids/internal/domains/payment/model/dto"
	"naturekids/internal/handlers/booking"
	"naturekids/shared/failure"
)

const checkoutBody = `{
	"activity_id": 1,
	"date": "2026-11-02",
	"time": "9:00 AM",
	"participants": 3,
	"child_name": "Asha",
	"parent_name": "Ravi",
	"email": "ravi@example.com",
	"phone": "9876543210",
	"card": {
		"card_number": "4111111111111111",
		"card_holder": "Ravi",
		"expiry_month": "12",
		"expiry_year": "2030",
		"cvv": "123"
	}
}`

func setup(t *testing.T) (*bookingMocks.MockBooking, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := bookingMocks.NewMockBooking(ctrl)

	handler := booking.New(service, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Error string               `json:"error"`
	Data  dto.CheckoutResponse `json:"data"`
}

func TestCheckout(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().
			Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req dto.CheckoutRequest) (dto.CheckoutResponse, error) {
				assert.Equal(t, 3, req.Participants)
				assert.Equal(t, "4111111111111111", req.Card.CardNumber)

				return dto.CheckoutResponse{
					State:   string(model.FlowConfirmed),
					Booking: &dto.BookingResponse{ID: "b1", TotalPrice: 1050, Status: string(model.StatusUpcoming)},
					Next:    dto.NextAfterConfirm,
				}, nil
			})

		rec := do(router, http.MethodPost, "/bookings/", checkoutBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "confirmed", body.Data.State)
		assert.Equal(t, int64(1050), body.Data.Booking.TotalPrice)
		assert.Equal(t, "/profile", body.Data.Next)
	})

	t.Run("declined keeps flow state", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(dto.CheckoutResponse{
			State:   string(model.FlowPaymentFailed),
			Payment: &paymentDto.OutcomeResponse{Success: false, FailureReason: "card_declined"},
		}, failure.PaymentRequired("card_declined"))

		rec := do(router, http.MethodPost, "/bookings/", checkoutBody)
		require.Equal(t, http.StatusPaymentRequired, rec.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "card_declined", body.Error)
		assert.Equal(t, "payment_failed", body.Data.State)
		assert.Nil(t, body.Data.Booking)
	})

	t.Run("unauthenticated has no payload", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(dto.CheckoutResponse{}, failure.Unauthenticated)

		rec := do(router, http.MethodPost, "/bookings/", checkoutBody)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"data"`)
	})

	t.Run("empty card number never reaches the service", func(t *testing.T) {
		_, router := setup(t)

		body := strings.Replace(checkoutBody, `"4111111111111111"`, `"  "`, 1)

		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/bookings/", body).Code)
	})

	t.Run("zero participants never reaches the service", func(t *testing.T) {
		_, router := setup(t)

		body := strings.Replace(checkoutBody, `"participants": 3`, `"participants": 0`, 1)

		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/bookings/", body).Code)
	})
}

func TestListGetCancel(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().List(gomock.Any()).Return(dto.GetBookingsResponse{TotalData: 2}, nil)

		rec := do(router, http.MethodGet, "/bookings/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_data":2`)
	})

	t.Run("get unknown", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Get(gomock.Any(), "missing").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/bookings/missing", "").Code)
	})

	t.Run("cancel", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Cancel(gomock.Any(), "b1").Return(nil)

		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/bookings/b1/cancel", "").Code)
	})
}

func TestCompleteBooking(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Complete(gomock.Any(), "1", "b1").
		Return(dto.BookingResponse{ID: "b1", Status: string(model.StatusCompleted)}, nil)

	rec := do(router, http.MethodPost, "/internal/bookings/1/b1/complete", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed"`)
}

func TestCompleteBooking_Conflict(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Complete(gomock.Any(), "1", "b1").
		Return(dto.BookingResponse{}, failure.Conflict("booking is not upcoming"))

	assert.Equal(t, http.StatusConflict, do(router, http.MethodPost, "/internal/bookings/1/b1/complete", "").Code)
}

func TestCheckout_RecordsSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := bookingMocks.NewMockBooking(ctrl)
	recorder := mocks.NewRecorder()

	handler := booking.New(service, recorder)
	router := chi.NewRouter()
	handler.Router(router)

	service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(dto.CheckoutResponse{
		State:   string(model.FlowConfirmed),
		Booking: &dto.BookingResponse{ID: "b1", TotalPrice: 1050, Status: string(model.StatusUpcoming)},
	}, nil)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/bookings/", checkoutBody).Code)

	service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(dto.CheckoutResponse{}, failure.Unauthenticated)
	require.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/bookings/", checkoutBody).Code)

	span, ok := recorder.Span("handler.Checkout")
	require.True(t, ok)
	assert.True(t, span.Ended)
	assert.Equal(t, []string{"Booking confirmed b1"}, span.Events)
	assert.Empty(t, span.Errors)
}

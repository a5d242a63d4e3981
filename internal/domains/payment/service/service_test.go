package service_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/otel/mocks"
	"naturekids/internal/domains/payment/model"
	"naturekids/internal/domains/payment/service"
	"naturekids/shared/failure"
)

var transactionPattern = regexp.MustCompile(`^TXN[0-9A-F]{32}$`)

func newConfig(delayMs int, successRate float64) *config.Config {
	cfg := &config.Config{}
	cfg.Payment.Currency = "INR"
	cfg.Payment.DelayMs = delayMs
	cfg.Payment.SuccessRate = successRate
	cfg.Payment.FailureReasons = []string{"card_declined", "insufficient_funds"}

	return cfg
}

func chargeRequest() model.ChargeRequest {
	return model.ChargeRequest{
		Amount:    1050,
		Reference: "booking-1",
		Card: model.Card{
			Number: "4111111111111111", Holder: "Asha Rao", ExpiryMonth: "12", ExpiryYear: "2030", CVV: "123",
		},
	}
}

func TestSimulator_ChargeApproved(t *testing.T) {
	gateway := service.New(newConfig(1, 1.0), mocks.NewOtel())

	first, err := gateway.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, int64(1050), first.Amount)
	assert.Equal(t, "INR", first.Currency)
	assert.Empty(t, first.FailureReason)
	assert.Regexp(t, transactionPattern, first.TransactionID)

	second, err := gateway.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestSimulator_ChargeDeclined(t *testing.T) {
	gateway := service.New(newConfig(0, 0), mocks.NewOtel())

	outcome, err := gateway.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Contains(t, []string{"card_declined", "insufficient_funds"}, outcome.FailureReason)
	assert.Regexp(t, transactionPattern, outcome.TransactionID)
}

func TestSimulator_RejectsIncompleteCardWithoutDelay(t *testing.T) {
	gateway := service.New(newConfig(60_000, 1.0), mocks.NewOtel())

	req := chargeRequest()
	req.Card.Number = ""

	start := time.Now()
	outcome, err := gateway.Charge(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, model.ErrIncompleteCard.Error(), err.Error())
	assert.Empty(t, outcome.TransactionID)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimulator_HonoursContextDeadline(t *testing.T) {
	gateway := service.New(newConfig(60_000, 1.0), mocks.NewOtel())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gateway.Charge(ctx, chargeRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulator_ChargeRecordsFailureOnSpan(t *testing.T) {
	recorder := mocks.NewRecorder()
	gateway := service.New(newConfig(0, 1.0), recorder)

	req := chargeRequest()
	req.Card.CVV = " "

	_, err := gateway.Charge(context.Background(), req)
	require.Error(t, err)

	span, ok := recorder.Span("external.Charge")
	require.True(t, ok)
	assert.True(t, span.Ended)
	require.Len(t, span.Errors, 1)
	assert.Equal(t, err, span.Errors[0])
}

func TestSimulator_ChargeApprovedLeavesSpanClean(t *testing.T) {
	recorder := mocks.NewRecorder()
	gateway := service.New(newConfig(0, 1.0), recorder)

	_, err := gateway.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)

	span, ok := recorder.Span("external.Charge")
	require.True(t, ok)
	assert.Empty(t, span.Errors)
}

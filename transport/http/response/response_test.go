package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/shared/failure"
	"naturekids/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"id": "1"}, decode(t, rec)["data"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "failure", err: failure.NotFound("activity not found"), wantCode: http.StatusNotFound},
		{name: "unauthenticated", err: failure.Unauthenticated, wantCode: http.StatusUnauthorized},
		{name: "plain error", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.err.Error(), decode(t, rec)["error"])
		})
	}
}

func TestWithErrorData(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithErrorData(rec, failure.PaymentRequired("card_declined"), map[string]string{"state": "payment_failed"})

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "card_declined", body["error"])
	assert.Equal(t, map[string]any{"state": "payment_failed"}, body["data"])
}

func TestDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	response.WithUnhealthy(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

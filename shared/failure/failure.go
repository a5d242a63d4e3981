// Package failure carries an HTTP status alongside an error message so that
// services can decide the response code and handlers only have to render it.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

var (
	InvalidCredentials = &Failure{Code: http.StatusUnauthorized, Message: "invalid email or password"}
	Unauthenticated    = &Failure{Code: http.StatusUnauthorized, Message: "login required"}
	ForbiddenError     = &Failure{Code: http.StatusForbidden, Message: "you are not allowed to access this resource"}
)

// BadRequest keeps nil as nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error { return newFailure(http.StatusBadRequest, msg) }

func Unauthorized(msg string) error { return newFailure(http.StatusUnauthorized, msg) }

func Forbidden(msg string) error { return newFailure(http.StatusForbidden, msg) }

func NotFound(msg string) error { return newFailure(http.StatusNotFound, msg) }

// Conflict covers double-booked slots and illegal status transitions.
func Conflict(msg string) error { return newFailure(http.StatusConflict, msg) }

// PaymentRequired is a charge the payment provider declined.
func PaymentRequired(reason string) error { return newFailure(http.StatusPaymentRequired, reason) }

// BadGateway is an upstream call that failed in transport.
func BadGateway(msg string) error { return newFailure(http.StatusBadGateway, msg) }

// GatewayTimeout is an upstream call that ran out of time.
func GatewayTimeout(msg string) error { return newFailure(http.StatusGatewayTimeout, msg) }

// GetCode unwraps err looking for a Failure. Anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

package response

import (
	"encoding/json"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/logger"
	"net/http"
)

// Response envelopes. Empty fields are left out of the body.
type (
	Data[T any] struct {
		Data *T `json:"data,omitempty"`
	}

	Error struct {
		Error *string `json:"error,omitempty"`
	}

	// ErrorData carries a payload next to the error, e.g. a declined checkout.
	ErrorData[T any] struct {
		Error *string `json:"error,omitempty"`
		Data  *T      `json:"data,omitempty"`
	}

	Message struct {
		Message *string `json:"message,omitempty"`
	}
)

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError derives the status from the failure code. Internal errors are
// logged with their stack before the message goes out.
func WithError(writer http.ResponseWriter, err error) {
	code, msg := describe(err)

	write(writer, code, Error{Error: &msg})
}

func WithErrorData(writer http.ResponseWriter, err error, payload any) {
	code, msg := describe(err)

	write(writer, code, ErrorData[any]{Error: &msg, Data: &payload})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func describe(err error) (int, string) {
	code := failure.GetCode(err)
	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	return code, err.Error()
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

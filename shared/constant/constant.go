package constant

import (
	"time"
)

type contextKey string

// Identity of the caller, set by the auth middleware.
const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyTokenID  contextKey = "token_id"
)

const SystemUser = "system"

// URL parameters.
const (
	RequestParamID    = "id"
	RequestParamOwner = "owner"
)

const PqErrorCodeUniqueViolation = "23505"

const (
	DateFormat     = time.RFC3339
	BookingDateFmt = "2006-01-02"
)

const MinutesToSeconds = 60

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
)

const ContentTypeJSON = "application/json"

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

// Kafka topics. The event type header carries the same value.
const (
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCancelled = "booking.cancelled"
	TopicReviewSubmitted  = "review.submitted"
	TopicRewardEarned     = "reward.earned"
	// A charge that was approved but has no booking behind it.
	TopicPaymentOrphaned = "payment.orphaned"
)

const Empty = ""

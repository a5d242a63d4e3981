//go:build wireinject
// +build wireinject

package di

import (
	"naturekids/config"
	"naturekids/infras/jwt"
	"naturekids/infras/kafka"
	"naturekids/infras/llm"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/infras/redis"
	"naturekids/infras/s3"
	"naturekids/internal/events"
	"naturekids/permissions"
	"naturekids/shared/cache"
	"naturekids/transport/http"
	"naturekids/transport/http/middleware"
	"naturekids/transport/http/router"

	bookingRepository "naturekids/internal/domains/booking/repository"
	bookingService "naturekids/internal/domains/booking/service"
	catalogRepository "naturekids/internal/domains/catalog/repository"
	catalogService "naturekids/internal/domains/catalog/service"
	identityProvider "naturekids/internal/domains/identity/provider"
	identityRepository "naturekids/internal/domains/identity/repository"
	identityService "naturekids/internal/domains/identity/service"
	journeyRepository "naturekids/internal/domains/journey/repository"
	journeyService "naturekids/internal/domains/journey/service"
	paymentService "naturekids/internal/domains/payment/service"
	recommendationService "naturekids/internal/domains/recommendation/service"
	reviewRepository "naturekids/internal/domains/review/repository"
	reviewService "naturekids/internal/domains/review/service"

	bookingHandler "naturekids/internal/handlers/booking"
	catalogHandler "naturekids/internal/handlers/catalog"
	identityHandler "naturekids/internal/handlers/identity"
	journeyHandler "naturekids/internal/handlers/journey"
	recommendationHandler "naturekids/internal/handlers/recommendation"
	reviewHandler "naturekids/internal/handlers/review"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.Provide,
	otel.New,
	redis.New,
	jwt.New,
	kafka.Provide,
	s3.New,
	llm.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var identityDomain = wire.NewSet(
	identityRepository.New,
	identityRepository.NewSession,
	identityProvider.Provide,
	identityService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.Provide,
	catalogService.New,
)

var journeyDomain = wire.NewSet(
	journeyRepository.Provide,
	journeyService.New,
)

var bookingDomain = wire.NewSet(
	paymentService.New,
	bookingRepository.Provide,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.Provide,
	reviewService.New,
)

var recommendationDomain = wire.NewSet(
	recommendationService.New,
)

var domains = wire.NewSet(
	identityDomain,
	catalogDomain,
	journeyDomain,
	bookingDomain,
	reviewDomain,
	recommendationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	identityHandler.New,
	catalogHandler.New,
	bookingHandler.New,
	journeyHandler.New,
	reviewHandler.New,
	recommendationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

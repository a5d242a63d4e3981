package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"naturekids/config"
	"naturekids/infras/jwt"
	"naturekids/infras/otel"
	identityService "naturekids/internal/domains/identity/service"
	"naturekids/permissions"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Internal guards routes that only other services may call.
type Internal interface {
	Internal(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Internal
}

type authRoleImpl struct {
	jwtService jwt.JWT
	identity   identityService.Identity
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	identity identityService.Identity,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		identity:   identity,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) findPermission(request *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if path == "" {
		// unknown routes fall through so the router answers 404 or 405
		return permissions.Permission{Skip: true}
	}

	return m.permission.FindPermissions(path, request.Method)
}

// Auth validates the bearer token and resolves its session. Skip routes are
// public; Optional routes continue anonymously when no identity can be resolved.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)
		permission := m.findPermission(request)

		if skip || permission.Skip || permission.Internal || (m.permission != nil && m.permission.Skip) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       permission.Path,
			"http.method":     request.Method,
			"auth.optional":   permission.Optional,
		})

		ctx, err := m.authenticate(ctx, request)
		if err != nil && !permission.Optional {
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(ctx context.Context, request *http.Request) (context.Context, error) {
	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == "" {
		return ctx, failure.Unauthenticated
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return ctx, failure.Unauthorized("Invalid authorization header format") // nolint:wrapcheck
	}

	claims, err := m.jwtService.Validate(tokenString)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "Invalid token claims"
		default:
			message = "Invalid token"
		}

		return ctx, failure.Unauthorized(message) // nolint:wrapcheck
	}

	// a signed token is only honoured while its session exists
	identity, err := m.identity.Resolve(ctx, claims.TokenID())
	if err != nil {
		return ctx, err //nolint:wrapcheck
	}

	if identity.ID != claims.UserID {
		return ctx, failure.Unauthenticated
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, identity.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, identity.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID())

	return ctx, nil
}

// Internal rejects internal routes unless APIKey accepted the caller.
func (m *authRoleImpl) Internal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "internal.middleware")

		if !m.findPermission(request).Internal {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if skip, _ := request.Context().Value(SkipAuthKey("skip")).(bool); !skip {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.SetAttribute("reason", "api_key_required")
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.ForbiddenError

			response.WithError(writer, failure.ForbiddenError)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

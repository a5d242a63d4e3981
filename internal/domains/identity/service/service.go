package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"naturekids/config"
	"naturekids/infras/jwt"
	"naturekids/infras/otel"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/model/dto"
	"naturekids/internal/domains/identity/provider"
	"naturekids/internal/domains/identity/repository"
	"naturekids/shared/constant"
	"naturekids/shared/failure"

	"github.com/rs/zerolog/log"
)

const errUserNotFound = "user not found"

type Identity interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	// Logout clears the session behind the request's token, if any.
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.IdentityResponse, error)
	Profile(ctx context.Context) (dto.IdentityResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.IdentityResponse, error)
	// Resolve maps a validated token id to its live session.
	Resolve(ctx context.Context, tokenID string) (model.Identity, error)
}

type serviceImpl struct {
	provider provider.Provider
	session  repository.Session
	jwt      jwt.JWT
	cfg      *config.Config
	otel     otel.Otel
}

func New(provider provider.Provider, session repository.Session, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Identity {
	return &serviceImpl{
		provider: provider,
		session:  session,
		jwt:      jwt,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, err := s.provider.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("login rejected")

		return res, err // nolint:wrapcheck
	}

	return s.issue(ctx, identity)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, err := s.provider.Register(ctx, req.ToRegistration())
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("failed to register user")

		return res, err // nolint:wrapcheck
	}

	return s.issue(ctx, identity)
}

// issue signs a token and stores the identity under its id. No session is
// written unless signing succeeds.
func (s *serviceImpl) issue(ctx context.Context, identity model.Identity) (res dto.AuthResponse, err error) {
	token, err := s.jwt.Generate(identity.ID, identity.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	ttl := s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds
	if err = s.session.Save(ctx, token.TokenID, identity, ttl); err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return res, fmt.Errorf("failed to save session: %w", err)
	}

	res.FromToken(token, identity)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == "" {
		return nil
	}

	if err = s.session.Delete(ctx, tokenID); err != nil {
		log.Error().Err(err).Msg("failed to clear session")

		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (s *serviceImpl) Current(ctx context.Context) (res dto.IdentityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Current")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == "" {
		return res, failure.Unauthenticated
	}

	identity, err := s.Resolve(ctx, tokenID)
	if err != nil {
		return res, err
	}

	res.FromModel(identity)

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, tokenID string) (model.Identity, error) {
	identity, err := s.session.Load(ctx, tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return identity, failure.Unauthenticated
		}

		log.Error().Err(err).Msg("failed to load session")

		return identity, fmt.Errorf("failed to load session: %w", err)
	}

	return identity, nil
}

func (s *serviceImpl) Profile(ctx context.Context) (res dto.IdentityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return res, failure.Unauthenticated
	}

	identity, err := s.provider.Find(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to find user")

		return res, fmt.Errorf("failed to find user: %w", err)
	}

	if identity.Empty() {
		return res, failure.NotFound(errUserNotFound) // nolint:wrapcheck
	}

	res.FromModel(identity)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.IdentityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return res, failure.Unauthenticated
	}

	identity, err := s.provider.UpdateProfile(ctx, userID, req.ToProfile())
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to update profile")

		return res, err // nolint:wrapcheck
	}

	if identity.Empty() {
		return res, failure.NotFound(errUserNotFound) // nolint:wrapcheck
	}

	s.refreshSession(ctx, identity)

	res.FromModel(identity)

	return res, nil
}

// refreshSession rewrites the request's session so later requests see the new
// username. The stored profile is already updated, so a failure only logs.
func (s *serviceImpl) refreshSession(ctx context.Context, identity model.Identity) {
	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == "" {
		return
	}

	ttl := s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds
	if err := s.session.Save(ctx, tokenID, identity, ttl); err != nil {
		log.Error().Err(err).Str("userID", identity.ID).Msg("failed to refresh session")
	}
}

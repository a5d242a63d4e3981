package repository

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=../mocks/session_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"naturekids/infras/otel"
	"naturekids/internal/domains/identity/model"
	"naturekids/shared"
	"naturekids/shared/cache"
	"naturekids/shared/constant"

	"github.com/rs/zerolog/log"
)

const sessionKeyPrefix = "session"

var ErrNoSession = errors.New("no session")

// Session persists the signed-in identity as one JSON object per token.
type Session interface {
	Save(ctx context.Context, tokenID string, identity model.Identity, ttlSeconds int) error
	Load(ctx context.Context, tokenID string) (model.Identity, error)
	Delete(ctx context.Context, tokenID string) error
}

type sessionImpl struct {
	cache cache.RedisCache
	otel  otel.Otel
}

func NewSession(cache cache.RedisCache, otel otel.Otel) Session {
	return &sessionImpl{
		cache: cache,
		otel:  otel,
	}
}

func SessionKey(tokenID string) string {
	return shared.BuildCacheKey(sessionKeyPrefix, tokenID)
}

func (s *sessionImpl) Save(ctx context.Context, tokenID string, identity model.Identity, ttlSeconds int) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Save")
	defer scope.End()

	if err := s.cache.Save(ctx, SessionKey(tokenID), identity, ttlSeconds); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load returns ErrNoSession when the key is missing or holds something that
// is not an identity; in the latter case the key is cleared.
func (s *sessionImpl) Load(ctx context.Context, tokenID string) (model.Identity, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Load")
	defer scope.End()

	var (
		raw      string
		identity model.Identity
		key      = SessionKey(tokenID)
	)

	if err := s.cache.Get(ctx, key, &raw); err != nil {
		if errors.Is(err, cache.Nil) {
			return identity, ErrNoSession
		}

		scope.TraceError(err)

		return identity, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.Empty() {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt session")

		if err := s.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to clear corrupt session")
		}

		return model.Identity{}, ErrNoSession
	}

	return identity, nil
}

func (s *sessionImpl) Delete(ctx context.Context, tokenID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Delete")
	defer scope.End()

	if err := s.cache.Delete(ctx, SessionKey(tokenID)); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

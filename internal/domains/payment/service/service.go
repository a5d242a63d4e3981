package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/internal/domains/payment/model"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Gateway charges a card once. A declined charge is not an error: the
// outcome carries Success=false and a reason.
type Gateway interface {
	Charge(ctx context.Context, req model.ChargeRequest) (model.Outcome, error)
}

type simulatorImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	return &simulatorImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (s *simulatorImpl) Charge(ctx context.Context, req model.ChargeRequest) (outcome model.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Charge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return outcome, failure.BadRequest(err) // nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"amount":    req.Amount,
		"reference": req.Reference,
	})

	if err = s.wait(ctx); err != nil {
		log.Warn().Err(err).Str("reference", req.Reference).Msg("payment processing interrupted")

		return outcome, fmt.Errorf("payment processing interrupted: %w", err)
	}

	transactionID, err := newTransactionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate transaction id")

		return outcome, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	outcome = model.Outcome{
		Success:       true,
		TransactionID: transactionID,
		Amount:        req.Amount,
		Currency:      s.currency(req.Currency),
		ProcessedAt:   timezone.Now(),
	}

	if rand.Float64() >= s.cfg.Payment.SuccessRate { //nolint:gosec
		outcome.Success = false
		outcome.FailureReason = s.declineReason()
	}

	log.Info().
		Str("reference", req.Reference).
		Str("transactionID", outcome.TransactionID).
		Bool("success", outcome.Success).
		Msg("payment processed")

	return outcome, nil
}

func (s *simulatorImpl) wait(ctx context.Context) error {
	delay := time.Duration(s.cfg.Payment.DelayMs) * time.Millisecond
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *simulatorImpl) currency(requested string) string {
	if requested != "" {
		return requested
	}

	return s.cfg.Payment.Currency
}

func (s *simulatorImpl) declineReason() string {
	reasons := s.cfg.Payment.FailureReasons
	if len(reasons) == 0 {
		return model.ReasonCardDeclined
	}

	return reasons[rand.IntN(len(reasons))] //nolint:gosec
}

func newTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return model.TransactionPrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}

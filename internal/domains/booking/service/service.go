package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/s3"
	"naturekids/internal/domains/booking/model"
	"naturekids/internal/domains/booking/model/dto"
	"naturekids/internal/domains/booking/repository"
	catalogModel "naturekids/internal/domains/catalog/model"
	catalogService "naturekids/internal/domains/catalog/service"
	journeyModel "naturekids/internal/domains/journey/model"
	journeyService "naturekids/internal/domains/journey/service"
	paymentModel "naturekids/internal/domains/payment/model"
	paymentDto "naturekids/internal/domains/payment/model/dto"
	paymentService "naturekids/internal/domains/payment/service"
	"naturekids/internal/events"
	"naturekids/shared"
	"naturekids/shared/cache"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/metrics"
	gModel "naturekids/shared/model"
	"naturekids/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheCheckoutGuard = "checkout"
	receiptDirectory   = "receipts"

	// guardMarginSeconds keeps the guard alive past the slowest charge.
	guardMarginSeconds = 5

	errBookingNotFound    = "booking not found"
	errCheckoutInProgress = "a checkout is already in progress"
	errPaymentTimeout     = "payment timed out"
	errPaymentUnavailable = "payment provider unavailable"
	errActivityChanged    = "activity changed during checkout, booking not recorded"
	errNotUpcoming        = "only upcoming bookings can be completed"
)

type Booking interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
	// Cancel is a no-op for unknown ids and for bookings already past upcoming.
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Complete(ctx context.Context, owner, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	ledger    repository.Ledger
	catalog   catalogService.Catalog
	gateway   paymentService.Gateway
	journey   journeyService.Journey
	publisher events.Publisher
	storage   s3.S3
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	ledger repository.Ledger,
	catalog catalogService.Catalog,
	gateway paymentService.Gateway,
	journey journeyService.Journey,
	publisher events.Publisher,
	storage s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		ledger:    ledger,
		catalog:   catalog,
		gateway:   gateway,
		journey:   journey,
		publisher: publisher,
		storage:   storage,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func owner(ctx context.Context) (id, username string) {
	id, _ = ctx.Value(constant.ContextKeyUserID).(string)
	username, _ = ctx.Value(constant.ContextKeyUsername).(string)

	return id, username
}

func (s *serviceImpl) Checkout(ctx context.Context, req dto.CheckoutRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, username := owner(ctx)
	if userID == "" {
		return res, failure.Unauthenticated
	}

	flow := model.NewFlow()
	_ = flow.Fire(model.EventSelect)

	defer func() { res.State = string(flow.State()) }()

	scope.SetAttribute("activity_id", req.ActivityID)

	activity, err := s.catalog.Lookup(ctx, req.ActivityID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	request := req.ToModel()
	charge := paymentModel.ChargeRequest{
		Amount:    activity.Total(request.Participants),
		Currency:  s.cfg.Payment.Currency,
		Card:      req.Card.ToModel(),
		Reference: fmt.Sprintf("%s:%d", userID, activity.ID),
	}

	if err = errors.Join(request.Validate(activity), charge.Validate()); err != nil {
		_ = flow.Fire(model.EventInvalid)

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	release, err := s.acquireGuard(ctx, userID)
	if err != nil {
		return res, err
	}
	defer release()

	_ = flow.Fire(model.EventSubmit)

	outcome, err := s.charge(ctx, charge)
	if err != nil {
		return res, err
	}

	var payment paymentDto.OutcomeResponse
	payment.FromModel(outcome)
	res.Payment = &payment

	if !outcome.Success {
		metrics.IncPayment(metrics.PaymentDeclined)
		_ = flow.Fire(model.EventDeclined)

		log.Warn().Str("transactionID", outcome.TransactionID).Str("reason", outcome.FailureReason).Msg("payment declined")

		return res, failure.PaymentRequired(outcome.FailureReason) // nolint:wrapcheck
	}

	metrics.IncPayment(metrics.PaymentApproved)

	booking, err := s.commit(ctx, userID, username, request, outcome)
	if err != nil {
		s.reportOrphan(ctx, userID, request.ActivityID, outcome, err)

		return res, err
	}

	_ = flow.Fire(model.EventPaid)

	var created dto.BookingResponse
	created.FromModel(booking)
	res.Booking = &created
	res.Next = dto.NextAfterConfirm

	go func() {
		c := context.WithoutCancel(ctx)

		metrics.IncBookingTransition(string(model.StatusUpcoming))
		s.publish(c, constant.TopicBookingConfirmed, booking)
		s.uploadReceipt(c, userID, created, payment)

		if err := s.journey.Track(c, journeyEntry(booking)); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to start journey entry")
		}
	}()

	return res, nil
}

// acquireGuard allows one checkout per user at a time.
func (s *serviceImpl) acquireGuard(ctx context.Context, userID string) (func(), error) {
	key := shared.BuildCacheKey(cacheCheckoutGuard, userID)
	ttl := s.cfg.Payment.TimeoutSeconds + s.cfg.Payment.DelayMs/1000 + guardMarginSeconds

	acquired, err := s.cache.SaveIfAbsent(ctx, key, timezone.Now().Unix(), ttl)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to acquire checkout guard")

		return nil, fmt.Errorf("failed to acquire checkout guard: %w", err)
	}

	if !acquired {
		return nil, failure.Conflict(errCheckoutInProgress) // nolint:wrapcheck
	}

	return func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to release checkout guard")
		}
	}, nil
}

func (s *serviceImpl) charge(ctx context.Context, req paymentModel.ChargeRequest) (paymentModel.Outcome, error) {
	if seconds := s.cfg.Payment.TimeoutSeconds; seconds > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
		defer cancel()
	}

	outcome, err := s.gateway.Charge(ctx, req)
	if err == nil {
		return outcome, nil
	}

	var fail *failure.Failure

	switch {
	case errors.As(err, &fail):
		return outcome, err // nolint:wrapcheck
	case errors.Is(err, context.DeadlineExceeded):
		metrics.IncPayment(metrics.PaymentTimeout)
		log.Warn().Err(err).Str("reference", req.Reference).Msg("payment timed out")

		return outcome, failure.GatewayTimeout(errPaymentTimeout) // nolint:wrapcheck
	default:
		metrics.IncPayment(metrics.PaymentError)
		log.Error().Err(err).Str("reference", req.Reference).Msg("payment failed")

		return outcome, failure.BadGateway(errPaymentUnavailable) // nolint:wrapcheck
	}
}

// reportOrphan flags an approved charge that has no booking. The simulator
// cannot void it, so an operator reconciles from the event.
func (s *serviceImpl) reportOrphan(ctx context.Context, userID string, activityID int64, outcome paymentModel.Outcome, cause error) {
	metrics.IncPayment(metrics.PaymentOrphaned)

	log.Error().
		Err(cause).
		Str("transactionID", outcome.TransactionID).
		Str("userID", userID).
		Int64("activityID", activityID).
		Int64("amount", outcome.Amount).
		Msg("payment approved but booking not recorded")

	event := events.PaymentOrphanedEvent{
		TransactionID: outcome.TransactionID,
		UserID:        userID,
		ActivityID:    activityID,
		Amount:        outcome.Amount,
		Currency:      outcome.Currency,
		Reason:        cause.Error(),
		OccurredAt:    timezone.Now(),
	}

	err := s.publisher.Publish(context.WithoutCancel(ctx), constant.TopicPaymentOrphaned, outcome.TransactionID, event)
	if err != nil {
		log.Error().Err(err).Str("transactionID", outcome.TransactionID).Msg("failed to publish orphaned payment")
	}
}

// commit re-reads the activity from the store, bypassing the cache, so the
// recorded booking matches the catalog as it is after payment.
func (s *serviceImpl) commit(
	ctx context.Context,
	userID, username string,
	request model.Request,
	outcome paymentModel.Outcome,
) (model.Booking, error) {
	activity, err := s.catalog.Authoritative(ctx, request.ActivityID)
	if err != nil {
		log.Error().Err(err).Str("transactionID", outcome.TransactionID).Msg("activity lookup failed after payment")

		return model.Booking{}, err // nolint:wrapcheck
	}

	if err = s.revalidate(request, activity, outcome); err != nil {
		log.Error().Err(err).Str("transactionID", outcome.TransactionID).Msg("activity changed after payment")

		return model.Booking{}, failure.Conflict(errActivityChanged) // nolint:wrapcheck
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to generate booking id: %w", err)
	}

	actor := username
	if actor == "" {
		actor = userID
	}

	booking := model.NewBooking(id.String(), userID, request, activity, outcome.TransactionID, gModel.NewMetadata(actor, timezone.Now()))

	if err = s.ledger.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("transactionID", outcome.TransactionID).Msg("failed to record booking")

		return model.Booking{}, fmt.Errorf("failed to record booking: %w", err)
	}

	log.Info().Str("bookingID", booking.ID).Str("transactionID", booking.TransactionID).Msg("booking confirmed")

	return booking, nil
}

func (s *serviceImpl) revalidate(request model.Request, activity catalogModel.Activity, outcome paymentModel.Outcome) error {
	if err := request.Validate(activity); err != nil {
		return err // nolint:wrapcheck
	}

	if total := activity.Total(request.Participants); total != outcome.Amount {
		return fmt.Errorf("charged %d but activity now costs %d", outcome.Amount, total)
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, topic string, b model.Booking) {
	event := events.BookingEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		ActivityID:    b.ActivityID,
		ActivityTitle: b.ActivityTitle,
		Date:          b.Date,
		Time:          b.Time,
		Participants:  b.Participants,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		ChildName:     b.ChildName,
		ParentName:    b.ParentName,
		Email:         b.Email,
		TransactionID: b.TransactionID,
		OccurredAt:    timezone.Now(),
	}

	if err := s.publisher.Publish(ctx, topic, b.ID, event); err != nil {
		log.Error().Err(err).Str("bookingID", b.ID).Str("topic", topic).Msg("failed to publish booking event")
	}
}

type receipt struct {
	Booking dto.BookingResponse        `json:"booking"`
	Payment paymentDto.OutcomeResponse `json:"payment"`
}

func (s *serviceImpl) uploadReceipt(ctx context.Context, userID string, booking dto.BookingResponse, payment paymentDto.OutcomeResponse) {
	if !s.cfg.External.S3.Enable || s.storage == nil {
		return
	}

	data, err := json.Marshal(receipt{Booking: booking, Payment: payment})
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to encode receipt")

		return
	}

	directory := receiptDirectory + "/" + userID
	if _, err := s.storage.UploadFileBytes(ctx, "", directory, booking.ID+".json", constant.ContentTypeJSON, data); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to upload receipt")
	}
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := owner(ctx)
	if userID == "" {
		return failure.Unauthenticated
	}

	cancelled, err := s.ledger.UpdateStatus(ctx, userID, id, model.StatusUpcoming, model.StatusCancelled)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if !cancelled {
		log.Debug().Str("bookingID", id).Msg("cancel ignored")

		return nil
	}

	booking, err := s.ledger.Get(ctx, userID, id)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to reload cancelled booking")

		return nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		metrics.IncBookingTransition(string(model.StatusCancelled))
		s.publish(c, constant.TopicBookingCancelled, booking)
	}()

	return nil
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := owner(ctx)
	if userID == "" {
		return res, failure.Unauthenticated
	}

	bookings, err := s.ledger.ListByOwner(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := owner(ctx)
	if userID == "" {
		return res, failure.Unauthenticated
	}

	return s.find(ctx, userID, id)
}

func (s *serviceImpl) find(ctx context.Context, userID, id string) (res dto.BookingResponse, err error) {
	booking, err := s.ledger.Get(ctx, userID, id)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, userID, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, userID, id); err != nil {
		return res, err
	}

	completed, err := s.ledger.UpdateStatus(ctx, userID, id, model.StatusUpcoming, model.StatusCompleted)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to complete booking")

		return res, fmt.Errorf("failed to complete booking: %w", err)
	}

	if !completed {
		return res, failure.Conflict(errNotUpcoming) // nolint:wrapcheck
	}

	metrics.IncBookingTransition(string(model.StatusCompleted))

	booking, err := s.ledger.Get(ctx, userID, id)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to reload completed booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	// The booking stays completed even when the journey cannot be updated.
	if rewards, journeyErr := s.journey.Complete(ctx, journeyEntry(booking)); journeyErr != nil {
		log.Error().Err(journeyErr).Str("bookingID", id).Msg("failed to complete journey entry")
	} else if len(rewards) > 0 {
		log.Info().Str("bookingID", id).Int("rewards", len(rewards)).Msg("booking completion earned rewards")
	}

	res.FromModel(booking)

	return res, nil
}

func journeyEntry(b model.Booking) journeyModel.Entry {
	return journeyModel.Entry{
		ID:               b.ID,
		UserID:           b.UserID,
		ActivityID:       b.ActivityID,
		ActivityTitle:    b.ActivityTitle,
		ActivityLocation: b.ActivityLocation,
	}
}

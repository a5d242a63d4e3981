package model

import (
	"errors"
	"fmt"
	catalogModel "naturekids/internal/domains/catalog/model"
	"naturekids/shared/model"
	"naturekids/shared/timezone"
	"strings"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldStatus     = "status"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrParticipantsOutOfRange = errors.New("participants out of range")
	ErrTimeUnavailable        = errors.New("time slot not offered")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")
	ErrMissingField           = errors.New("missing required field")
	ErrActivityMismatch       = errors.New("request does not match activity")
)

type Booking struct {
	ID               string `db:"id"`
	UserID           string `db:"user_id"`
	ActivityID       int64  `db:"activity_id"`
	ActivityTitle    string `db:"activity_title"`
	ActivityLocation string `db:"activity_location"`
	Date             string `db:"booking_date"`
	Time             string `db:"booking_time"`
	Participants     int    `db:"participants"`
	TotalPrice       int64  `db:"total_price"`
	Status           Status `db:"status"`
	ChildName        string `db:"child_name"`
	ParentName       string `db:"parent_name"`
	Email            string `db:"email"`
	Phone            string `db:"phone"`
	TransactionID    string `db:"transaction_id"`
	model.Metadata
}

// Request is the booking form before payment.
type Request struct {
	ActivityID   int64
	Date         string
	Time         string
	Participants int
	ChildName    string
	ParentName   string
	Email        string
	Phone        string
}

// Validate checks the form against the activity being booked. All problems
// are reported together.
func (r Request) Validate(activity catalogModel.Activity) error {
	var errs []error

	if r.ActivityID != activity.ID {
		errs = append(errs, ErrActivityMismatch)
	}

	if r.Participants < 1 || r.Participants > activity.MaxParticipants {
		errs = append(errs, fmt.Errorf("%w: must be between 1 and %d", ErrParticipantsOutOfRange, activity.MaxParticipants))
	}

	if !activity.OffersTime(r.Time) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrTimeUnavailable, r.Time))
	}

	if _, err := timezone.ParseDate(r.Date); err != nil {
		errs = append(errs, ErrInvalidDate)
	}

	required := []struct{ name, value string }{
		{"child_name", r.ChildName},
		{"parent_name", r.ParentName},
		{"email", r.Email},
		{"phone", r.Phone},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, field.name))
		}
	}

	return errors.Join(errs...)
}

// NewBooking builds the ledger record once payment has been taken.
func NewBooking(id, owner string, req Request, activity catalogModel.Activity, transactionID string, meta model.Metadata) Booking {
	return Booking{
		ID:               id,
		UserID:           owner,
		ActivityID:       activity.ID,
		ActivityTitle:    activity.Title,
		ActivityLocation: activity.Location,
		Date:             req.Date,
		Time:             req.Time,
		Participants:     req.Participants,
		TotalPrice:       activity.Total(req.Participants),
		Status:           StatusUpcoming,
		ChildName:        strings.TrimSpace(req.ChildName),
		ParentName:       strings.TrimSpace(req.ParentName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		TransactionID:    transactionID,
		Metadata:         meta,
	}
}

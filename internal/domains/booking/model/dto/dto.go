package dto

import (
	"naturekids/internal/domains/booking/model"
	paymentDto "naturekids/internal/domains/payment/model/dto"
	gDto "naturekids/shared/dto"
)

// NextAfterConfirm is where the client goes once a booking is confirmed.
const NextAfterConfirm = "/profile"

type CheckoutRequest struct {
	ActivityID   int64                  `json:"activity_id"  validate:"required"`
	Date         string                 `json:"date"         validate:"required,bookingdate"`
	Time         string                 `json:"time"         validate:"notblank"`
	Participants int                    `json:"participants" validate:"required,min=1"`
	ChildName    string                 `json:"child_name"   validate:"notblank"`
	ParentName   string                 `json:"parent_name"  validate:"notblank"`
	Email        string                 `json:"email"        validate:"required,email"`
	Phone        string                 `json:"phone"        validate:"notblank"`
	Card         paymentDto.CardRequest `json:"card"`
}

func (c CheckoutRequest) ToModel() model.Request {
	return model.Request{
		ActivityID:   c.ActivityID,
		Date:         c.Date,
		Time:         c.Time,
		Participants: c.Participants,
		ChildName:    c.ChildName,
		ParentName:   c.ParentName,
		Email:        c.Email,
		Phone:        c.Phone,
	}
}

type BookingResponse struct {
	ID               string `json:"id"`
	ActivityID       int64  `json:"activity_id"`
	ActivityTitle    string `json:"activity_title"`
	ActivityLocation string `json:"activity_location"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Participants     int    `json:"participants"`
	TotalPrice       int64  `json:"total_price"`
	Status           string `json:"status"`
	ChildName        string `json:"child_name"`
	ParentName       string `json:"parent_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	TransactionID    string `json:"transaction_id"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(m model.Booking) {
	b.ID = m.ID
	b.ActivityID = m.ActivityID
	b.ActivityTitle = m.ActivityTitle
	b.ActivityLocation = m.ActivityLocation
	b.Date = m.Date
	b.Time = m.Time
	b.Participants = m.Participants
	b.TotalPrice = m.TotalPrice
	b.Status = string(m.Status)
	b.ChildName = m.ChildName
	b.ParentName = m.ParentName
	b.Email = m.Email
	b.Phone = m.Phone
	b.TransactionID = m.TransactionID
	b.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking) {
	g.Bookings = make([]BookingResponse, 0, len(models))

	for _, m := range models {
		var res BookingResponse
		res.FromModel(m)
		g.Bookings = append(g.Bookings, res)
	}

	g.TotalData = len(models)
}

// CheckoutResponse is returned on success and, with an error, on a declined
// or invalid submission so the client can render the flow state.
type CheckoutResponse struct {
	State   string                      `json:"state"`
	Booking *BookingResponse            `json:"booking,omitempty"`
	Payment *paymentDto.OutcomeResponse `json:"payment,omitempty"`
	Next    string                      `json:"next,omitempty"`
}

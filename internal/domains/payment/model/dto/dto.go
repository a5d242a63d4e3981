package dto

import "naturekids/internal/domains/payment/model"

type CardRequest struct {
	CardNumber  string `json:"card_number"  validate:"notblank"`
	CardHolder  string `json:"card_holder"  validate:"notblank"`
	ExpiryMonth string `json:"expiry_month" validate:"notblank"`
	ExpiryYear  string `json:"expiry_year"  validate:"notblank"`
	CVV         string `json:"cvv"          validate:"notblank"`
}

func (c CardRequest) ToModel() model.Card {
	return model.Card{
		Number:      c.CardNumber,
		Holder:      c.CardHolder,
		ExpiryMonth: c.ExpiryMonth,
		ExpiryYear:  c.ExpiryYear,
		CVV:         c.CVV,
	}
}

type OutcomeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	FailureReason string `json:"failure_reason,omitempty"`
}

func (o *OutcomeResponse) FromModel(m model.Outcome) {
	o.Success = m.Success
	o.TransactionID = m.TransactionID
	o.Amount = m.Amount
	o.Currency = m.Currency
	o.FailureReason = m.FailureReason
}

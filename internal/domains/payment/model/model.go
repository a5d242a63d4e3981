package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrIncompleteCard = errors.New("please fill in all card details")
	ErrInvalidAmount  = errors.New("amount must be positive")
)

const (
	ReasonCardDeclined = "card_declined"
	TransactionPrefix  = "TXN"
)

// Card is free text from the payment form; only presence is checked.
type Card struct {
	Number      string
	Holder      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

func (c Card) Complete() bool {
	for _, field := range []string{c.Number, c.Holder, c.ExpiryMonth, c.ExpiryYear, c.CVV} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}

	return true
}

type ChargeRequest struct {
	Amount    int64
	Currency  string
	Card      Card
	Reference string
}

func (r ChargeRequest) Validate() error {
	if !r.Card.Complete() {
		return ErrIncompleteCard
	}

	if r.Amount <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// Outcome is produced once per charge attempt and never stored on its own.
type Outcome struct {
	Success       bool      `json:"success"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	FailureReason string    `json:"failure_reason,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
}

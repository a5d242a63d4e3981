package model

import "fmt"

type FlowState string

const (
	FlowBrowsing        FlowState = "browsing"
	FlowFormEntry       FlowState = "form_entry"
	FlowAwaitingPayment FlowState = "awaiting_payment"
	FlowConfirmed       FlowState = "confirmed"
	FlowPaymentFailed   FlowState = "payment_failed"
)

type FlowEvent string

const (
	EventSelect   FlowEvent = "select"
	EventSubmit   FlowEvent = "submit"
	EventInvalid  FlowEvent = "invalid"
	EventPaid     FlowEvent = "paid"
	EventDeclined FlowEvent = "declined"
	EventRetry    FlowEvent = "retry"
)

var transitions = map[FlowState]map[FlowEvent]FlowState{
	FlowBrowsing:        {EventSelect: FlowFormEntry},
	FlowFormEntry:       {EventSubmit: FlowAwaitingPayment, EventInvalid: FlowFormEntry},
	FlowAwaitingPayment: {EventPaid: FlowConfirmed, EventDeclined: FlowPaymentFailed},
	FlowPaymentFailed:   {EventRetry: FlowFormEntry},
}

// Flow tracks one checkout from activity selection to its outcome.
type Flow struct {
	state FlowState
}

func NewFlow() *Flow {
	return &Flow{state: FlowBrowsing}
}

func (f *Flow) State() FlowState {
	return f.state
}

// Fire applies event and leaves the state untouched if it is not legal here.
func (f *Flow) Fire(event FlowEvent) error {
	next, ok := transitions[f.state][event]
	if !ok {
		return fmt.Errorf("illegal flow transition %s --%s-->", f.state, event)
	}

	f.state = next

	return nil
}

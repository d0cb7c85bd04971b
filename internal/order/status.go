package order

// Status is the fulfilment state of an order. Transitions go through
// Transition; writing an arbitrary status is not supported.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusReturned},
	StatusCancelled: {},
	StatusReturned:  {},
}

func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) canTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates current→next against the transition table.
func Transition(current, next Status) (Status, error) {
	if !next.Valid() {
		return current, ErrInvalidTransition
	}
	if !current.canTransitionTo(next) {
		return current, ErrInvalidTransition
	}
	return next, nil
}

// PaymentStatus is the independent payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// A failed payment may be retried, so failed→paid stays open.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentFailed:   {PaymentPaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// TransitionPayment validates current→next for payment state.
func TransitionPayment(current, next PaymentStatus) (PaymentStatus, error) {
	if !next.Valid() {
		return current, ErrInvalidTransition
	}
	for _, allowed := range paymentTransitions[current] {
		if allowed == next {
			return next, nil
		}
	}
	return current, ErrInvalidTransition
}

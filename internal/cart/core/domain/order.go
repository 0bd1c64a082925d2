package domain

// OrderState is the lifecycle position of the session order.
type OrderState string

const (
	StateNoOrder   OrderState = "NO_ORDER"
	StateOrderOpen OrderState = "ORDER_OPEN"
	StateOrderPaid OrderState = "ORDER_PAID"
)

// Order is the single active order of a session. A zero ID means no order
// has been opened yet.
type Order struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Paid     bool   `json:"pagado"`
}

func EmptyOrder() Order {
	return Order{}
}

func (o Order) State() OrderState {
	switch {
	case o.Paid:
		return StateOrderPaid
	case o.ID.IsZero():
		return StateNoOrder
	default:
		return StateOrderOpen
	}
}

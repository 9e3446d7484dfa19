package enums

// BadgeTone is the presentation color a status renders with. The mappings
// below are exhaustive so an unmapped status can never reach the UI.
type BadgeTone string

const (
	BadgeTonePrimary BadgeTone = "primary"
	BadgeToneSuccess BadgeTone = "success"
	BadgeToneWarning BadgeTone = "warning"
	BadgeToneDanger  BadgeTone = "danger"
	BadgeToneNeutral BadgeTone = "neutral"
)

// Badge returns the presentation tone for an order status.
func (o OrderStatus) Badge() BadgeTone {
	switch o {
	case OrderStatusPending:
		return BadgeTonePrimary
	case OrderStatusFinalized:
		return BadgeToneSuccess
	case OrderStatusCancelled:
		return BadgeToneDanger
	default:
		return BadgeToneNeutral
	}
}

// Badge returns the presentation tone for a payment status.
func (p PaymentStatus) Badge() BadgeTone {
	switch p {
	case PaymentStatusWaiting:
		return BadgeToneWarning
	case PaymentStatusPaid:
		return BadgeToneSuccess
	case PaymentStatusRefunded:
		return BadgeToneNeutral
	case PaymentStatusCancelled:
		return BadgeToneDanger
	default:
		return BadgeToneNeutral
	}
}

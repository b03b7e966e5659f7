package order

// Predicate decides whether an order is kept by a filter pass.
type Predicate func(Order) bool

// NotCancelled rejects cancelled orders. This runs before any aggregation so
// a cancelled order never contributes partial quantities or revenue.
func NotCancelled(o Order) bool {
	return o.Status != StatusCancelled
}

// InvoiceEligible selects orders that still need an invoice: shipped or
// queued for processing, paid on delivery, and without an existing invoice.
func InvoiceEligible(o Order) bool {
	if o.HasInvoice {
		return false
	}
	if o.Payment != PaymentCashOnDelivery {
		return false
	}
	switch o.Status {
	case StatusSent, StatusAwaitingProcessing:
		return true
	default:
		return false
	}
}

// Partition splits orders into those satisfying keep and the count of
// rejected ones. The rejected count feeds the run summary.
func Partition(orders []Order, keep Predicate) ([]Order, int) {
	kept := make([]Order, 0, len(orders))
	dropped := 0
	for _, o := range orders {
		if keep(o) {
			kept = append(kept, o)
		} else {
			dropped++
		}
	}
	return kept, dropped
}

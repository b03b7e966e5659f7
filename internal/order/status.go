package order

import "strings"

// Status is the normalized order lifecycle state. Upstream reports free-text
// labels (localized); ParseStatus maps them onto this enum so that filter
// predicates never compare raw strings.
type Status string

const (
	StatusNew                Status = "new"
	StatusAwaitingProcessing Status = "awaiting_processing"
	StatusSent               Status = "sent"
	StatusDelivered          Status = "delivered"
	StatusCancelled          Status = "cancelled"
	StatusReturned           Status = "returned"
	StatusUnknown            Status = "unknown"
)

// statusLabels maps the upstream status names to normalized statuses. The
// upstream admin is Slovak; English aliases are accepted for fixtures and
// future label migrations.
var statusLabels = map[string]Status{
	"nová":               StatusNew,
	"new":                StatusNew,
	"čaká na vybavenie":  StatusAwaitingProcessing,
	"awaiting processing": StatusAwaitingProcessing,
	"odoslaná":           StatusSent,
	"sent":               StatusSent,
	"doručená":           StatusDelivered,
	"delivered":          StatusDelivered,
	"storno":             StatusCancelled,
	"cancelled":          StatusCancelled,
	"vrátená":            StatusReturned,
	"returned":           StatusReturned,
}

// ParseStatus normalizes an upstream status label. Unrecognized labels map to
// StatusUnknown rather than an error so a new upstream label degrades to a
// warning, not a crashed run.
func ParseStatus(label string) Status {
	if s, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s
	}
	return StatusUnknown
}

// PaymentMethod is the normalized payment type derived from the order's
// payment price element.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCard           PaymentMethod = "card"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentUnknown        PaymentMethod = "unknown"
)

var paymentLabels = map[string]PaymentMethod{
	"dobierka":         PaymentCashOnDelivery,
	"cash on delivery": PaymentCashOnDelivery,
	"kartou":           PaymentCard,
	"card":             PaymentCard,
	"prevodom":         PaymentBankTransfer,
	"bank transfer":    PaymentBankTransfer,
}

// ParsePaymentMethod normalizes a payment element title.
func ParsePaymentMethod(label string) PaymentMethod {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if m, ok := paymentLabels[normalized]; ok {
		return m
	}
	for key, m := range paymentLabels {
		if normalized != "" && strings.Contains(normalized, key) {
			return m
		}
	}
	return PaymentUnknown
}

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Address is a postal address as upstream reports it.
type Address struct {
	Street            string
	DescriptiveNumber string
	OrientationNumber string
	City              string
	Zip               string
	Country           string
}

// Customer carries the identity fields needed for exports and invoicing.
// CompanyID and VATID are empty for consumer orders.
type Customer struct {
	Name      string
	Email     string
	Phone     string
	CompanyID string
	VATID     string
}

// LineItem is one product entry within an order. Items are owned by their
// order and keep the upstream insertion order.
type LineItem struct {
	Label           string
	EAN             string
	ImportCode      string
	WarehouseNumber string
	Quantity        int64
	UnitPrice       decimal.Decimal // tax-inclusive, per unit
	TaxRate         decimal.Decimal // percent
	WeightValue     decimal.Decimal
	WeightUnit      string
	RecycleFee      decimal.Decimal
}

// TotalWithTax is unit price times quantity.
func (i LineItem) TotalWithTax() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// TotalWithoutTax strips the line's tax rate from the gross total.
func (i LineItem) TotalWithoutTax() decimal.Decimal {
	gross := i.TotalWithTax()
	if i.TaxRate.IsZero() {
		return gross
	}
	divisor := decimal.NewFromInt(1).Add(i.TaxRate.Div(hundred))
	return gross.DivRound(divisor, 4)
}

// TaxAmount is the tax portion of the gross line total.
func (i LineItem) TaxAmount() decimal.Decimal {
	return i.TotalWithTax().Sub(i.TotalWithoutTax())
}

// Order is a single customer purchase. ID is the upstream internal id,
// Number the human-facing order number.
type Order struct {
	ID           string
	Number       string
	ExternalRef  string
	PurchaseDate time.Time
	VarSymbol    string

	Status      Status
	StatusLabel string // raw upstream label, kept for exports
	Payment     PaymentMethod
	HasInvoice  bool

	Currency     string
	TotalWithTax decimal.Decimal

	Customer        Customer
	InvoiceAddress  Address
	DeliveryAddress *Address

	Items []LineItem
}

// Date returns the purchase date truncated to a calendar day in UTC. All
// date-keyed grouping uses this value.
func (o Order) Date() time.Time {
	return time.Date(o.PurchaseDate.Year(), o.PurchaseDate.Month(), o.PurchaseDate.Day(), 0, 0, 0, 0, time.UTC)
}

// TotalQuantity sums the quantities across all line items.
func (o Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

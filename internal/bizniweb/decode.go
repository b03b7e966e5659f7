package bizniweb

import (
	"fmt"
	"strings"
	"time"

	"github.com/vevoretail/orderpulse/internal/order"
)

// purchase date layouts seen from the upstream API, most specific first.
var purDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePurDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range purDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable purchase date %q", raw)
}

// decodeOrder maps a raw upstream order onto the domain model. An order
// missing its identity or purchase date is a data-shape error; the fetcher
// skips it with a warning instead of failing the run.
func decodeOrder(raw rawOrder) (order.Order, error) {
	if raw.ID == "" || raw.OrderNum == "" {
		return order.Order{}, fmt.Errorf("order missing id or order_num (id=%q num=%q)", raw.ID, raw.OrderNum)
	}
	purDate, err := parsePurDate(raw.PurDate)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %s: %w", raw.OrderNum, err)
	}

	statusLabel := ""
	if raw.Status != nil {
		statusLabel = raw.Status.Name
	}

	o := order.Order{
		ID:           raw.ID,
		Number:       raw.OrderNum,
		ExternalRef:  raw.ExternalRef,
		PurchaseDate: purDate,
		VarSymbol:    raw.VarSymb,
		Status:       order.ParseStatus(statusLabel),
		StatusLabel:  statusLabel,
		Payment:      paymentMethod(raw.PriceElements),
		HasInvoice:   len(raw.Invoices) > 0,
		Customer:     decodeCustomer(raw.Customer),
	}

	if raw.Sum != nil {
		o.TotalWithTax = raw.Sum.Value
		if raw.Sum.Currency != nil {
			o.Currency = raw.Sum.Currency.Code
		}
	}
	if raw.InvoiceAddress != nil {
		o.InvoiceAddress = decodeAddress(*raw.InvoiceAddress)
	}
	if raw.DeliveryAddress != nil {
		addr := decodeAddress(*raw.DeliveryAddress)
		o.DeliveryAddress = &addr
	}

	o.Items = make([]order.LineItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		o.Items = append(o.Items, decodeItem(item))
	}
	return o, nil
}

func decodeItem(raw rawItem) order.LineItem {
	item := order.LineItem{
		Label:           raw.ItemLabel,
		EAN:             raw.EAN,
		ImportCode:      raw.ImportCode,
		WarehouseNumber: raw.WarehouseNumber,
		Quantity:        raw.Quantity.IntPart(),
		TaxRate:         raw.TaxRate,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if raw.Price != nil {
		item.UnitPrice = raw.Price.Value
	}
	if raw.Weight != nil {
		item.WeightValue = raw.Weight.Value
		item.WeightUnit = raw.Weight.Unit
	}
	if raw.RecycleFee != nil {
		item.RecycleFee = raw.RecycleFee.Value
	}
	return item
}

func decodeCustomer(raw *rawCustomer) order.Customer {
	if raw == nil {
		return order.Customer{}
	}
	name := raw.CompanyName
	if name == "" {
		name = strings.TrimSpace(raw.Name + " " + raw.Surname)
	}
	return order.Customer{
		Name:      name,
		Email:     raw.Email,
		Phone:     raw.Phone,
		CompanyID: raw.CompanyID,
		VATID:     raw.VatID,
	}
}

func decodeAddress(raw rawAddress) order.Address {
	return order.Address{
		Street:            raw.Street,
		DescriptiveNumber: raw.DescriptiveNumber,
		OrientationNumber: raw.OrientationNumber,
		City:              raw.City,
		Zip:               raw.Zip,
		Country:           raw.Country,
	}
}

// paymentMethod pulls the payment method out of the order's price elements.
// Upstream models payment as a surcharge element of type "payment".
func paymentMethod(elements []rawPriceElement) order.PaymentMethod {
	for _, el := range elements {
		if strings.EqualFold(el.Type, "payment") {
			return order.ParsePaymentMethod(el.Title)
		}
	}
	return order.PaymentUnknown
}

// Package flatten projects nested orders into one row per line item for
// export and aggregation.
package flatten

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vevoretail/orderpulse/internal/order"
)

// Row is the read-only projection of one (order, line item) pair. Order-level
// fields are duplicated onto every row of the order.
type Row struct {
	OrderID      string
	OrderNumber  string
	ExternalRef  string
	PurchaseDate time.Time
	Date         time.Time // purchase date truncated to day, UTC
	VarSymbol    string
	StatusLabel  string
	Status       order.Status

	CustomerName      string
	CustomerEmail     string
	CustomerCompanyID string
	CustomerVATID     string

	InvoiceAddress  order.Address
	DeliveryAddress *order.Address

	OrderTotal    decimal.Decimal
	OrderCurrency string

	ItemCount    int // total items in the parent order
	ItemPosition int // 1-indexed position within the parent order

	ItemLabel           string
	ItemEAN             string
	ItemImportCode      string
	ItemWarehouseNumber string
	ItemQuantity        int64
	ItemTaxRate         decimal.Decimal
	ItemWeight          decimal.Decimal
	ItemWeightUnit      string
	ItemUnitPrice       decimal.Decimal
	ItemTotalWithTax    decimal.Decimal
	ItemTotalWithoutTax decimal.Decimal
	ItemTaxAmount       decimal.Decimal
	ItemRecycleFee      decimal.Decimal
}

// Flatten expands an order into one row per line item, preserving the
// upstream item order. An order with no items yields no rows; callers that
// need to surface such orders handle them separately.
func Flatten(o order.Order) []Row {
	if len(o.Items) == 0 {
		return nil
	}
	rows := make([]Row, 0, len(o.Items))
	for idx, item := range o.Items {
		rows = append(rows, Row{
			OrderID:      o.ID,
			OrderNumber:  o.Number,
			ExternalRef:  o.ExternalRef,
			PurchaseDate: o.PurchaseDate,
			Date:         o.Date(),
			VarSymbol:    o.VarSymbol,
			StatusLabel:  o.StatusLabel,
			Status:       o.Status,

			CustomerName:      o.Customer.Name,
			CustomerEmail:     o.Customer.Email,
			CustomerCompanyID: o.Customer.CompanyID,
			CustomerVATID:     o.Customer.VATID,

			InvoiceAddress:  o.InvoiceAddress,
			DeliveryAddress: o.DeliveryAddress,

			OrderTotal:    o.TotalWithTax,
			OrderCurrency: o.Currency,

			ItemCount:    len(o.Items),
			ItemPosition: idx + 1,

			ItemLabel:           item.Label,
			ItemEAN:             item.EAN,
			ItemImportCode:      item.ImportCode,
			ItemWarehouseNumber: item.WarehouseNumber,
			ItemQuantity:        item.Quantity,
			ItemTaxRate:         item.TaxRate,
			ItemWeight:          item.WeightValue,
			ItemWeightUnit:      item.WeightUnit,
			ItemUnitPrice:       item.UnitPrice,
			ItemTotalWithTax:    item.TotalWithTax(),
			ItemTotalWithoutTax: item.TotalWithoutTax(),
			ItemTaxAmount:       item.TaxAmount(),
			ItemRecycleFee:      item.RecycleFee,
		})
	}
	return rows
}

// FlattenAll flattens a batch of orders into a single row stream.
func FlattenAll(orders []order.Order) []Row {
	var rows []Row
	for _, o := range orders {
		rows = append(rows, Flatten(o)...)
	}
	return rows
}

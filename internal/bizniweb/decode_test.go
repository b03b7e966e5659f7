package bizniweb

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vevoretail/orderpulse/internal/order"
)

func validRawOrder() rawOrder {
	return rawOrder{
		ID:       "12345",
		OrderNum: "2024010042",
		PurDate:  "2024-01-02T10:30:00",
		Status:   &rawStatus{ID: "5", Name: "Odoslaná"},
		Customer: &rawCustomer{Name: "Jana", Surname: "Nováková", Email: "jana@example.sk"},
		Items: []rawItem{
			{
				ItemLabel: "Widget",
				Quantity:  decimal.NewFromInt(2),
				TaxRate:   decimal.NewFromInt(20),
				Price:     &rawPrice{Value: decimal.NewFromInt(12), Currency: &rawCurrency{Code: "EUR"}},
			},
		},
		PriceElements: []rawPriceElement{
			{Title: "Dobierka", Type: "payment"},
		},
		Sum: &rawPrice{Value: decimal.NewFromInt(24), Currency: &rawCurrency{Code: "EUR"}},
	}
}

func TestDecodeOrder(t *testing.T) {
	decoded, err := decodeOrder(validRawOrder())
	require.NoError(t, err)

	assert.Equal(t, "12345", decoded.ID)
	assert.Equal(t, "2024010042", decoded.Number)
	assert.Equal(t, order.StatusSent, decoded.Status)
	assert.Equal(t, "Odoslaná", decoded.StatusLabel)
	assert.Equal(t, order.PaymentCashOnDelivery, decoded.Payment)
	assert.False(t, decoded.HasInvoice)
	assert.Equal(t, "EUR", decoded.Currency)
	assert.Equal(t, "Jana Nováková", decoded.Customer.Name)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, int64(2), decoded.Items[0].Quantity)
}

func TestDecodeOrderCompanyCustomer(t *testing.T) {
	raw := validRawOrder()
	raw.Customer = &rawCustomer{
		CompanyName: "Test s.r.o.",
		CompanyID:   "46823492",
		VatID:       "SK2023499591",
		Email:       "fakturacia@test.sk",
	}
	decoded, err := decodeOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, "Test s.r.o.", decoded.Customer.Name)
	assert.Equal(t, "46823492", decoded.Customer.CompanyID)
	assert.Equal(t, "SK2023499591", decoded.Customer.VATID)
}

func TestDecodeOrderInvoicePresence(t *testing.T) {
	raw := validRawOrder()
	raw.Invoices = []rawInvoice{{ID: "99", InvoiceNum: "FV2024001"}}
	decoded, err := decodeOrder(raw)
	require.NoError(t, err)
	assert.True(t, decoded.HasInvoice)
}

func TestDecodeOrderMissingIdentity(t *testing.T) {
	raw := validRawOrder()
	raw.OrderNum = ""
	_, err := decodeOrder(raw)
	assert.Error(t, err)
}

func TestDecodeOrderBadDate(t *testing.T) {
	raw := validRawOrder()
	raw.PurDate = "not a date"
	_, err := decodeOrder(raw)
	assert.Error(t, err)
}

func TestParsePurDateLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-01-02T10:30:00Z",
		"2024-01-02T10:30:00",
		"2024-01-02 10:30:00",
		"2024-01-02",
	} {
		parsed, err := parsePurDate(raw)
		require.NoError(t, err, "layout %q", raw)
		assert.Equal(t, 2024, parsed.Year())
	}
}

func TestDecodeItemDefaultsQuantity(t *testing.T) {
	item := decodeItem(rawItem{ItemLabel: "Widget"})
	assert.Equal(t, int64(1), item.Quantity)
}

func TestPaymentMethodWithoutElement(t *testing.T) {
	assert.Equal(t, order.PaymentUnknown, paymentMethod(nil))
	assert.Equal(t, order.PaymentUnknown, paymentMethod([]rawPriceElement{
		{Title: "Kuriér", Type: "shipping"},
	}))
}

func TestIsAuthMessage(t *testing.T) {
	assert.True(t, isAuthMessage(errors.New("graphql: Unauthorized")))
	assert.True(t, isAuthMessage(errors.New("invalid API key supplied")))
	assert.False(t, isAuthMessage(errors.New("upstream timeout")))
}

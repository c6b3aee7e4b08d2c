package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// FormatProductPrice renders a product's display price with the currency
// symbol. No cross-rate conversion happens here: when EUR is selected and
// no euro price was authored the USD figure is shown behind the € symbol.
func FormatProductPrice(product models.Product, currency enums.Currency) string {
	return FormatAmount(UnitPrice(product, currency), currency)
}

// FormatAmount renders a decimal with two places and the currency symbol.
func FormatAmount(amount decimal.Decimal, currency enums.Currency) string {
	return currency.Symbol() + amount.StringFixed(2)
}

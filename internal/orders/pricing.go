package orders

import (
	"github.com/shopspring/decimal"

	"github.com/nwtech/license-orderflow/internal/catalog"
)

// totalPlaces is the number of decimal places kept on the order total.
const totalPlaces = 2

// priceLine builds an order line from the catalog entry. Only sku and
// quantity come from the request.
func priceLine(p catalog.Product, quantity int) (Item, decimal.Decimal) {
	unit := decimal.NewFromFloat(p.Price)
	subtotal := unit.Mul(decimal.NewFromInt(int64(quantity)))
	return Item{
		SKU:       p.SKU,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Subtotal:  subtotal.InexactFloat64(),
	}, subtotal
}

// roundTotal rounds to two places, exact halves to the even digit.
func roundTotal(total decimal.Decimal) float64 {
	return total.RoundBank(totalPlaces).InexactFloat64()
}

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitbill/receipt-extract/internal/extract"
)

func price(v float64) *float64 { return &v }

func TestDedupe(t *testing.T) {
	items := []extract.ExtractedItem{
		{Name: "Coffee", Quantity: 1, Price: price(3.50)},
		{Name: "Bagel", Quantity: 1, Price: price(2.25)},
		{Name: "coffee", Quantity: 1, Price: price(3.50)}, // case-insensitive duplicate
		{Name: "Coffee", Quantity: 2, Price: price(3.50)}, // quantity differs: kept
		{Name: "Coffee", Quantity: 1, Price: price(4.00)}, // price differs: kept
	}
	got := Dedupe(items)
	assert.Equal(t, []extract.ExtractedItem{
		{Name: "Coffee", Quantity: 1, Price: price(3.50)},
		{Name: "Bagel", Quantity: 1, Price: price(2.25)},
		{Name: "Coffee", Quantity: 2, Price: price(3.50)},
		{Name: "Coffee", Quantity: 1, Price: price(4.00)},
	}, got)
}

func TestDedupe_NoPriceSentinel(t *testing.T) {
	items := []extract.ExtractedItem{
		{Name: "Soup", Quantity: 1},
		{Name: "Soup", Quantity: 1},
		{Name: "Soup", Quantity: 1, Price: price(0)}, // priced zero is distinct from no price
	}
	got := Dedupe(items)
	assert.Len(t, got, 2)
	assert.Nil(t, got[0].Price)
	assert.NotNil(t, got[1].Price)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
